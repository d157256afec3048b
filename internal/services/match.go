package services

import (
	"context"
	"strings"

	"github.com/PranamRaj/football-connect/types"
)

// MatchRepository defines persistence operations for matches.
type MatchRepository interface {
	Create(ctx context.Context, match types.Match) (types.Match, error)
	List(ctx context.Context, limit int) ([]types.Match, error)
	CountForTeamName(ctx context.Context, name string) (int, error)
}

// MatchService encapsulates match use-cases.
type MatchService struct {
	repo MatchRepository
}

func NewMatchService(repo MatchRepository) *MatchService {
	return &MatchService{repo: repo}
}

func (s *MatchService) Create(ctx context.Context, createdBy int, match types.Match) (types.Match, error) {
	match.CreatedBy = createdBy
	match.Title = strings.TrimSpace(match.Title)
	match.TeamA = strings.TrimSpace(match.TeamA)
	match.TeamB = strings.TrimSpace(match.TeamB)
	if match.Title == "" {
		return types.Match{}, validationErr("title is required")
	}
	if match.TeamA == "" || match.TeamB == "" {
		return types.Match{}, validationErr("both team names are required")
	}
	return s.repo.Create(ctx, match)
}

func (s *MatchService) List(ctx context.Context, limit int) ([]types.Match, error) {
	return s.repo.List(ctx, limit)
}
