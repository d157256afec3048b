package services

import (
	"context"
	"strings"

	"github.com/PranamRaj/football-connect/internal/events"
	"github.com/PranamRaj/football-connect/internal/token"
	"github.com/PranamRaj/football-connect/types"
)

const (
	minSkillRating = 0
	maxSkillRating = 10
)

// PlayerService covers the player-side mutations: skill upserts and club
// membership requests.
type PlayerService struct {
	players PlayerRepository
	clubs   ClubRepository
	events  *events.Publisher
}

func NewPlayerService(players PlayerRepository, clubs ClubRepository, publisher *events.Publisher) *PlayerService {
	return &PlayerService{players: players, clubs: clubs, events: publisher}
}

// UpsertSkill sets or replaces a skill rating on a player. Only the owning
// account or an admin may write; the rating must sit on the 0–10 scale.
func (s *PlayerService) UpsertSkill(ctx context.Context, caller token.Claims, playerID int, skill types.Skill) error {
	skill.SkillName = strings.TrimSpace(skill.SkillName)
	if skill.SkillName == "" {
		return validationErr("skill_name is required")
	}
	if skill.Rating < minSkillRating || skill.Rating > maxSkillRating {
		return validationErr("rating must be between 0 and 10")
	}

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	if caller.AccountID != player.AccountID && caller.Role != types.RoleAdmin {
		return ErrForbidden
	}

	return s.players.UpsertSkill(ctx, playerID, skill)
}

// RequestMembership records a pending join request for the player owned by
// the calling account. Requesting an existing membership again succeeds
// without creating a second row.
func (s *PlayerService) RequestMembership(ctx context.Context, caller token.Claims, clubID int) error {
	player, err := s.players.GetByAccountID(ctx, caller.AccountID)
	if err != nil {
		return err
	}
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return err
	}

	if err := s.players.RequestMembership(ctx, player.ID, clubID); err != nil {
		return err
	}

	s.events.MembershipRequested(ctx, caller.AccountID, clubID)
	return nil
}
