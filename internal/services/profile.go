package services

import (
	"context"

	"github.com/PranamRaj/football-connect/types"
)

// PlayerRepository defines the player reads used by profile aggregation.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int) (types.Player, error)
	GetByAccountID(ctx context.Context, accountID int) (types.Player, error)
	UpsertSkill(ctx context.Context, playerID int, skill types.Skill) error
	ListSkills(ctx context.Context, playerID int) ([]types.Skill, error)
	RequestMembership(ctx context.Context, playerID, clubID int) error
	ListMemberships(ctx context.Context, playerID int) ([]types.Membership, error)
}

// ClubRepository defines the club reads used by profile aggregation.
type ClubRepository interface {
	GetByID(ctx context.Context, id int) (types.Club, error)
	ListMembers(ctx context.Context, clubID int) ([]types.ClubMember, error)
}

// MatchCounter provides the matches-played approximation.
type MatchCounter interface {
	CountForTeamName(ctx context.Context, name string) (int, error)
}

// ProfileService assembles composite read views of players and clubs. It
// never mutates state.
type ProfileService struct {
	players PlayerRepository
	clubs   ClubRepository
	matches MatchCounter
}

func NewProfileService(players PlayerRepository, clubs ClubRepository, matches MatchCounter) *ProfileService {
	return &ProfileService{players: players, clubs: clubs, matches: matches}
}

// OwnPlayerProfile builds the full composite view for the player owned by
// accountID: base profile with email, skills, memberships and stats.
func (s *ProfileService) OwnPlayerProfile(ctx context.Context, accountID int) (types.PlayerProfile, error) {
	player, err := s.players.GetByAccountID(ctx, accountID)
	if err != nil {
		return types.PlayerProfile{}, err
	}

	skills, err := s.players.ListSkills(ctx, player.ID)
	if err != nil {
		return types.PlayerProfile{}, err
	}

	memberships, err := s.players.ListMemberships(ctx, player.ID)
	if err != nil {
		return types.PlayerProfile{}, err
	}

	// Matches are matched on the player's full name against match team
	// names; see the repository for the caveat.
	matchCount, err := s.matches.CountForTeamName(ctx, player.FullName)
	if err != nil {
		return types.PlayerProfile{}, err
	}

	return types.PlayerProfile{
		Player: player,
		Skills: skills,
		Clubs:  memberships,
		Stats: types.PlayerStats{
			Matches: matchCount,
			Clubs:   len(memberships),
		},
	}, nil
}

// PlayerProfile is the public view of a player by profile id: base fields
// plus skills, no memberships or stats.
func (s *ProfileService) PlayerProfile(ctx context.Context, id int) (types.PlayerProfile, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return types.PlayerProfile{}, err
	}

	skills, err := s.players.ListSkills(ctx, player.ID)
	if err != nil {
		return types.PlayerProfile{}, err
	}

	return types.PlayerProfile{
		Player: player,
		Skills: skills,
		Clubs:  []types.Membership{},
	}, nil
}

// ClubProfile is the public view of a club by profile id, including its
// member list.
func (s *ProfileService) ClubProfile(ctx context.Context, id int) (types.ClubProfile, error) {
	club, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		return types.ClubProfile{}, err
	}

	members, err := s.clubs.ListMembers(ctx, club.ID)
	if err != nil {
		return types.ClubProfile{}, err
	}

	return types.ClubProfile{Club: club, Members: members}, nil
}
