package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/PranamRaj/football-connect/types"
)

// PlayerRepository handles persistence for player profiles, their skills
// and their club memberships.
type PlayerRepository struct {
	db *sql.DB
}

func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreateWithAccount inserts the account and its player profile in a single
// transaction. Nothing persists if either insert fails; a unique-constraint
// violation on the email surfaces as ErrDuplicate.
func (r *PlayerRepository) CreateWithAccount(ctx context.Context, account types.Account, player types.Player) (types.Account, types.Player, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Account{}, types.Player{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	const accountQuery = `
		INSERT INTO accounts (email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		accountQuery,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Account{}, types.Player{}, ErrDuplicate
		}
		return types.Account{}, types.Player{}, err
	}

	player.AccountID = account.ID
	player.CreatedAt = now

	const playerQuery = `
		INSERT INTO players (account_id, full_name, phone, birth_date, gender, city, state, locality,
			position, experience_level, preferred_foot, height, weight, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		playerQuery,
		player.AccountID,
		player.FullName,
		player.Phone,
		player.BirthDate,
		player.Gender,
		player.City,
		player.State,
		player.Locality,
		player.Position,
		player.ExperienceLevel,
		player.PreferredFoot,
		player.Height,
		player.Weight,
		player.Bio,
		player.CreatedAt,
	).Scan(&player.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Account{}, types.Player{}, ErrDuplicate
		}
		return types.Account{}, types.Player{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Account{}, types.Player{}, err
	}
	return account, player, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int) (types.Player, error) {
	const query = `
		SELECT p.id, p.account_id, p.full_name, p.phone, p.birth_date, p.gender, p.city, p.state,
			p.locality, p.position, p.experience_level, p.preferred_foot, p.height, p.weight, p.bio,
			p.created_at, a.email
		FROM players p
		JOIN accounts a ON p.account_id = a.id
		WHERE p.id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *PlayerRepository) GetByAccountID(ctx context.Context, accountID int) (types.Player, error) {
	const query = `
		SELECT p.id, p.account_id, p.full_name, p.phone, p.birth_date, p.gender, p.city, p.state,
			p.locality, p.position, p.experience_level, p.preferred_foot, p.height, p.weight, p.bio,
			p.created_at, a.email
		FROM players p
		JOIN accounts a ON p.account_id = a.id
		WHERE p.account_id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, accountID))
}

func (r *PlayerRepository) scanPlayer(row *sql.Row) (types.Player, error) {
	var player types.Player
	err := row.Scan(
		&player.ID,
		&player.AccountID,
		&player.FullName,
		&player.Phone,
		&player.BirthDate,
		&player.Gender,
		&player.City,
		&player.State,
		&player.Locality,
		&player.Position,
		&player.ExperienceLevel,
		&player.PreferredFoot,
		&player.Height,
		&player.Weight,
		&player.Bio,
		&player.CreatedAt,
		&player.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Player{}, ErrNotFound
		}
		return types.Player{}, err
	}
	return player, nil
}

// UpsertSkill inserts the skill or replaces its rating when the player
// already has a skill with that name.
func (r *PlayerRepository) UpsertSkill(ctx context.Context, playerID int, skill types.Skill) error {
	const query = `
		INSERT INTO player_skills (player_id, skill_name, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, skill_name) DO UPDATE SET rating = EXCLUDED.rating`
	_, err := r.db.ExecContext(ctx, query, playerID, skill.SkillName, skill.Rating)
	return err
}

func (r *PlayerRepository) ListSkills(ctx context.Context, playerID int) ([]types.Skill, error) {
	const query = `
		SELECT skill_name, rating
		FROM player_skills
		WHERE player_id = $1
		ORDER BY skill_name`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]types.Skill, 0)
	for rows.Next() {
		var skill types.Skill
		if err := rows.Scan(&skill.SkillName, &skill.Rating); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

// RequestMembership records a pending membership request. Re-requesting an
// existing (player, club) pair is a no-op; the constraint resolves the race
// between concurrent requests into a single row.
func (r *PlayerRepository) RequestMembership(ctx context.Context, playerID, clubID int) error {
	const query = `
		INSERT INTO club_memberships (player_id, club_id, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (player_id, club_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, playerID, clubID)
	return err
}

func (r *PlayerRepository) ListMemberships(ctx context.Context, playerID int) ([]types.Membership, error) {
	const query = `
		SELECT c.id, c.name, c.city, c.state, cm.status, cm.joined_at
		FROM club_memberships cm
		JOIN clubs c ON cm.club_id = c.id
		WHERE cm.player_id = $1
		ORDER BY cm.joined_at`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]types.Membership, 0)
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ClubID, &m.Name, &m.City, &m.State, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}
