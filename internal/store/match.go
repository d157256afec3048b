package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/PranamRaj/football-connect/types"
)

// MatchRepository handles persistence for matches.
type MatchRepository struct {
	db *sql.DB
}

func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, match types.Match) (types.Match, error) {
	match.CreatedAt = time.Now()

	const query = `
		INSERT INTO matches (title, team_a, team_b, match_date, location, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		match.Title,
		match.TeamA,
		match.TeamB,
		match.MatchDate,
		match.Location,
		match.CreatedBy,
		match.CreatedAt,
	).Scan(&match.ID); err != nil {
		return types.Match{}, err
	}
	return match, nil
}

func (r *MatchRepository) List(ctx context.Context, limit int) ([]types.Match, error) {
	if limit < 1 {
		limit = 100
	}

	const query = `
		SELECT id, title, team_a, team_b, match_date, location, created_by, created_at
		FROM matches
		ORDER BY match_date DESC NULLS LAST, id DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]types.Match, 0, limit)
	for rows.Next() {
		var m types.Match
		var createdBy sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Title, &m.TeamA, &m.TeamB, &m.MatchDate, &m.Location, &createdBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedBy = int(createdBy.Int64)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// CountForTeamName counts matches where either side's team name equals the
// given name. The matches-played stat is derived from this string match.
func (r *MatchRepository) CountForTeamName(ctx context.Context, name string) (int, error) {
	const query = `SELECT COUNT(*) FROM matches WHERE team_a = $1 OR team_b = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
