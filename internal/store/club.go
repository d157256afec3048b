package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/PranamRaj/football-connect/types"
)

// ClubRepository handles persistence for club profiles.
type ClubRepository struct {
	db *sql.DB
}

func NewClubRepository(db *sql.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// CreateWithAccount inserts the account and its club profile in a single
// transaction. The attachment keys in club.Certificate/club.Photos refer to
// blobs written before this call; they are not removed on rollback.
func (r *ClubRepository) CreateWithAccount(ctx context.Context, account types.Account, club types.Club) (types.Account, types.Club, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Account{}, types.Club{}, err
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
			return types.Account{}, types.Club{}, ErrDuplicate
		}
		return types.Account{}, types.Club{}, err
	}

	club.AccountID = account.ID
	club.CreatedAt = now
	if club.Photos == nil {
		club.Photos = []string{}
	}
	photosJSON, err := json.Marshal(club.Photos)
	if err != nil {
		return types.Account{}, types.Club{}, err
	}

	const clubQuery = `
		INSERT INTO clubs (account_id, name, contact_person, contact_phone, website, established_date,
			city, state, postal_code, locality, member_count, description, certificate, photos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		clubQuery,
		club.AccountID,
		club.Name,
		club.ContactPerson,
		club.ContactPhone,
		club.Website,
		club.EstablishedDate,
		club.City,
		club.State,
		club.PostalCode,
		club.Locality,
		club.MemberCount,
		club.Description,
		club.Certificate,
		photosJSON,
		club.CreatedAt,
	).Scan(&club.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Account{}, types.Club{}, ErrDuplicate
		}
		return types.Account{}, types.Club{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Account{}, types.Club{}, err
	}
	return account, club, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id int) (types.Club, error) {
	const query = `
		SELECT c.id, c.account_id, c.name, c.contact_person, c.contact_phone, c.website,
			c.established_date, c.city, c.state, c.postal_code, c.locality, c.member_count,
			c.description, c.certificate, c.photos, c.created_at, a.email
		FROM clubs c
		JOIN accounts a ON c.account_id = a.id
		WHERE c.id = $1`

	var club types.Club
	var photosJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&club.ID,
		&club.AccountID,
		&club.Name,
		&club.ContactPerson,
		&club.ContactPhone,
		&club.Website,
		&club.EstablishedDate,
		&club.City,
		&club.State,
		&club.PostalCode,
		&club.Locality,
		&club.MemberCount,
		&club.Description,
		&club.Certificate,
		&photosJSON,
		&club.CreatedAt,
		&club.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Club{}, ErrNotFound
		}
		return types.Club{}, err
	}

	club.Photos = []string{}
	_ = json.Unmarshal(photosJSON, &club.Photos)
	return club, nil
}

func (r *ClubRepository) ListMembers(ctx context.Context, clubID int) ([]types.ClubMember, error) {
	const query = `
		SELECT p.id, p.full_name, cm.status, cm.joined_at
		FROM club_memberships cm
		JOIN players p ON cm.player_id = p.id
		WHERE cm.club_id = $1
		ORDER BY cm.joined_at`
	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]types.ClubMember, 0)
	for rows.Next() {
		var m types.ClubMember
		if err := rows.Scan(&m.PlayerID, &m.FullName, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
