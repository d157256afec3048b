package types

import "time"

// Account roles. An individual account owns a player profile, an
// organization account owns a club profile.
const (
	RoleIndividual   = "individual"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
)

// Account represents an authenticatable identity in the system.
type Account struct {
	// ID is the unique identifier of the account.
	ID int `json:"id" db:"id"`

	// Email is the account's unique email address, stored as received.
	Email string `json:"email" db:"email"`

	// Role indicates which profile variant the account owns
	// ("individual", "organization") or grants elevated access ("admin").
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the account's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
