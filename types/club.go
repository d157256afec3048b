package types

import "time"

// Club is the profile owned by an organization account.
type Club struct {
	ID              int        `json:"id" db:"id"`
	AccountID       int        `json:"account_id" db:"account_id"`
	Name            string     `json:"name" db:"name"`
	ContactPerson   *string    `json:"contact_person,omitempty" db:"contact_person"`
	ContactPhone    *string    `json:"contact_phone,omitempty" db:"contact_phone"`
	Website         *string    `json:"website,omitempty" db:"website"`
	EstablishedDate *time.Time `json:"established_date,omitempty" db:"established_date"`
	City            *string    `json:"city,omitempty" db:"city"`
	State           *string    `json:"state,omitempty" db:"state"`
	PostalCode      *string    `json:"postal_code,omitempty" db:"postal_code"`
	Locality        *string    `json:"locality,omitempty" db:"locality"`
	MemberCount     *int       `json:"member_count,omitempty" db:"member_count"`
	Description     *string    `json:"description,omitempty" db:"description"`

	// Certificate and Photos hold opaque blob store keys; the core never
	// interprets them beyond retrieval by the static file layer.
	Certificate *string  `json:"certificate,omitempty" db:"certificate"`
	Photos      []string `json:"photos" db:"photos"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Email is joined in from the owning account on profile reads.
	Email string `json:"email,omitempty" db:"-"`
}

// ClubMember is a row in a club's member list, joined with the player's
// public fields.
type ClubMember struct {
	PlayerID int       `json:"player_id" db:"player_id"`
	FullName string    `json:"full_name" db:"full_name"`
	Status   string    `json:"status" db:"status"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// ClubProfile is the public read model for a club.
type ClubProfile struct {
	Club
	Members []ClubMember `json:"members"`
}
