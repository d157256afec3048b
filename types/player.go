package types

import "time"

// Player is the profile owned by an individual account. Everything except
// FullName is optional at registration time.
type Player struct {
	ID              int        `json:"id" db:"id"`
	AccountID       int        `json:"account_id" db:"account_id"`
	FullName        string     `json:"full_name" db:"full_name"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	BirthDate       *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Gender          *string    `json:"gender,omitempty" db:"gender"`
	City            *string    `json:"city,omitempty" db:"city"`
	State           *string    `json:"state,omitempty" db:"state"`
	Locality        *string    `json:"locality,omitempty" db:"locality"`
	Position        *string    `json:"position,omitempty" db:"position"`
	ExperienceLevel *string    `json:"experience_level,omitempty" db:"experience_level"`
	PreferredFoot   *string    `json:"preferred_foot,omitempty" db:"preferred_foot"`
	Height          *float64   `json:"height,omitempty" db:"height"`
	Weight          *float64   `json:"weight,omitempty" db:"weight"`
	Bio             *string    `json:"bio,omitempty" db:"bio"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`

	// Email is joined in from the owning account on profile reads.
	Email string `json:"email,omitempty" db:"-"`
}

// Skill is a named rating on a player, unique per (player, skill name).
type Skill struct {
	SkillName string  `json:"skill_name" db:"skill_name"`
	Rating    float64 `json:"rating" db:"rating"`
}

// Membership is a player's relationship to a club, joined with the club's
// public fields for display.
type Membership struct {
	ClubID   int       `json:"id" db:"club_id"`
	Name     string    `json:"name" db:"name"`
	City     *string   `json:"city,omitempty" db:"city"`
	State    *string   `json:"state,omitempty" db:"state"`
	Status   string    `json:"status" db:"status"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// PlayerStats are the derived counters on a composite profile. Matches
// counts match rows whose team name equals the player's full name; this is
// a carried-over approximation, not a relational link.
type PlayerStats struct {
	Matches int `json:"matches"`
	Clubs   int `json:"clubs"`
}

// PlayerProfile is the composite read model for a player: base profile,
// skills, memberships and derived stats. Never includes secret material.
type PlayerProfile struct {
	Player
	Skills []Skill      `json:"skills"`
	Clubs  []Membership `json:"clubs"`
	Stats  PlayerStats  `json:"stats"`
}
