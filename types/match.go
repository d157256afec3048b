package types

import "time"

// Match is a scheduled or played fixture between two named teams.
type Match struct {
	ID        int        `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	TeamA     string     `json:"team_a" db:"team_a"`
	TeamB     string     `json:"team_b" db:"team_b"`
	MatchDate *time.Time `json:"match_date,omitempty" db:"match_date"`
	Location  *string    `json:"location,omitempty" db:"location"`
	CreatedBy int        `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
