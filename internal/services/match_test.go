package services

import (
	"context"
	"testing"

	"github.com/PranamRaj/football-connect/types"
)

func TestCreateMatch(t *testing.T) {
	repo := newFakeMatches()
	svc := NewMatchService(repo)

	match, err := svc.Create(context.Background(), 1, types.Match{
		Title: "Sunday League",
		TeamA: "FC Pune",
		TeamB: "Mumbai XI",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if match.ID == 0 {
		t.Fatalf("expected match id to be assigned")
	}
	if match.CreatedBy != 1 {
		t.Fatalf("created_by %d, want 1", match.CreatedBy)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	svc := NewMatchService(newFakeMatches())

	cases := []struct {
		name  string
		match types.Match
	}{
		{"missing title", types.Match{TeamA: "A", TeamB: "B"}},
		{"missing team a", types.Match{Title: "t", TeamB: "B"}},
		{"missing team b", types.Match{Title: "t", TeamA: "A"}},
		{"blank teams", types.Match{Title: "t", TeamA: "  ", TeamB: "B"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), 1, tc.match); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
