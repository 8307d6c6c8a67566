package memory

import (
	"context"
	"testing"
	"time"

	"castador-pro/internal/domain/birds"
)

const owner = "user-1"

func seedBird(t *testing.T, repo birds.Repository, id, color, line string, at time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), birds.Bird{
		ID:          id,
		OwnerUserID: owner,
		Role:        birds.RoleRooster,
		Code:        "C-" + id,
		Color:       color,
		Line:        line,
		Status:      birds.StatusActive,
		CreatedAt:   at,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBirdRepo_ListByOwner_ColorLineSubstring(t *testing.T) {
	repo := NewBirdRepo()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seedBird(t, repo, "b1", "light blue", "Sweater McLean", base)
	seedBird(t, repo, "b2", "colorado", "kelso", base.Add(time.Minute))

	// Substring, sin distinguir mayúsculas.
	items, err := repo.ListByOwner(context.Background(), owner, birds.ListFilter{Color: "blue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "b1" {
		t.Fatalf("expected b1 for color substring, got %d items", len(items))
	}

	items, err = repo.ListByOwner(context.Background(), owner, birds.ListFilter{Line: "sweater"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "b1" {
		t.Fatalf("expected b1 for line substring, got %d items", len(items))
	}

	items, err = repo.ListByOwner(context.Background(), owner, birds.ListFilter{Line: "hatch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no match, got %d items", len(items))
	}
}

func TestBirdRepo_ListByOwner_SortedByCreatedAt(t *testing.T) {
	repo := NewBirdRepo()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seedBird(t, repo, "b2", "", "", base.Add(time.Minute))
	seedBird(t, repo, "b1", "", "", base)

	items, err := repo.ListByOwner(context.Background(), owner, birds.ListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "b1" || items[1].ID != "b2" {
		t.Fatalf("expected created_at asc order, got %v", items)
	}
}
