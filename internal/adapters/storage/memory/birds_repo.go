package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"castador-pro/internal/domain/birds"
)

var (
	ErrNotFound = errors.New("not found")
)

type birdRepo struct {
	mu   sync.RWMutex
	byID map[string]birds.Bird
}

func NewBirdRepo() birds.Repository {
	return &birdRepo{
		byID: make(map[string]birds.Bird),
	}
}

func (r *birdRepo) Create(ctx context.Context, b birds.Bird) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("bird id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("bird already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *birdRepo) GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok || b.OwnerUserID != ownerUserID {
		return birds.Bird{}, ErrNotFound
	}
	return b, nil
}

func (r *birdRepo) ListByOwner(ctx context.Context, ownerUserID string, f birds.ListFilter) ([]birds.Bird, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]birds.Bird, 0)
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if f.Role != "" && b.Role != f.Role {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Color != "" && !containsFold(b.Color, f.Color) {
			continue
		}
		if f.Line != "" && !containsFold(b.Line, f.Line) {
			continue
		}
		out = append(out, b)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// containsFold: substring case-insensitive, el mismo contrato que el
// filtro por línea de las estadísticas de peleas.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (r *birdRepo) Update(ctx context.Context, b birds.Bird) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("bird id required")
	}
	if _, exists := r.byID[b.ID]; !exists {
		return ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *birdRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok || b.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *birdRepo) ListChildren(ctx context.Context, ownerUserID, parentID string, viaFather bool) ([]birds.Bird, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]birds.Bird, 0)
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if viaFather && b.FatherID == parentID {
			out = append(out, b)
		}
		if !viaFather && b.MotherID == parentID {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *birdRepo) CountChildren(ctx context.Context, ownerUserID, birdID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if b.FatherID == birdID || b.MotherID == birdID {
			n++
		}
	}
	return n, nil
}

func (r *birdRepo) Count(ctx context.Context, ownerUserID string, f birds.CountFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if f.Role != "" && b.Role != f.Role {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		n++
	}
	return n, nil
}
