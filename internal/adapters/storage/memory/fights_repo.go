package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"castador-pro/internal/domain/fights"
)

type fightRepo struct {
	mu   sync.RWMutex
	byID map[string]fights.Fight
}

func NewFightRepo() fights.Repository {
	return &fightRepo{
		byID: make(map[string]fights.Fight),
	}
}

func (r *fightRepo) Create(ctx context.Context, f fights.Fight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("fight id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("fight already exists")
	}
	r.byID[f.ID] = f
	return nil
}

func (r *fightRepo) GetByID(ctx context.Context, id, ownerUserID string) (fights.Fight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok || f.OwnerUserID != ownerUserID {
		return fights.Fight{}, ErrNotFound
	}
	return f, nil
}

func (r *fightRepo) ListByOwner(ctx context.Context, ownerUserID string, filter fights.ListFilter) ([]fights.Fight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fights.Fight, 0)
	for _, f := range r.byID {
		if f.OwnerUserID != ownerUserID {
			continue
		}
		if filter.BirdID != "" && f.BirdID != filter.BirdID {
			continue
		}
		if filter.Result != "" && f.Result != filter.Result {
			continue
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}

func (r *fightRepo) Update(ctx context.Context, f fights.Fight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[f.ID]; !exists {
		return ErrNotFound
	}
	r.byID[f.ID] = f
	return nil
}

func (r *fightRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok || f.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fightRepo) ListRecent(ctx context.Context, ownerUserID string, n int) ([]fights.Fight, error) {
	out, err := r.ListByOwner(ctx, ownerUserID, fights.ListFilter{})
	if err != nil {
		return nil, err
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *fightRepo) DeleteByBird(ctx context.Context, ownerUserID, birdID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, f := range r.byID {
		if f.OwnerUserID == ownerUserID && f.BirdID == birdID {
			delete(r.byID, id)
		}
	}
	return nil
}
