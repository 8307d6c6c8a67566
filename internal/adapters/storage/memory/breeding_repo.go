package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"castador-pro/internal/domain/breeding"
)

type pairRepo struct {
	mu   sync.RWMutex
	byID map[string]breeding.Pair
}

func NewPairRepo() breeding.PairRepository {
	return &pairRepo{
		byID: make(map[string]breeding.Pair),
	}
}

func (r *pairRepo) Create(ctx context.Context, p breeding.Pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pair id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pair already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *pairRepo) GetByID(ctx context.Context, id, ownerUserID string) (breeding.Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return breeding.Pair{}, ErrNotFound
	}
	return p, nil
}

func (r *pairRepo) ListByOwner(ctx context.Context, ownerUserID string, status breeding.PairStatus) ([]breeding.Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breeding.Pair, 0)
	for _, p := range r.byID {
		if p.OwnerUserID != ownerUserID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}

	// Orden por fecha del cruce descendente, como lo muestra la app.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}

func (r *pairRepo) Update(ctx context.Context, p breeding.Pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *pairRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *pairRepo) CountByOwner(ctx context.Context, ownerUserID string, status breeding.PairStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.byID {
		if p.OwnerUserID != ownerUserID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *pairRepo) CountByBird(ctx context.Context, ownerUserID, birdID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.byID {
		if p.OwnerUserID != ownerUserID {
			continue
		}
		if p.FatherID == birdID || p.MotherID == birdID {
			n++
		}
	}
	return n, nil
}

type litterRepo struct {
	mu   sync.RWMutex
	byID map[string]breeding.Litter
}

func NewLitterRepo() breeding.LitterRepository {
	return &litterRepo{
		byID: make(map[string]breeding.Litter),
	}
}

func (r *litterRepo) Create(ctx context.Context, l breeding.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("litter id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("litter already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *litterRepo) GetByID(ctx context.Context, id, ownerUserID string) (breeding.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok || l.OwnerUserID != ownerUserID {
		return breeding.Litter{}, ErrNotFound
	}
	return l, nil
}

func (r *litterRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]breeding.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breeding.Litter, 0)
	for _, l := range r.byID {
		if l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *litterRepo) Update(ctx context.Context, l breeding.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; !exists {
		return ErrNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *litterRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok || l.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *litterRepo) CountActive(ctx context.Context, ownerUserID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, l := range r.byID {
		if l.OwnerUserID != ownerUserID {
			continue
		}
		if l.IncubationStart != nil && l.HatchDate == nil {
			n++
		}
	}
	return n, nil
}
