package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"castador-pro/internal/domain/health"
)

type healthRepo struct {
	mu   sync.RWMutex
	byID map[string]health.Record
}

func NewHealthRepo() health.Repository {
	return &healthRepo{
		byID: make(map[string]health.Record),
	}
}

func (r *healthRepo) Create(ctx context.Context, rec health.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("health record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("health record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRepo) GetByID(ctx context.Context, id, ownerUserID string) (health.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok || rec.OwnerUserID != ownerUserID {
		return health.Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *healthRepo) ListByOwner(ctx context.Context, ownerUserID string, f health.ListFilter) ([]health.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]health.Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID {
			continue
		}
		if f.BirdID != "" && rec.BirdID != f.BirdID {
			continue
		}
		if f.Type != "" && rec.Type != f.Type {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}

func (r *healthRepo) Update(ctx context.Context, rec health.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *healthRepo) ListUpcoming(ctx context.Context, ownerUserID string, from, to time.Time) ([]health.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]health.Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID || rec.NextDate == nil {
			continue
		}
		if rec.NextDate.Before(from) || rec.NextDate.After(to) {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].NextDate.Before(*out[j].NextDate)
	})

	return out, nil
}

func (r *healthRepo) DeleteByBird(ctx context.Context, ownerUserID, birdID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.OwnerUserID == ownerUserID && rec.BirdID == birdID {
			delete(r.byID, id)
		}
	}
	return nil
}
