package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"castador-pro/internal/domain/conditioning"
)

type conditioningRepo struct {
	mu   sync.RWMutex
	byID map[string]conditioning.Record
}

func NewConditioningRepo() conditioning.Repository {
	return &conditioningRepo{
		byID: make(map[string]conditioning.Record),
	}
}

// clone copia el slice de trabajos para que el caller no comparta
// memoria con lo guardado.
func cloneRecord(rec conditioning.Record) conditioning.Record {
	out := rec
	out.Sessions = make([]conditioning.Session, len(rec.Sessions))
	copy(out.Sessions, rec.Sessions)
	return out
}

func (r *conditioningRepo) Create(ctx context.Context, rec conditioning.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("conditioning id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("conditioning record already exists")
	}
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *conditioningRepo) GetByID(ctx context.Context, id, ownerUserID string) (conditioning.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok || rec.OwnerUserID != ownerUserID {
		return conditioning.Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *conditioningRepo) ListByOwner(ctx context.Context, ownerUserID string, status conditioning.Status) ([]conditioning.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]conditioning.Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, cloneRecord(rec))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *conditioningRepo) Update(ctx context.Context, rec conditioning.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *conditioningRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *conditioningRepo) FindCurrentByBird(ctx context.Context, ownerUserID, birdID string) (conditioning.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID || rec.BirdID != birdID {
			continue
		}
		if rec.Status == conditioning.StatusActive || rec.Status == conditioning.StatusResting {
			return cloneRecord(rec), true, nil
		}
	}
	return conditioning.Record{}, false, nil
}
