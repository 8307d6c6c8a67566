package health

import (
	"context"
	"time"
)

type ListFilter struct {
	BirdID string
	Type   Type
}

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id, ownerUserID string) (Record, error)

	// ListByOwner devuelve los registros ordenados por fecha descendente.
	ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id, ownerUserID string) error

	// ListUpcoming devuelve registros con NextDate en [from, to],
	// ordenados por NextDate ascendente.
	ListUpcoming(ctx context.Context, ownerUserID string, from, to time.Time) ([]Record, error)

	// DeleteByBird borra todos los registros de un ave.
	DeleteByBird(ctx context.Context, ownerUserID, birdID string) error
}
