package fights

import "context"

type ListFilter struct {
	BirdID string
	Result Result
}

type Repository interface {
	Create(ctx context.Context, f Fight) error
	GetByID(ctx context.Context, id, ownerUserID string) (Fight, error)

	// ListByOwner devuelve las peleas ordenadas por fecha descendente.
	ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Fight, error)
	Update(ctx context.Context, f Fight) error
	Delete(ctx context.Context, id, ownerUserID string) error

	// ListRecent devuelve las últimas n peleas por fecha.
	ListRecent(ctx context.Context, ownerUserID string, n int) ([]Fight, error)

	// DeleteByBird borra todas las peleas de un ave (limpieza al borrarla).
	DeleteByBird(ctx context.Context, ownerUserID, birdID string) error
}
