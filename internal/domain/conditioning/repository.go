package conditioning

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id, ownerUserID string) (Record, error)
	ListByOwner(ctx context.Context, ownerUserID string, status Status) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id, ownerUserID string) error

	// FindCurrentByBird busca el ciclo en curso (active o resting) del
	// ave. found=false no es un error: significa que puede crearse otro.
	FindCurrentByBird(ctx context.Context, ownerUserID, birdID string) (Record, bool, error)
}
