package breeding

import "context"

type PairRepository interface {
	Create(ctx context.Context, p Pair) error
	GetByID(ctx context.Context, id, ownerUserID string) (Pair, error)
	ListByOwner(ctx context.Context, ownerUserID string, status PairStatus) ([]Pair, error)
	Update(ctx context.Context, p Pair) error
	Delete(ctx context.Context, id, ownerUserID string) error

	CountByOwner(ctx context.Context, ownerUserID string, status PairStatus) (int, error)

	// CountByBird cuenta cruces donde el ave figura como padre o madre.
	CountByBird(ctx context.Context, ownerUserID, birdID string) (int, error)
}

type LitterRepository interface {
	Create(ctx context.Context, l Litter) error
	GetByID(ctx context.Context, id, ownerUserID string) (Litter, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Litter, error)
	Update(ctx context.Context, l Litter) error
	Delete(ctx context.Context, id, ownerUserID string) error

	// CountActive cuenta camadas con incubación iniciada y sin fecha de
	// nacimiento todavía.
	CountActive(ctx context.Context, ownerUserID string) (int, error)
}
