package birds

import "context"

// ListFilter filtra el listado por igualdad (role, status) y por
// substring case-insensitive (color, line).
type ListFilter struct {
	Role   Role
	Status Status
	Color  string
	Line   string
}

// CountFilter cuenta por igualdad simple.
type CountFilter struct {
	Role   Role
	Status Status
}

type Repository interface {
	Create(ctx context.Context, b Bird) error
	GetByID(ctx context.Context, id, ownerUserID string) (Bird, error)
	ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Bird, error)
	Update(ctx context.Context, b Bird) error
	Delete(ctx context.Context, id, ownerUserID string) error

	// ListChildren devuelve las aves cuyo father_id (viaFather) o
	// mother_id (!viaFather) es parentID, dentro del owner.
	ListChildren(ctx context.Context, ownerUserID, parentID string, viaFather bool) ([]Bird, error)

	// CountChildren cuenta aves que referencian a birdID como padre o madre.
	CountChildren(ctx context.Context, ownerUserID, birdID string) (int, error)

	Count(ctx context.Context, ownerUserID string, f CountFilter) (int, error)
}
