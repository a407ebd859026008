package analysis

import "context"

// Repository is the persistence port for analyses.
type Repository interface {
	Create(ctx context.Context, a *Analysis) error
	GetByID(ctx context.Context, id string) (*Analysis, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Analysis, int, error)
	Delete(ctx context.Context, id string) error
}
