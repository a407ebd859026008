package appointment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id string) error
	// ListAll returns the full collection, oldest first. The portal's
	// dashboard filters it per patient in memory.
	ListAll(ctx context.Context) ([]*Record, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Record, int, error)
	// MonthlyTrends buckets a patient's appointment volume by month,
	// most recent months first.
	MonthlyTrends(ctx context.Context, ownerID string, months int) ([]Trend, error)
}
