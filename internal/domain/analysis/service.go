package analysis

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	analyses Repository
}

func NewService(analyses Repository) *Service {
	return &Service{analyses: analyses}
}

func (s *Service) Create(ctx context.Context, a *Analysis) error {
	if strings.TrimSpace(a.PatientID) == "" {
		return fmt.Errorf("analysis patient is required")
	}
	if strings.TrimSpace(a.Kind) == "" {
		return fmt.Errorf("analysis kind is required")
	}
	return s.analyses.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id string) (*Analysis, error) {
	return s.analyses.GetByID(ctx, id)
}

// ListByOwner returns a patient's analyses, newest first. An empty owner id
// sees nothing.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Analysis, int, error) {
	if ownerID == "" {
		return []*Analysis{}, 0, nil
	}
	return s.analyses.ListByOwner(ctx, ownerID, limit, offset)
}

// Counts returns the analysis and rendered-report totals for a patient in
// one pass.
func (s *Service) Counts(ctx context.Context, ownerID string) (analyses, reports int, err error) {
	if ownerID == "" {
		return 0, 0, nil
	}
	items, total, err := s.analyses.ListByOwner(ctx, ownerID, 1000, 0)
	if err != nil {
		return 0, 0, err
	}
	for _, a := range items {
		if a.HasReport() {
			reports++
		}
	}
	return total, reports, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.analyses.Delete(ctx, id)
}
