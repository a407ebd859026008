package appointment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/carelink/portal/internal/domain/booking"
)

type Service struct {
	records Repository
	hours   booking.Window
}

func NewService(records Repository) *Service {
	return &Service{records: records, hours: booking.DefaultWindow()}
}

// SetBookingWindow overrides the default business hours.
func (s *Service) SetBookingWindow(w booking.Window) {
	s.hours = w
}

// Create validates and stores a new appointment. The booking rules are
// re-checked here so a client cannot bypass the form-level validation.
func (s *Service) Create(ctx context.Context, r *Record) error {
	if r.OwnerID() == "" {
		return fmt.Errorf("appointment owner is required")
	}
	if r.DoctorID == "" {
		return fmt.Errorf("doctor is required")
	}
	if !booking.IsFutureDate(r.AppointmentDate) {
		return fmt.Errorf("appointment date must be today or later")
	}
	if !s.hours.Contains(r.AppointmentTime) {
		return fmt.Errorf("appointment time must be within business hours")
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.Reason)) < booking.MinReasonLength {
		return fmt.Errorf("reason must be at least %d characters", booking.MinReasonLength)
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	return s.records.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.records.GetByID(ctx, id)
}

// ListAll returns the whole collection for the dashboard load cycle.
func (s *Service) ListAll(ctx context.Context) ([]*Record, error) {
	return s.records.ListAll(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Record, int, error) {
	if ownerID == "" {
		// Unresolved callers see nothing, not everything.
		return []*Record{}, 0, nil
	}
	return s.records.ListByOwner(ctx, ownerID, limit, offset)
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	AppointmentDate *string `json:"appointmentDate,omitempty"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
	Status          *Status `json:"status,omitempty"`
	Reason          *string `json:"reason,omitempty"`
	Symptoms        *string `json:"symptoms,omitempty"`
}

// Update applies a partial update on behalf of ownerID. Completed
// appointments are immutable; cancellation is only reachable from an
// active status.
func (s *Service) Update(ctx context.Context, id, ownerID string, req UpdateRequest) (*Record, error) {
	r, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("appointment not found: %w", err)
	}
	if ownerID == "" || r.OwnerID() != ownerID {
		return nil, fmt.Errorf("appointment does not belong to this patient")
	}
	if r.Status == StatusCompleted {
		return nil, fmt.Errorf("completed appointments cannot be changed")
	}

	if req.Status != nil {
		next := *req.Status
		if !next.Valid() {
			return nil, fmt.Errorf("invalid status: %s", next)
		}
		if next == StatusCancelled && !r.Status.Active() {
			return nil, fmt.Errorf("only pending or confirmed appointments can be cancelled")
		}
		r.Status = next
	}
	if req.AppointmentDate != nil {
		if !booking.IsFutureDate(*req.AppointmentDate) {
			return nil, fmt.Errorf("appointment date must be today or later")
		}
		r.AppointmentDate = *req.AppointmentDate
	}
	if req.AppointmentTime != nil {
		if !s.hours.Contains(*req.AppointmentTime) {
			return nil, fmt.Errorf("appointment time must be within business hours")
		}
		r.AppointmentTime = *req.AppointmentTime
	}
	if req.Reason != nil {
		if utf8.RuneCountInString(strings.TrimSpace(*req.Reason)) < booking.MinReasonLength {
			return nil, fmt.Errorf("reason must be at least %d characters", booking.MinReasonLength)
		}
		r.Reason = *req.Reason
	}
	if req.Symptoms != nil {
		r.Symptoms = *req.Symptoms
	}

	if err := s.records.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Cancel marks an active appointment cancelled on behalf of ownerID.
func (s *Service) Cancel(ctx context.Context, id, ownerID string) (*Record, error) {
	cancelled := StatusCancelled
	return s.Update(ctx, id, ownerID, UpdateRequest{Status: &cancelled})
}

// Trends returns the month-bucketed appointment volume for a patient.
func (s *Service) Trends(ctx context.Context, ownerID string, months int) ([]Trend, error) {
	if ownerID == "" {
		return []Trend{}, nil
	}
	if months <= 0 {
		months = 6
	}
	return s.records.MonthlyTrends(ctx, ownerID, months)
}
