package appointment

import (
	"context"

	"github.com/carelink/portal/internal/domain/booking"
)

// Book implements booking.Booker: it turns a validated form into a pending
// appointment owned by patientID.
func (s *Service) Book(ctx context.Context, patientID string, form booking.FormState) error {
	rec := &Record{
		PatientID:       &patientID,
		DoctorID:        form.Doctor,
		AppointmentDate: form.AppointmentDate,
		AppointmentTime: form.AppointmentTime,
		Reason:          form.Reason,
		Symptoms:        form.Symptoms,
	}
	return s.Create(ctx, rec)
}
