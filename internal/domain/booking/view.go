package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrSubmitInFlight is returned when a submission is attempted while an
// earlier one has not settled yet.
var ErrSubmitInFlight = errors.New("a booking submission is already in progress")

// Booker creates the appointment behind a validated form. Implemented by
// the appointment service.
type Booker interface {
	Book(ctx context.Context, patientID string, form FormState) error
}

// View drives one patient's booking form: validation, single-flight
// submission, and the transient success notice.
type View struct {
	booker Booker
	window Window
	notice *Notice
	logger zerolog.Logger

	submitCh chan struct{}
}

func NewView(booker Booker, window Window, noticeTTL time.Duration, logger zerolog.Logger) *View {
	v := &View{
		booker:   booker,
		window:   window,
		notice:   NewNotice(noticeTTL),
		logger:   logger,
		submitCh: make(chan struct{}, 1),
	}
	v.submitCh <- struct{}{}
	return v
}

// Submit validates the form and, when it passes, creates the appointment.
// Field violations come back as FieldErrors, not as an error. At most one
// submission runs at a time; a duplicate is rejected with ErrSubmitInFlight
// so the form keeps the patient's input untouched.
func (v *View) Submit(ctx context.Context, patientID string, form FormState) (FieldErrors, error) {
	fieldErrs := v.window.ValidateForm(form)
	if !fieldErrs.Valid() {
		return fieldErrs, nil
	}

	select {
	case <-v.submitCh:
	default:
		return nil, ErrSubmitInFlight
	}
	defer func() { v.submitCh <- struct{}{} }()

	if err := v.booker.Book(ctx, patientID, form); err != nil {
		// Static operation name only; the form contents never reach the log.
		v.logger.Error().Err(err).Msg("booking submission failed")
		return nil, err
	}

	v.notice.Show("Appointment booked successfully")
	return nil, nil
}

// NoticeMessage returns the currently visible success message, if any.
func (v *View) NoticeMessage() string {
	return v.notice.Message()
}

// Close tears the view down, releasing the notice's hide timer.
func (v *View) Close() {
	v.notice.Close()
}
