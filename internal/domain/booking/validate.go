package booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MinReasonLength is the minimum trimmed length of a visit reason, in
// characters.
const MinReasonLength = 10

// Default business hours are inclusive on both ends: 09:00 through 17:00.
const (
	businessOpenMinute  = 9 * 60
	businessCloseMinute = 17 * 60
)

// now is stubbed in tests.
var now = time.Now

// FormState is the booking form as the patient filled it in.
type FormState struct {
	Doctor          string `json:"doctor"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Reason          string `json:"reason"`
	Symptoms        string `json:"symptoms"`
}

// FieldErrors maps a validated field name to its human-readable message, or
// "" when the field passes. A field has a non-empty entry exactly when it
// currently violates its rule.
type FieldErrors map[string]string

// Valid reports whether every validated field passes.
func (fe FieldErrors) Valid() bool {
	for _, msg := range fe {
		if msg != "" {
			return false
		}
	}
	return true
}

// Window is the bookable time-of-day range, inclusive on both ends.
type Window struct {
	openMinute  int
	closeMinute int
}

// DefaultWindow returns the standard 09:00 to 17:00 business hours.
func DefaultWindow() Window {
	return Window{openMinute: businessOpenMinute, closeMinute: businessCloseMinute}
}

// ParseWindow builds a Window from "HH:MM" opening and closing bounds.
func ParseWindow(open, close string) (Window, error) {
	o, err := time.Parse("15:04", open)
	if err != nil {
		return Window{}, fmt.Errorf("invalid opening time %q: %w", open, err)
	}
	c, err := time.Parse("15:04", close)
	if err != nil {
		return Window{}, fmt.Errorf("invalid closing time %q: %w", close, err)
	}
	w := Window{
		openMinute:  o.Hour()*60 + o.Minute(),
		closeMinute: c.Hour()*60 + c.Minute(),
	}
	if w.closeMinute <= w.openMinute {
		return Window{}, fmt.Errorf("closing time %s is not after opening time %s", close, open)
	}
	return w, nil
}

// Contains reports whether timeStr ("HH:MM") falls inside the window,
// inclusive on both ends. A malformed time is outside every window.
func (w Window) Contains(timeStr string) bool {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= w.openMinute && minute <= w.closeMinute
}

func minuteClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IsFutureDate reports whether dateStr is today or later, comparing calendar
// days at local midnight. The predicate is strict: an empty or malformed
// date is false. Field-level leniency for untouched fields lives in
// FieldError, not here.
func IsFutureDate(dateStr string) bool {
	if len(dateStr) < 10 {
		return false
	}
	d, err := time.ParseInLocation("2006-01-02", dateStr[:10], time.Local)
	if err != nil {
		return false
	}
	y, m, day := now().Date()
	midnight := time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	return !d.Before(midnight)
}

// IsWithinBusinessHours reports whether timeStr falls inside the default
// business hours.
func IsWithinBusinessHours(timeStr string) bool {
	return DefaultWindow().Contains(timeStr)
}

// FieldError returns the inline message for one field, or "" when the field
// passes. Date and time treat emptiness as not-yet-an-error so messages only
// appear once the patient has typed something; reason is required outright,
// so its message shows immediately.
func (w Window) FieldError(field, value string) string {
	switch field {
	case "doctor":
		if strings.TrimSpace(value) == "" {
			return "Please select a doctor"
		}
	case "appointmentDate":
		if value == "" {
			return ""
		}
		if !IsFutureDate(value) {
			return "Appointment date must be today or in the future"
		}
	case "appointmentTime":
		if value == "" {
			return ""
		}
		if !w.Contains(value) {
			return fmt.Sprintf("Appointments are available between %s and %s",
				minuteClock(w.openMinute), minuteClock(w.closeMinute))
		}
	case "reason":
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "Please provide a reason for the visit"
		}
		if utf8.RuneCountInString(trimmed) < MinReasonLength {
			return fmt.Sprintf("Reason must be at least %d characters", MinReasonLength)
		}
	}
	return ""
}

// FieldError validates one field against the default business hours.
func FieldError(field, value string) string {
	return DefaultWindow().FieldError(field, value)
}

// ValidateForm maps FieldError over the four validated keys.
func (w Window) ValidateForm(f FormState) FieldErrors {
	return FieldErrors{
		"doctor":          w.FieldError("doctor", f.Doctor),
		"appointmentDate": w.FieldError("appointmentDate", f.AppointmentDate),
		"appointmentTime": w.FieldError("appointmentTime", f.AppointmentTime),
		"reason":          w.FieldError("reason", f.Reason),
	}
}

// ValidateForm validates against the default business hours.
func ValidateForm(f FormState) FieldErrors {
	return DefaultWindow().ValidateForm(f)
}
