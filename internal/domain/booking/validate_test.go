package booking

import (
	"testing"
	"time"
)

// fixed "today" for date rules: 2026-03-15 local time, mid-afternoon.
func stubNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	}
	t.Cleanup(func() { now = orig })
}

func TestIsFutureDate(t *testing.T) {
	stubNow(t)

	cases := []struct {
		date string
		want bool
	}{
		{"", false},
		{"not-a-date", false},
		{"2026-03-15", true}, // today passes
		{"2026-03-16", true},
		{"2027-01-01", true},
		{"2026-03-14", false}, // yesterday
		{"2025-12-31", false},
		{"2026-03-16T08:00:00Z", true}, // timestamp tolerated, date part used
	}
	for _, tc := range cases {
		if got := IsFutureDate(tc.date); got != tc.want {
			t.Errorf("IsFutureDate(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestIsWithinBusinessHours(t *testing.T) {
	cases := []struct {
		time string
		want bool
	}{
		{"08:59", false},
		{"09:00", true}, // inclusive lower bound
		{"12:30", true},
		{"17:00", true}, // inclusive upper bound
		{"17:01", false},
		{"", false},
		{"25:00", false},
		{"nope", false},
	}
	for _, tc := range cases {
		if got := IsWithinBusinessHours(tc.time); got != tc.want {
			t.Errorf("IsWithinBusinessHours(%q) = %v, want %v", tc.time, got, tc.want)
		}
	}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("08:30", "16:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cases := []struct {
		time string
		want bool
	}{
		{"08:29", false},
		{"08:30", true}, // inclusive lower bound
		{"16:00", true}, // inclusive upper bound
		{"16:01", false},
	}
	for _, tc := range cases {
		if got := w.Contains(tc.time); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.time, got, tc.want)
		}
	}

	for _, bad := range [][2]string{
		{"nope", "17:00"},
		{"09:00", "nope"},
		{"17:00", "09:00"}, // closing before opening
		{"09:00", "09:00"}, // empty window
	} {
		if _, err := ParseWindow(bad[0], bad[1]); err == nil {
			t.Errorf("ParseWindow(%q, %q) should fail", bad[0], bad[1])
		}
	}
}

func TestWindow_FieldErrorUsesConfiguredBounds(t *testing.T) {
	w, err := ParseWindow("08:00", "14:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if msg := w.FieldError("appointmentTime", "08:30"); msg != "" {
		t.Errorf("08:30 is inside the configured window, got %q", msg)
	}
	msg := w.FieldError("appointmentTime", "16:00")
	if msg == "" {
		t.Fatal("16:00 is outside the configured window")
	}
	want := "Appointments are available between 08:00 and 14:00"
	if msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestFieldError_Doctor(t *testing.T) {
	if msg := FieldError("doctor", ""); msg == "" {
		t.Error("expected required message for empty doctor")
	}
	if msg := FieldError("doctor", "   "); msg == "" {
		t.Error("expected required message for whitespace doctor")
	}
	if msg := FieldError("doctor", "d1"); msg != "" {
		t.Errorf("expected no error, got %q", msg)
	}
}

func TestFieldError_DateEmptyPasses(t *testing.T) {
	stubNow(t)
	if msg := FieldError("appointmentDate", ""); msg != "" {
		t.Errorf("empty date should not error at field level, got %q", msg)
	}
	if msg := FieldError("appointmentDate", "2026-03-14"); msg == "" {
		t.Error("expected message for past date")
	}
	if msg := FieldError("appointmentDate", "2026-03-15"); msg != "" {
		t.Errorf("today should pass, got %q", msg)
	}
}

func TestFieldError_TimeEmptyPasses(t *testing.T) {
	if msg := FieldError("appointmentTime", ""); msg != "" {
		t.Errorf("empty time should not error at field level, got %q", msg)
	}
	if msg := FieldError("appointmentTime", "08:00"); msg == "" {
		t.Error("expected message for time outside business hours")
	}
	if msg := FieldError("appointmentTime", "17:00"); msg != "" {
		t.Errorf("17:00 should pass, got %q", msg)
	}
}

func TestFieldError_ReasonEmptyFails(t *testing.T) {
	// Unlike date and time, an empty reason is an immediate error.
	if msg := FieldError("reason", ""); msg == "" {
		t.Error("expected required message for empty reason")
	}
	if msg := FieldError("reason", "short"); msg == "" {
		t.Error("expected min-length message for short reason")
	}
	if msg := FieldError("reason", "   padded   "); msg == "" {
		t.Error("expected min-length message for whitespace-padded short reason")
	}
	// The minimum counts characters, not bytes: eight Cyrillic letters are
	// sixteen bytes but still too short.
	if msg := FieldError("reason", "головная"); msg == "" {
		t.Error("expected min-length message for 8-character non-ASCII reason")
	}
	if msg := FieldError("reason", "головная боль!"); msg != "" {
		t.Errorf("expected no error for 14-character non-ASCII reason, got %q", msg)
	}
	if msg := FieldError("reason", "long enough!!"); msg != "" {
		t.Errorf("expected no error, got %q", msg)
	}
}

func TestFieldError_UnknownField(t *testing.T) {
	if msg := FieldError("symptoms", ""); msg != "" {
		t.Errorf("unvalidated field should never error, got %q", msg)
	}
}

func TestValidateForm(t *testing.T) {
	stubNow(t)

	form := FormState{
		Doctor:          "d1",
		AppointmentDate: "2026-03-20",
		AppointmentTime: "10:00",
		Reason:          "persistent migraines",
	}
	errs := ValidateForm(form)
	if !errs.Valid() {
		t.Errorf("expected valid form, got %+v", errs)
	}
	if len(errs) != 4 {
		t.Errorf("expected entries for all four validated keys, got %d", len(errs))
	}

	form.Reason = "short"
	errs = ValidateForm(form)
	if errs.Valid() {
		t.Error("expected invalid form")
	}
	if errs["reason"] == "" {
		t.Error("expected reason entry to carry a message")
	}
	if errs["doctor"] != "" {
		t.Errorf("doctor should still pass, got %q", errs["doctor"])
	}
}

func TestFieldErrors_Valid(t *testing.T) {
	if !(FieldErrors{}).Valid() {
		t.Error("empty map should be valid")
	}
	fe := FieldErrors{"doctor": "", "reason": ""}
	if !fe.Valid() {
		t.Error("all-empty entries should be valid")
	}
	fe["reason"] = "required"
	if fe.Valid() {
		t.Error("non-empty entry should invalidate")
	}
}
