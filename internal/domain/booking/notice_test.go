package booking

import (
	"testing"
	"time"
)

func TestNotice_ShowAndAutoClear(t *testing.T) {
	n := NewNotice(30 * time.Millisecond)
	defer n.Close()

	n.Show("Appointment booked successfully")
	if n.Message() != "Appointment booked successfully" {
		t.Errorf("expected message visible immediately, got %q", n.Message())
	}

	time.Sleep(80 * time.Millisecond)
	if n.Message() != "" {
		t.Errorf("expected message cleared after TTL, got %q", n.Message())
	}
}

func TestNotice_ReplacementResetsTimer(t *testing.T) {
	n := NewNotice(60 * time.Millisecond)
	defer n.Close()

	n.Show("first")
	time.Sleep(40 * time.Millisecond)
	n.Show("second")

	// The first timer would have fired by now; the replacement must have
	// cancelled it.
	time.Sleep(30 * time.Millisecond)
	if n.Message() != "second" {
		t.Errorf("expected second message still visible, got %q", n.Message())
	}

	time.Sleep(60 * time.Millisecond)
	if n.Message() != "" {
		t.Errorf("expected second message cleared, got %q", n.Message())
	}
}

func TestNotice_CloseClearsImmediately(t *testing.T) {
	n := NewNotice(time.Hour)
	n.Show("visible")
	n.Close()
	if n.Message() != "" {
		t.Errorf("expected message cleared on close, got %q", n.Message())
	}
}

func TestNotice_DefaultTTL(t *testing.T) {
	n := NewNotice(0)
	defer n.Close()
	if n.ttl != DefaultNoticeTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultNoticeTTL, n.ttl)
	}
}
