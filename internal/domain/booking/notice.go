package booking

import (
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a success notice stays visible.
const DefaultNoticeTTL = 5 * time.Second

// Notice is the transient post-booking success message. The hide timer is
// owned exclusively by the notice: it is cancelled when a newer message
// replaces the current one and when the owning view is closed, so no timer
// outlives its message.
type Notice struct {
	mu    sync.Mutex
	msg   string
	timer *time.Timer
	ttl   time.Duration
}

func NewNotice(ttl time.Duration) *Notice {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notice{ttl: ttl}
}

// Show displays msg and schedules it to clear after the TTL, replacing any
// pending hide timer.
func (n *Notice) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.msg = msg
	n.timer = time.AfterFunc(n.ttl, n.Clear)
}

// Message returns the currently visible message, or "" when none is shown.
func (n *Notice) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

// Clear hides the message immediately.
func (n *Notice) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg = ""
}

// Close releases the hide timer and clears the message. Called on view
// teardown regardless of elapsed time.
func (n *Notice) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.msg = ""
}
