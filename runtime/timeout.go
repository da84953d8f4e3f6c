package runtime

import (
	"log/slog"
	"sync"
	"time"
)

// TimeoutSupervisor owns one rearmable inactivity timer per customer.
// On expiry it invokes the eviction callback, which must be idempotent:
// an expiry that already started running cannot be aborted, so evicting
// an already-removed customer has to be a no-op.
//
// Each Arm bumps a generation counter captured by the timer callback.
// A firing timer that lost a concurrent Arm or Cancel sees a stale
// generation and returns without evicting.
type TimeoutSupervisor struct {
	mu     sync.Mutex
	gen    uint64
	timers map[string]*armedTimer
	evict  func(customerID string)
	log    *slog.Logger
}

type armedTimer struct {
	timer *time.Timer
	gen   uint64
}

// NewTimeoutSupervisor wires the eviction callback invoked when a
// customer's window elapses without qualifying activity.
func NewTimeoutSupervisor(log *slog.Logger, evict func(customerID string)) *TimeoutSupervisor {
	return &TimeoutSupervisor{
		timers: make(map[string]*armedTimer),
		evict:  evict,
		log:    log,
	}
}

// Arm cancels any pending timer for the customer and starts a new one.
func (t *TimeoutSupervisor) Arm(customerID string, window time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.timers[customerID]; ok {
		prev.timer.Stop()
	}

	t.gen++
	gen := t.gen
	t.timers[customerID] = &armedTimer{
		gen: gen,
		timer: time.AfterFunc(window, func() {
			t.fire(customerID, gen)
		}),
	}
}

// Cancel tears the customer's timer down without firing. Unknown ids
// are a no-op.
func (t *TimeoutSupervisor) Cancel(customerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.timers[customerID]; ok {
		prev.timer.Stop()
		delete(t.timers, customerID)
	}
}

// CancelAll drops every pending timer. Used on shutdown.
func (t *TimeoutSupervisor) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, armed := range t.timers {
		armed.timer.Stop()
		delete(t.timers, id)
	}
}

// Armed reports whether a timer is currently pending for the customer.
func (t *TimeoutSupervisor) Armed(customerID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[customerID]
	return ok
}

func (t *TimeoutSupervisor) fire(customerID string, gen uint64) {
	t.mu.Lock()
	armed, ok := t.timers[customerID]
	if !ok || armed.gen != gen {
		// A concurrent Arm or Cancel beat this expiry.
		t.mu.Unlock()
		return
	}
	delete(t.timers, customerID)
	t.mu.Unlock()

	t.log.Debug("customer inactivity window elapsed", "customer_id", customerID)
	t.evict(customerID)
}
