package runtime

import (
	"deskline/domain"
	"deskline/protocol"
)

// Notification is an envelope waiting to be pushed to a connection.
// Queueing ops return notifications instead of pushing them so that all
// side effects happen after the atomic record update has committed.
type Notification struct {
	To       string
	Envelope protocol.Envelope
}

// Binding is the outcome of AssignActive.
type Binding struct {
	// Active means the customer took the active slot. When false the
	// slot was already occupied and the customer was queued at Position.
	Active   bool
	Position int
	OK       bool
}

// Queueing maintains each staff member's active slot and FIFO wait
// queue. Every mutation is a single atomic update against the staff
// record; the registry's Update contract makes interleaved lost updates
// structurally impossible.
type Queueing struct {
	registry *Registry
}

func NewQueueing(registry *Registry) *Queueing {
	return &Queueing{registry: registry}
}

// Enqueue appends the customer to the staff queue and returns its
// 1-based position. ok is false when the staff member is gone.
func (q *Queueing) Enqueue(staffID, customerID string) (position int, ok bool) {
	ok = q.registry.Staff.Update(staffID, func(s domain.Staff, exists bool) (domain.Staff, bool) {
		if !exists {
			return s, false
		}
		s, position = s.Enqueue(customerID)
		return s, true
	})
	return position, ok
}

// AssignActive atomically takes the staff member's active slot for the
// customer. If another customer won the slot between the matching
// snapshot and this call, the customer is queued instead and the
// resulting position is reported.
func (q *Queueing) AssignActive(staffID, customerID string) Binding {
	var b Binding
	b.OK = q.registry.Staff.Update(staffID, func(s domain.Staff, exists bool) (domain.Staff, bool) {
		if !exists {
			return s, false
		}
		if s.ActiveCustomer == "" {
			b.Active = true
			return s.TakeActive(customerID), true
		}
		s, b.Position = s.Enqueue(customerID)
		return s, true
	})
	return b
}

// Release unbinds a customer that is leaving the staff member, whether
// it held the active slot or sat anywhere in the queue.
//
// Active customer leaving: the queue front (if any) is promoted into the
// slot and told its wait is over, the staff member is told a new
// customer arrived, and every remaining waiter gets its new position.
// Queued customer leaving: it is spliced out preserving order and the
// remaining waiters are renumbered.
//
// The record change is one atomic update; the returned notifications and
// promoted customer id are handed back for post-commit handling (pushes,
// timer arming).
func (q *Queueing) Release(staffID, customerID string) (promoted string, notes []Notification) {
	q.registry.Staff.Update(staffID, func(s domain.Staff, exists bool) (domain.Staff, bool) {
		// Reset captured state: Update runs fn exactly once, but being
		// pure on inputs keeps the closure safe to reason about.
		promoted, notes = "", nil

		if !exists {
			return s, false
		}

		if s.ActiveCustomer == customerID {
			next, head, ok := s.PromoteNext()
			if ok {
				promoted = head
				notes = append(notes,
					Notification{To: head, Envelope: protocol.QueueEnded()},
					Notification{To: staffID, Envelope: protocol.NewCustomer()},
				)
				notes = append(notes, positionNotes(next.Queue)...)
			}
			return next, true
		}

		next, found := s.RemoveQueued(customerID)
		if !found {
			// Neither active nor queued: a concurrent removal already
			// unbound this customer. No-op keeps Release idempotent.
			return s, false
		}
		notes = positionNotes(next.Queue)
		return next, true
	})
	return promoted, notes
}

func positionNotes(queue []string) []Notification {
	notes := make([]Notification, 0, len(queue))
	for i, id := range queue {
		notes = append(notes, Notification{To: id, Envelope: protocol.Position(i + 1)})
	}
	return notes
}
