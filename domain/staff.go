// Package domain contains core concepts of the routing system.
// This file defines the Staff record and its queue arithmetic.
// No locking, network, or UI logic should be added here.
package domain

// Staff is an operator connection. It serves at most one active customer
// and holds a FIFO queue of customer ids waiting for it.
//
// Staff is a value type: records are copied in and out of the registry,
// and every mutation returns a new record. Queue is never aliased between
// two records (mutating helpers copy it).
type Staff struct {
	ID             string
	Name           string
	ActiveCustomer string   // empty means the active slot is free
	Queue          []string // waiting customer ids, front first
}

// NewStaff returns a fresh record with a free slot and an empty queue.
func NewStaff(id, name string) Staff {
	return Staff{ID: id, Name: name}
}

// Free reports whether the staff member can take a customer immediately:
// no active customer and nobody waiting.
func (s Staff) Free() bool {
	return s.ActiveCustomer == "" && len(s.Queue) == 0
}

// Holds reports whether the customer is bound to this staff member,
// either as the active customer or somewhere in the queue.
func (s Staff) Holds(customerID string) bool {
	if s.ActiveCustomer == customerID {
		return true
	}
	return s.queueIndex(customerID) >= 0
}

// Enqueue appends the customer to the queue and returns the updated record
// with the 1-based queue position. A customer already held by this staff
// member is not enqueued twice; its current position is returned instead
// (0 for the active customer).
func (s Staff) Enqueue(customerID string) (Staff, int) {
	if s.ActiveCustomer == customerID {
		return s, 0
	}
	if i := s.queueIndex(customerID); i >= 0 {
		return s, i + 1
	}
	queue := make([]string, 0, len(s.Queue)+1)
	queue = append(queue, s.Queue...)
	queue = append(queue, customerID)
	s.Queue = queue
	return s, len(queue)
}

// TakeActive fills the active slot with the customer. The caller must have
// checked Free(); filling an occupied slot is a programming error handled
// at the queueing layer, not here.
func (s Staff) TakeActive(customerID string) Staff {
	s.ActiveCustomer = customerID
	return s
}

// PromoteNext clears the active slot and, if anyone is waiting, moves the
// queue front into it. Returns the updated record, the promoted customer
// id, and whether a promotion happened.
func (s Staff) PromoteNext() (Staff, string, bool) {
	if len(s.Queue) == 0 {
		s.ActiveCustomer = ""
		return s, "", false
	}
	promoted := s.Queue[0]
	rest := make([]string, len(s.Queue)-1)
	copy(rest, s.Queue[1:])
	s.ActiveCustomer = promoted
	s.Queue = rest
	return s, promoted, true
}

// RemoveQueued splices the customer out of the queue, wherever it sits,
// preserving the relative order of the others. Reports whether the
// customer was found.
func (s Staff) RemoveQueued(customerID string) (Staff, bool) {
	i := s.queueIndex(customerID)
	if i < 0 {
		return s, false
	}
	queue := make([]string, 0, len(s.Queue)-1)
	queue = append(queue, s.Queue[:i]...)
	queue = append(queue, s.Queue[i+1:]...)
	s.Queue = queue
	return s, true
}

func (s Staff) queueIndex(customerID string) int {
	for i, id := range s.Queue {
		if id == customerID {
			return i
		}
	}
	return -1
}
