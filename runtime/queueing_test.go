package runtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"deskline/domain"
	"deskline/protocol"
)

func newStaffRegistry(staff ...domain.Staff) *Registry {
	registry := NewRegistry()
	for _, s := range staff {
		registry.Staff.Put(s.ID, s)
	}
	return registry
}

func TestQueueing_Enqueue_ReportsPositions(t *testing.T) {
	req := require.New(t)
	registry := newStaffRegistry(domain.NewStaff("s1", "Alice").TakeActive("c1"))
	queueing := NewQueueing(registry)

	pos, ok := queueing.Enqueue("s1", "c2")
	req.True(ok)
	req.Equal(1, pos)

	pos, ok = queueing.Enqueue("s1", "c3")
	req.True(ok)
	req.Equal(2, pos)

	_, ok = queueing.Enqueue("ghost", "c4")
	req.False(ok)
}

func TestQueueing_AssignActive_TakesFreeSlot(t *testing.T) {
	req := require.New(t)
	registry := newStaffRegistry(domain.NewStaff("s1", "Alice"))
	queueing := NewQueueing(registry)

	binding := queueing.AssignActive("s1", "c1")

	req.True(binding.OK)
	req.True(binding.Active)

	staff, _ := registry.Staff.Get("s1")
	req.Equal("c1", staff.ActiveCustomer)
}

func TestQueueing_AssignActive_FallsBackToQueueWhenSlotTaken(t *testing.T) {
	req := require.New(t)
	registry := newStaffRegistry(domain.NewStaff("s1", "Alice"))
	queueing := NewQueueing(registry)

	// Given two customers race for the same free slot
	var wg sync.WaitGroup
	bindings := make(chan Binding, 2)
	for _, id := range []string{"c1", "c2"} {
		wg.Add(1)
		go func(customerID string) {
			defer wg.Done()
			bindings <- queueing.AssignActive("s1", customerID)
		}(id)
	}
	wg.Wait()
	close(bindings)

	// Then exactly one wins the slot and the other is queued first
	actives, queued := 0, 0
	for b := range bindings {
		if b.Active {
			actives++
		} else {
			queued++
			require.Equal(t, 1, b.Position)
		}
	}
	req.Equal(1, actives)
	req.Equal(1, queued)

	staff, _ := registry.Staff.Get("s1")
	req.NotEmpty(staff.ActiveCustomer)
	req.Len(staff.Queue, 1)
	req.NotContains(staff.Queue, staff.ActiveCustomer,
		"active customer must never sit in its own queue")
}

func TestQueueing_Release_PromotesQueueFrontFifo(t *testing.T) {
	req := require.New(t)
	staff := domain.NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")
	staff, _ = staff.Enqueue("c3")
	registry := newStaffRegistry(staff)
	queueing := NewQueueing(registry)

	// When the active customer leaves
	promoted, notes := queueing.Release("s1", "c1")

	// Then the earliest-queued customer is promoted
	req.Equal("c2", promoted)

	updated, _ := registry.Staff.Get("s1")
	req.Equal("c2", updated.ActiveCustomer)
	req.Equal([]string{"c3"}, updated.Queue)

	// And the promoted customer, the staff member, and the remaining
	// waiter are each notified once
	req.Len(notes, 3)
	req.Equal(Notification{To: "c2", Envelope: protocol.QueueEnded()}, notes[0])
	req.Equal(Notification{To: "s1", Envelope: protocol.NewCustomer()}, notes[1])
	req.Equal("c3", notes[2].To)
	req.Equal(1, *notes[2].Envelope.Payload.Queue)
}

func TestQueueing_Release_ActiveLeavesEmptyQueueClearsSlot(t *testing.T) {
	req := require.New(t)
	registry := newStaffRegistry(domain.NewStaff("s1", "Alice").TakeActive("c1"))
	queueing := NewQueueing(registry)

	promoted, notes := queueing.Release("s1", "c1")

	req.Empty(promoted)
	req.Empty(notes)

	staff, _ := registry.Staff.Get("s1")
	req.True(staff.Free())
}

func TestQueueing_Release_QueuedCustomerLeavesMidQueue(t *testing.T) {
	req := require.New(t)
	staff := domain.NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")
	staff, _ = staff.Enqueue("c3")
	staff, _ = staff.Enqueue("c4")
	registry := newStaffRegistry(staff)
	queueing := NewQueueing(registry)

	// When a mid-queue customer disconnects
	promoted, notes := queueing.Release("s1", "c3")

	// Then nobody is promoted and the rest are renumbered in order
	req.Empty(promoted)

	updated, _ := registry.Staff.Get("s1")
	req.Equal("c1", updated.ActiveCustomer)
	req.Equal([]string{"c2", "c4"}, updated.Queue)

	req.Len(notes, 2)
	req.Equal("c2", notes[0].To)
	req.Equal(1, *notes[0].Envelope.Payload.Queue)
	req.Equal("c4", notes[1].To)
	req.Equal(2, *notes[1].Envelope.Payload.Queue)
}

func TestQueueing_Release_UnboundCustomerIsNoOp(t *testing.T) {
	req := require.New(t)
	staff := domain.NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")
	registry := newStaffRegistry(staff)
	queueing := NewQueueing(registry)

	// When releasing a customer this staff member never held
	promoted, notes := queueing.Release("s1", "c9")

	req.Empty(promoted)
	req.Empty(notes)

	// Then the record is untouched
	updated, _ := registry.Staff.Get("s1")
	req.Equal("c1", updated.ActiveCustomer)
	req.Equal([]string{"c2"}, updated.Queue)

	// And a second release of the same customer behaves the same
	_, _ = queueing.Release("s1", "c1")
	promoted, notes = queueing.Release("s1", "c1")
	req.Empty(promoted)
	req.Empty(notes)
}
