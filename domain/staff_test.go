package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaff_Enqueue_AssignsFifoPositions(t *testing.T) {
	req := require.New(t)
	staff := NewStaff("s1", "Alice")

	// Given an occupied active slot
	staff = staff.TakeActive("c1")

	// When two customers queue up
	staff, pos1 := staff.Enqueue("c2")
	staff, pos2 := staff.Enqueue("c3")

	// Then positions are 1-based and FIFO ordered
	req.Equal(1, pos1)
	req.Equal(2, pos2)
	req.Equal([]string{"c2", "c3"}, staff.Queue)
}

func TestStaff_Enqueue_IsIdempotentPerCustomer(t *testing.T) {
	req := require.New(t)
	staff := NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")

	// When the same customer enqueues again
	staff, pos := staff.Enqueue("c2")

	// Then the queue is unchanged and the existing position is reported
	req.Equal(1, pos)
	req.Equal([]string{"c2"}, staff.Queue)

	// And the active customer is never queued
	staff, pos = staff.Enqueue("c1")
	req.Equal(0, pos)
	req.Equal([]string{"c2"}, staff.Queue)
}

func TestStaff_PromoteNext_MovesQueueFrontIntoActiveSlot(t *testing.T) {
	req := require.New(t)
	staff := NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")
	staff, _ = staff.Enqueue("c3")

	// When the active slot is released
	staff, promoted, ok := staff.PromoteNext()

	// Then the earliest-queued customer is promoted
	req.True(ok)
	req.Equal("c2", promoted)
	req.Equal("c2", staff.ActiveCustomer)
	req.Equal([]string{"c3"}, staff.Queue)
}

func TestStaff_PromoteNext_EmptyQueueClearsSlot(t *testing.T) {
	req := require.New(t)
	staff := NewStaff("s1", "Alice").TakeActive("c1")

	staff, promoted, ok := staff.PromoteNext()

	req.False(ok)
	req.Empty(promoted)
	req.True(staff.Free())
}

func TestStaff_RemoveQueued_PreservesRelativeOrder(t *testing.T) {
	req := require.New(t)
	staff := NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")
	staff, _ = staff.Enqueue("c3")
	staff, _ = staff.Enqueue("c4")

	// When a mid-queue customer leaves
	staff, found := staff.RemoveQueued("c3")

	req.True(found)
	req.Equal([]string{"c2", "c4"}, staff.Queue)

	// And removing an unknown customer is a no-op
	staff, found = staff.RemoveQueued("c9")
	req.False(found)
	req.Equal([]string{"c2", "c4"}, staff.Queue)
}

func TestStaff_MutationsDoNotAliasQueues(t *testing.T) {
	req := require.New(t)
	staff := NewStaff("s1", "Alice").TakeActive("c1")
	staff, _ = staff.Enqueue("c2")
	staff, _ = staff.Enqueue("c3")

	// When a copy promotes, the original record must not change
	copied, _, _ := staff.PromoteNext()
	copied, _ = copied.Enqueue("c4")

	req.Equal([]string{"c2", "c3"}, staff.Queue)
	req.Equal("c1", staff.ActiveCustomer)
	req.Equal([]string{"c3", "c4"}, copied.Queue)
}
