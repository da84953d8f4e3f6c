package runtime

import (
	"github.com/samber/lo"

	"deskline/domain"
)

// Selection is the outcome of a matching pass. When OK is false no staff
// is online at all. When Queued is true the selected staff member is busy
// and QueueLen is its current queue depth; the customer's position will
// be QueueLen+1.
type Selection struct {
	StaffID  string
	Queued   bool
	QueueLen int
	OK       bool
}

// Select picks the staff member that should serve a newly connecting
// customer, given a registry snapshot. Free staff win over busy staff;
// among busy staff the shortest queue wins. Ties and the "first free"
// choice follow map iteration order, which is implementation-defined;
// callers must not rely on a particular pick among equals.
func Select(staff map[string]domain.Staff) Selection {
	free, busy := lo.FilterReject(lo.Values(staff), func(s domain.Staff, _ int) bool {
		return s.Free()
	})

	if len(free) > 0 {
		return Selection{StaffID: free[0].ID, OK: true}
	}

	if len(busy) == 0 {
		return Selection{}
	}

	best := lo.MinBy(busy, func(a, b domain.Staff) bool {
		return len(a.Queue) < len(b.Queue)
	})
	return Selection{
		StaffID:  best.ID,
		Queued:   true,
		QueueLen: len(best.Queue),
		OK:       true,
	}
}
