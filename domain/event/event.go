// Package event defines the telemetry events the routing engine publishes.
// Delivery is best effort: events feed counters and logs, never domain logic.
package event

type Kind string

const (
	KindStaffOnline      Kind = "staff_online"
	KindStaffOffline     Kind = "staff_offline"
	KindCustomerMatched  Kind = "customer_matched"
	KindCustomerQueued   Kind = "customer_queued"
	KindCustomerPromoted Kind = "customer_promoted"
	KindCustomerRejected Kind = "customer_rejected"
	KindCustomerEvicted  Kind = "customer_evicted"
	KindMessageForwarded Kind = "message_forwarded"
)

type Event interface {
	EventKind() Kind
}

type StaffOnline struct {
	StaffID string
	Name    string
}

func (StaffOnline) EventKind() Kind { return KindStaffOnline }

// StaffOffline carries how many customers (active plus queued) were
// dropped when the staff member left.
type StaffOffline struct {
	StaffID string
	Dropped int
}

func (StaffOffline) EventKind() Kind { return KindStaffOffline }

type CustomerMatched struct {
	CustomerID string
	StaffID    string
}

func (CustomerMatched) EventKind() Kind { return KindCustomerMatched }

type CustomerQueued struct {
	CustomerID string
	StaffID    string
	Position   int
}

func (CustomerQueued) EventKind() Kind { return KindCustomerQueued }

type CustomerPromoted struct {
	CustomerID string
	StaffID    string
}

func (CustomerPromoted) EventKind() Kind { return KindCustomerPromoted }

// CustomerRejected is published when a customer connects while no staff
// is online.
type CustomerRejected struct {
	CustomerID string
}

func (CustomerRejected) EventKind() Kind { return KindCustomerRejected }

type EvictionReason string

const (
	ReasonDisconnect   EvictionReason = "disconnect"
	ReasonTimeout      EvictionReason = "timeout"
	ReasonStaffOffline EvictionReason = "staff_offline"
)

type CustomerEvicted struct {
	CustomerID string
	Reason     EvictionReason
}

func (CustomerEvicted) EventKind() Kind { return KindCustomerEvicted }

type Direction string

const (
	FromCustomer Direction = "customer"
	FromStaff    Direction = "staff"
)

type MessageForwarded struct {
	SenderID   string
	ReceiverID string
	Direction  Direction
}

func (MessageForwarded) EventKind() Kind { return KindMessageForwarded }
