package domain

// Customer is an end-user connection seeking to chat with staff.
// AssignedStaff is set once the customer is matched or queued; the
// inactivity timer lives in the timeout supervisor, not on the record.
type Customer struct {
	ID            string
	AssignedStaff string // empty until matched or queued
}

// NewCustomer returns an unbound customer record.
func NewCustomer(id string) Customer {
	return Customer{ID: id}
}

// Bound reports whether the customer has been assigned a staff member.
func (c Customer) Bound() bool {
	return c.AssignedStaff != ""
}
