package runtime

import (
	"log/slog"
	"time"

	"deskline/contract"
	"deskline/domain"
	"deskline/domain/event"
	"deskline/protocol"
)

// Engine is the connection lifecycle: it reacts to the four transport
// events (staff online, customer connect, message, disconnect) by
// driving the registry, matching, queueing, and timeout supervisor, and
// hands the resulting notifications to the Pusher.
//
// The registry is the only shared mutable state. The engine never holds
// a registry lock across a push; notifications always follow the atomic
// record update that caused them.
type Engine struct {
	log      *slog.Logger
	registry *Registry
	queueing *Queueing
	timeouts *TimeoutSupervisor
	pusher   contract.Pusher
	events   chan<- event.Event
	window   time.Duration
}

// NewEngine builds the lifecycle around an existing registry. window is
// the customer inactivity window; events is an optional best-effort
// telemetry channel (nil disables publishing).
func NewEngine(log *slog.Logger, registry *Registry, pusher contract.Pusher,
	events chan<- event.Event, window time.Duration) *Engine {
	e := &Engine{
		log:      log,
		registry: registry,
		queueing: NewQueueing(registry),
		pusher:   pusher,
		events:   events,
		window:   window,
	}
	e.timeouts = NewTimeoutSupervisor(log, func(customerID string) {
		e.removeCustomer(customerID, event.ReasonTimeout)
	})
	return e
}

// Registry exposes the state tables for read-side collaborators (tests,
// debug endpoints). Mutation stays inside the engine.
func (e *Engine) Registry() *Registry { return e.registry }

// Timeouts exposes the timer supervisor, mainly for tests.
func (e *Engine) Timeouts() *TimeoutSupervisor { return e.timeouts }

// StaffOnline registers a staff member. A reconnect under the same id
// overwrites the record with a fresh free slot and empty queue.
func (e *Engine) StaffOnline(id, name string) {
	e.registry.Staff.Put(id, domain.NewStaff(id, name))
	e.log.Info("staff online", "staff_id", id, "name", name)
	e.publish(event.StaffOnline{StaffID: id, Name: name})
}

// StaffOffline removes a staff member and every customer bound to it.
// The active customer is told the chat ended; each queued customer is
// asked whether to reconnect. Unknown ids are a no-op.
func (e *Engine) StaffOffline(id string) {
	staff, ok := e.registry.Staff.Take(id)
	if !ok {
		return
	}

	dropped := 0
	if staff.ActiveCustomer != "" {
		e.dropCustomer(staff.ActiveCustomer, protocol.ChatClosed())
		dropped++
	}
	for _, customerID := range staff.Queue {
		e.dropCustomer(customerID, protocol.QueueClosed())
		dropped++
	}

	e.log.Info("staff offline", "staff_id", id, "dropped_customers", dropped)
	e.publish(event.StaffOffline{StaffID: id, Dropped: dropped})
}

// dropCustomer force-removes a customer whose staff member went away.
func (e *Engine) dropCustomer(customerID string, env protocol.Envelope) {
	e.pusher.Push(customerID, env)
	e.timeouts.Cancel(customerID)
	e.registry.Customers.Delete(customerID)
	e.publish(event.CustomerEvicted{CustomerID: customerID, Reason: event.ReasonStaffOffline})
}

// CustomerConnect admits a new customer and matches it against the
// current staff snapshot: rejected when nobody is online, queued on the
// least-loaded busy staff member, or bound to a free one.
func (e *Engine) CustomerConnect(id string) {
	// Identity verification hook would sit here, before admission.
	e.registry.Customers.Put(id, domain.NewCustomer(id))

	sel := Select(e.registry.Staff.All())
	e.log.Debug("matching result", "customer_id", id,
		"staff_id", sel.StaffID, "queued", sel.Queued, "ok", sel.OK)

	if !sel.OK {
		e.pusher.Push(id, protocol.NoStaffAvailable())
		e.registry.Customers.Delete(id)
		e.publish(event.CustomerRejected{CustomerID: id})
		return
	}

	e.bindCustomer(id, sel.StaffID)

	if sel.Queued {
		position, ok := e.queueing.Enqueue(sel.StaffID, id)
		if !ok {
			// The chosen staff member vanished between snapshot and
			// enqueue; treat it like an empty roster.
			e.reject(id)
			return
		}
		e.pusher.Push(id, protocol.Queued(position))
		e.publish(event.CustomerQueued{CustomerID: id, StaffID: sel.StaffID, Position: position})
		return
	}

	binding := e.queueing.AssignActive(sel.StaffID, id)
	switch {
	case !binding.OK:
		e.reject(id)
	case binding.Active:
		e.timeouts.Arm(id, e.window)
		e.pusher.Push(id, protocol.Connected())
		e.publish(event.CustomerMatched{CustomerID: id, StaffID: sel.StaffID})
	default:
		// Lost the free slot to a concurrent connect; queued instead.
		e.pusher.Push(id, protocol.Queued(binding.Position))
		e.publish(event.CustomerQueued{CustomerID: id, StaffID: sel.StaffID, Position: binding.Position})
	}
}

func (e *Engine) bindCustomer(customerID, staffID string) {
	e.registry.Customers.Update(customerID, func(c domain.Customer, ok bool) (domain.Customer, bool) {
		if !ok {
			return c, false
		}
		c.AssignedStaff = staffID
		return c, true
	})
}

func (e *Engine) reject(customerID string) {
	e.pusher.Push(customerID, protocol.NoStaffAvailable())
	e.registry.Customers.Delete(customerID)
	e.publish(event.CustomerRejected{CustomerID: customerID})
}

// Disconnect handles a closed connection of either kind. Calling it
// twice for the same id is a no-op the second time.
func (e *Engine) Disconnect(id string) {
	if e.removeCustomer(id, event.ReasonDisconnect) {
		return
	}
	e.StaffOffline(id)
}

// InboundMessage routes chat text. A queued customer gets a wait notice
// instead of forwarding; an active customer's text goes to its staff
// member and re-arms the inactivity timer; staff text goes to the active
// customer. Unrecognized senders are ignored.
func (e *Engine) InboundMessage(id, text string) {
	if customer, ok := e.registry.Customers.Get(id); ok {
		e.customerMessage(customer, text)
		return
	}

	staff, ok := e.registry.Staff.Get(id)
	if !ok || staff.ActiveCustomer == "" {
		return
	}
	e.pusher.Push(staff.ActiveCustomer, protocol.Forward(text, protocol.FromStaff))
	e.publish(event.MessageForwarded{
		SenderID:   id,
		ReceiverID: staff.ActiveCustomer,
		Direction:  event.FromStaff,
	})
}

func (e *Engine) customerMessage(customer domain.Customer, text string) {
	if !customer.Bound() {
		return
	}
	staff, ok := e.registry.Staff.Get(customer.AssignedStaff)
	if !ok {
		return
	}
	if staff.ActiveCustomer != customer.ID {
		e.pusher.Push(customer.ID, protocol.StillQueued())
		return
	}

	e.pusher.Push(staff.ID, protocol.Forward(text, protocol.FromCustomer))
	// Qualifying activity: only the customer's own messages reset the
	// inactivity window.
	e.timeouts.Arm(customer.ID, e.window)
	e.publish(event.MessageForwarded{
		SenderID:   customer.ID,
		ReceiverID: staff.ID,
		Direction:  event.FromCustomer,
	})
}

// removeCustomer is the single removal path shared by disconnects and
// timer expiries. It reports whether a customer record existed; a
// second removal of the same id finds nothing and does nothing.
func (e *Engine) removeCustomer(id string, reason event.EvictionReason) bool {
	customer, ok := e.registry.Customers.Take(id)
	if !ok {
		return false
	}
	e.timeouts.Cancel(id)

	if customer.Bound() {
		promoted, notes := e.queueing.Release(customer.AssignedStaff, id)
		if promoted != "" {
			e.timeouts.Arm(promoted, e.window)
			e.publish(event.CustomerPromoted{CustomerID: promoted, StaffID: customer.AssignedStaff})
		}
		for _, n := range notes {
			e.pusher.Push(n.To, n.Envelope)
		}
	}

	e.log.Info("customer removed", "customer_id", id, "reason", string(reason))
	e.publish(event.CustomerEvicted{CustomerID: id, Reason: reason})
	return true
}

// Close cancels all pending inactivity timers. Used on shutdown.
func (e *Engine) Close() {
	e.timeouts.CancelAll()
}

// publish sends a telemetry event without ever blocking the lifecycle;
// a full channel drops the event.
func (e *Engine) publish(evt event.Event) {
	if e.events == nil {
		return
	}
	select {
	case e.events <- evt:
	default:
		e.log.Debug("telemetry event dropped", "kind", string(evt.EventKind()))
	}
}
