// Package protocol defines the wire envelopes exchanged with connected
// clients. Inbound frames are a closed set of actions with typed payloads
// validated at the boundary; malformed fields fall back to defaults and
// are never fatal.
package protocol

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"deskline/errors"
)

type Action string

const (
	// Inbound actions.
	ActionStaffOnline     Action = "staffOnline"
	ActionCustomerConnect Action = "customerConnect"
	ActionMessage         Action = "message"

	// Outbound-only actions.
	ActionChatClose  Action = "chat_close"
	ActionQueueClose Action = "queue_close"
)

const (
	FromCustomer = "customer"
	FromStaff    = "staff"
)

// DefaultStaffName is substituted when a staffOnline frame carries no name.
const DefaultStaffName = "Staff"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Inbound is one decoded client frame.
type Inbound struct {
	Action  Action         `json:"action" validate:"required,oneof=staffOnline customerConnect message"`
	Payload InboundPayload `json:"payload"`
}

type InboundPayload struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// Decode parses and validates a raw frame. An unknown or missing action
// yields ErrUnknownAction; the caller drops the frame.
func Decode(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, err
	}
	if err := validate.Struct(in); err != nil {
		return Inbound{}, errors.ErrUnknownAction
	}
	return in, nil
}

// StaffName returns the payload name, defaulted for absent values.
func (in Inbound) StaffName() string {
	if in.Payload.Name == "" {
		return DefaultStaffName
	}
	return in.Payload.Name
}

// Text returns the payload message; absent values decode to "".
func (in Inbound) Text() string {
	return in.Payload.Message
}

// Envelope is one outbound frame, keyed by connection id at delivery time.
type Envelope struct {
	Action  Action  `json:"action"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	Message string `json:"message"`
	Queue   *int   `json:"queue,omitempty"`
	From    string `json:"from,omitempty"`
}
