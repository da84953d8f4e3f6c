package protocol

import "github.com/samber/lo"

// Chat notification texts. User-visible failures are informational
// messages, never error codes.
const (
	msgConnected   = "You are connected to a staff member"
	msgNoStaff     = "No staff is on duty right now"
	msgQueuedUp    = "All staff are busy, you were placed in the shortest queue"
	msgStillQueued = "You are still waiting in the queue"
	msgQueueEnded  = "Your wait is over, a staff member is ready to chat"
	msgNewCustomer = "A new customer is connected, you can start chatting"
	msgPosition    = "Your current place in the queue"
	msgChatClosed  = "The staff member went offline, this chat has ended"
	msgQueueClosed = "The staff member went offline, connect to a new one?"
)

// Connected tells a customer it holds a staff member's active slot.
func Connected() Envelope {
	return text(msgConnected)
}

// NoStaffAvailable tells a customer nobody is online to serve it.
func NoStaffAvailable() Envelope {
	return text(msgNoStaff)
}

// Queued tells a customer it joined a wait queue at the given
// 1-based position.
func Queued(position int) Envelope {
	return Envelope{
		Action:  ActionMessage,
		Payload: Payload{Message: msgQueuedUp, Queue: lo.ToPtr(position)},
	}
}

// Position renumbers a waiting customer after the queue changed.
func Position(position int) Envelope {
	return Envelope{
		Action:  ActionMessage,
		Payload: Payload{Message: msgPosition, Queue: lo.ToPtr(position)},
	}
}

// StillQueued answers a message sent by a customer that is not yet
// being served.
func StillQueued() Envelope {
	return text(msgStillQueued)
}

// QueueEnded tells a promoted customer its chat is starting.
func QueueEnded() Envelope {
	return text(msgQueueEnded)
}

// NewCustomer tells a staff member the next customer took the slot.
func NewCustomer() Envelope {
	return text(msgNewCustomer)
}

// ChatClosed tells the active customer its staff member went offline.
func ChatClosed() Envelope {
	return Envelope{
		Action:  ActionChatClose,
		Payload: Payload{Message: msgChatClosed},
	}
}

// QueueClosed tells a waiting customer its staff member went offline.
func QueueClosed() Envelope {
	return Envelope{
		Action:  ActionQueueClose,
		Payload: Payload{Message: msgQueueClosed},
	}
}

// Forward relays chat text between the two ends of an active binding.
// from is FromCustomer or FromStaff.
func Forward(message, from string) Envelope {
	return Envelope{
		Action:  ActionMessage,
		Payload: Payload{Message: message, From: from},
	}
}

func text(message string) Envelope {
	return Envelope{Action: ActionMessage, Payload: Payload{Message: message}}
}
