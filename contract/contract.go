//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"deskline/protocol"
)

// Pusher delivers an outbound envelope to a connection. Fire and forget:
// delivery may silently fail if the connection no longer exists.
type Pusher interface {
	Push(connID string, env protocol.Envelope)
}

// ChatService is the inbound edge of the routing engine, one method per
// transport event. Unknown ids are silent no-ops, never errors.
type ChatService interface {
	StaffOnline(id, name string)
	CustomerConnect(id string)
	InboundMessage(id, text string)
	Disconnect(id string)
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
