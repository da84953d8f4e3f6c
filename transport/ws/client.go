// Package ws is the WebSocket edge of the service: it upgrades
// connections, decodes inbound envelopes, and delivers outbound ones.
// A thin shim over the chat service; no routing decisions live here.
package ws

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"deskline/protocol"
)

// client is one connected websocket session. Outbound envelopes go
// through a bounded send queue drained by a dedicated write pump, so a
// slow reader never blocks the engine.
//
// send is never closed: broadcasters may race with teardown. The write
// pump stops on done instead. Close is idempotent.
type client struct {
	id   string
	conn *websocket.Conn
	send chan protocol.Envelope

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn, sendBufferSize int) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan protocol.Envelope, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump serializes all writes to the socket. gorilla/websocket
// allows at most one concurrent writer, so this goroutine is the only
// place WriteJSON is called for this connection.
func (c *client) writePump(log *slog.Logger) {
	for {
		select {
		case <-c.done:
			return
		case env := <-c.send:
			if err := c.conn.WriteJSON(env); err != nil {
				log.Debug("write failed, dropping connection writes",
					"conn_id", c.id, "error", err)
				return
			}
		}
	}
}
