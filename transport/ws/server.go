package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"deskline/contract"
	"deskline/protocol"
)

const shutdownGrace = 5 * time.Second

// Server accepts websocket connections and dispatches their frames to
// the chat service. It implements contract.Worker so the supervisor
// owns its lifecycle.
type Server struct {
	log            *slog.Logger
	service        contract.ChatService
	hub            *Hub
	addr           string
	sendBufferSize int
	upgrader       websocket.Upgrader
}

func NewServer(log *slog.Logger, service contract.ChatService, hub *Hub,
	addr string, sendBufferSize int) *Server {
	return &Server{
		log:            log,
		service:        service,
		hub:            hub,
		addr:           addr,
		sendBufferSize: sendBufferSize,
		upgrader: websocket.Upgrader{
			// Identity checks are out of scope; accept any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler exposes the websocket endpoint, mainly for tests that mount
// it on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Run starts the HTTP listener and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("websocket server listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// serveWS owns one connection from upgrade to teardown. The read loop
// runs on the request goroutine; writes happen on the client's pump.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	// The connection id is the routing key for this session's lifetime.
	id := uuid.NewString()
	c := newClient(id, conn, s.sendBufferSize)
	s.hub.add(c)
	go c.writePump(s.log)

	s.log.Debug("connection opened", "conn_id", id, "remote", r.RemoteAddr)
	s.readLoop(c)

	// Teardown order matters: unregister from the hub first so late
	// pushes turn into silent drops, then run the disconnect path.
	s.hub.remove(id)
	s.service.Disconnect(id)
	_ = conn.Close()
	s.log.Debug("connection closed", "conn_id", id)
}

func (s *Server) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		in, err := protocol.Decode(data)
		if err != nil {
			// Malformed frames are never fatal; drop and keep reading.
			s.log.Debug("dropping undecodable frame", "conn_id", c.id, "error", err)
			continue
		}

		switch in.Action {
		case protocol.ActionStaffOnline:
			s.service.StaffOnline(c.id, in.StaffName())
		case protocol.ActionCustomerConnect:
			s.service.CustomerConnect(c.id)
		case protocol.ActionMessage:
			s.service.InboundMessage(c.id, in.Text())
		}
	}
}
