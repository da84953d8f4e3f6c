package services

import (
	"deskline/runtime"
)

// ChatService is the facade the transport talks to. It keeps the wire
// layer decoupled from the engine's internals; one method per inbound
// event, nothing else.
type ChatService struct {
	engine *runtime.Engine
}

func NewChatService(engine *runtime.Engine) *ChatService {
	return &ChatService{engine: engine}
}

func (s *ChatService) StaffOnline(id, name string) {
	s.engine.StaffOnline(id, name)
}

func (s *ChatService) CustomerConnect(id string) {
	s.engine.CustomerConnect(id)
}

func (s *ChatService) InboundMessage(id, text string) {
	s.engine.InboundMessage(id, text)
}

func (s *ChatService) Disconnect(id string) {
	s.engine.Disconnect(id)
}
