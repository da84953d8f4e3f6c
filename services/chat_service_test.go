package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"deskline/mocks"
	"deskline/protocol"
	"deskline/runtime"
)

func TestChatService_DelegatesToTheEngine(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pusher := mocks.NewMockPusher(ctrl)
	registry := runtime.NewRegistry()
	engine := runtime.NewEngine(slog.Default(), registry, pusher, nil, time.Minute)
	defer engine.Close()
	service := NewChatService(engine)

	// Given no staff is online, a connecting customer is rejected
	pusher.EXPECT().Push("c1", protocol.NoStaffAvailable()).Times(1)
	service.CustomerConnect("c1")

	// When a staff member comes online, the next customer is connected
	service.StaffOnline("s1", "Alice")
	pusher.EXPECT().Push("c2", protocol.Connected()).Times(1)
	service.CustomerConnect("c2")

	staff, ok := registry.Staff.Get("s1")
	req.True(ok)
	req.Equal("c2", staff.ActiveCustomer)

	// And a message from the customer reaches the staff member
	pusher.EXPECT().Push("s1", protocol.Forward("hi", protocol.FromCustomer)).Times(1)
	service.InboundMessage("c2", "hi")

	// And a disconnect clears the binding
	service.Disconnect("c2")
	staff, _ = registry.Staff.Get("s1")
	req.True(staff.Free())
}
