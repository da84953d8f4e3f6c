package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_StaffOnline_DefaultsName(t *testing.T) {
	req := require.New(t)

	// Given a staffOnline frame without a name
	in, err := Decode([]byte(`{"action":"staffOnline","payload":{}}`))

	req.NoError(err)
	req.Equal(ActionStaffOnline, in.Action)
	req.Equal(DefaultStaffName, in.StaffName())

	// And an explicit name wins over the default
	in, err = Decode([]byte(`{"action":"staffOnline","payload":{"name":"Alice"}}`))
	req.NoError(err)
	req.Equal("Alice", in.StaffName())
}

func TestDecode_Message_DefaultsToEmptyText(t *testing.T) {
	req := require.New(t)

	in, err := Decode([]byte(`{"action":"message","payload":{}}`))

	req.NoError(err)
	req.Equal(ActionMessage, in.Action)
	req.Empty(in.Text())
}

func TestDecode_RejectsUnknownOrMissingAction(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte(`{"action":"shutdown"}`))
	req.Error(err)

	_, err = Decode([]byte(`{"payload":{"message":"hi"}}`))
	req.Error(err)

	_, err = Decode([]byte(`not json`))
	req.Error(err)
}

func TestQueued_CarriesOneBasedPosition(t *testing.T) {
	req := require.New(t)

	raw, err := json.Marshal(Queued(3))

	req.NoError(err)
	req.JSONEq(`{"action":"message","payload":{"message":"All staff are busy, you were placed in the shortest queue","queue":3}}`, string(raw))
}

func TestForward_TagsTheSender(t *testing.T) {
	req := require.New(t)

	env := Forward("hello", FromCustomer)

	req.Equal(ActionMessage, env.Action)
	req.Equal("hello", env.Payload.Message)
	req.Equal(FromCustomer, env.Payload.From)
	req.Nil(env.Payload.Queue)
}

func TestCloseNotifications_UseDedicatedActions(t *testing.T) {
	req := require.New(t)

	req.Equal(ActionChatClose, ChatClosed().Action)
	req.Equal(ActionQueueClose, QueueClosed().Action)
}
