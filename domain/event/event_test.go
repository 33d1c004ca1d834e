package event

import (
	"testing"

	"tab-mirror/domain"
	"tab-mirror/errors"

	"github.com/stretchr/testify/require"
)

func TestBusEvent_Validate_NewMessage(t *testing.T) {
	req := require.New(t)
	msg := domain.Message{Text: "hi", SenderID: "u1", Timestamp: 1000}

	evt := NewMessage(msg)

	req.NoError(evt.Validate())
	got, err := evt.Message()
	req.NoError(err)
	req.Equal(msg, got)
}

func TestBusEvent_Validate_Rejects_Malformed(t *testing.T) {
	tests := []struct {
		name string
		evt  BusEvent
		want error
	}{
		{"missing sender", BusEvent{Type: TypingStartType}, errors.ErrMalformedEvent},
		{"new_message without text", BusEvent{Type: NewMessageType,
			Payload: Payload{SenderID: "u1", Timestamp: 1000}}, errors.ErrMalformedEvent},
		{"new_message without timestamp", BusEvent{Type: NewMessageType,
			Payload: Payload{SenderID: "u1", Text: "hi"}}, errors.ErrMalformedEvent},
		{"unknown type", BusEvent{Type: "presence", Payload: Payload{SenderID: "u1"}}, errors.ErrUnknownEventType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.evt.Validate(), tt.want)
		})
	}
}

func TestSignal_Carries_Only_Sender(t *testing.T) {
	req := require.New(t)

	evt := Signal(VoiceInputStartType, "u2")

	req.NoError(evt.Validate())
	req.Equal(domain.ParticipantID("u2"), evt.Payload.SenderID)
	req.Empty(evt.Payload.Text)
	req.Zero(evt.Payload.Timestamp)
}
