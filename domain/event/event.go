package event

import (
	"fmt"

	"tab-mirror/domain"
	"tab-mirror/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Type is the discriminator carried by every bus envelope.
type Type string

const (
	NewMessageType      Type = "new_message"
	TypingStartType     Type = "typing_start"
	TypingStopType      Type = "typing_stop"
	VoiceInputStartType Type = "voice_input_start"
	VoiceInputStopType  Type = "voice_input_stop"
)

var knownTypes = map[Type]struct{}{
	NewMessageType:      {},
	TypingStartType:     {},
	TypingStopType:      {},
	VoiceInputStartType: {},
	VoiceInputStopType:  {},
}

// Payload always carries the sender. Text and Timestamp are set for new_message only.
type Payload struct {
	SenderID  domain.ParticipantID `json:"senderId" msgpack:"senderId" validate:"required"`
	Text      string               `json:"text,omitempty" msgpack:"text,omitempty"`
	Timestamp int64                `json:"timestamp,omitempty" msgpack:"timestamp,omitempty"`
}

// BusEvent is the envelope exchanged between tabs: {type, payload}.
// It is transient and never persisted.
type BusEvent struct {
	Type    Type    `json:"type" msgpack:"type"`
	Payload Payload `json:"payload" msgpack:"payload"`
}

func NewMessage(m domain.Message) BusEvent {
	return BusEvent{
		Type:    NewMessageType,
		Payload: Payload{SenderID: m.SenderID, Text: m.Text, Timestamp: m.Timestamp},
	}
}

// Signal builds an indicator event (typing_* or voice_input_*).
func Signal(t Type, sender domain.ParticipantID) BusEvent {
	return BusEvent{Type: t, Payload: Payload{SenderID: sender}}
}

// Validate checks the fields each event type requires.
// Events failing validation are dropped by receivers, never retried.
func (e BusEvent) Validate() error {
	if _, ok := knownTypes[e.Type]; !ok {
		return fmt.Errorf("%w: %q", errors.ErrUnknownEventType, e.Type)
	}
	if err := validate.Struct(e.Payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
	}
	if e.Type == NewMessageType {
		if _, err := e.Message(); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
		}
	}
	return nil
}

// Message extracts the conversation record of a new_message event.
func (e BusEvent) Message() (domain.Message, error) {
	m := domain.Message{
		Text:      e.Payload.Text,
		SenderID:  e.Payload.SenderID,
		Timestamp: e.Payload.Timestamp,
	}
	return m, m.Validate()
}

// Received wraps an event delivered by the bus so that it can be queued
// on a tab's event loop like any other command.
type Received struct {
	Event BusEvent
}

func (Received) Name() string { return "remote_event" }
