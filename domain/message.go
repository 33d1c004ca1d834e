// Package domain contains core concepts of the conversation mirror.
// This file defines Message records and the rules they obey.
// Messages are immutable once created and validated by the domain.
package domain

import (
	"fmt"
	"strings"
	"time"

	"tab-mirror/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Message is one entry of a conversation, as persisted and as broadcast.
// Timestamp is expressed in epoch milliseconds.
type Message struct {
	Text      string        `json:"text" msgpack:"text" validate:"required"`
	SenderID  ParticipantID `json:"senderId" msgpack:"senderId" validate:"required"`
	Timestamp int64         `json:"timestamp" msgpack:"timestamp" validate:"gt=0"`
}

// NewMessage trims the text and stamps the message with the given instant.
func NewMessage(text string, sender ParticipantID, at time.Time) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, errors.ErrEmptyMessage
	}
	m := Message{Text: text, SenderID: sender, Timestamp: at.UnixMilli()}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
	}
	return nil
}

// SentAt converts the epoch-millis timestamp back to a time.
func (m Message) SentAt() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// IsFrom reports whether the message was authored by the given participant.
func (m Message) IsFrom(id ParticipantID) bool {
	return m.SenderID == id
}
