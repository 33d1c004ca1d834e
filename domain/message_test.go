package domain

import (
	"strings"
	"testing"
	"time"

	"tab-mirror/errors"

	"github.com/stretchr/testify/require"
)

func TestNewMessage_Trims_And_Stamps(t *testing.T) {
	req := require.New(t)
	at := time.UnixMilli(1_700_000_000_123)

	msg, err := NewMessage("  hello  ", "u1", at)

	req.NoError(err)
	req.Equal("hello", msg.Text)
	req.Equal(ParticipantID("u1"), msg.SenderID)
	req.Equal(int64(1_700_000_000_123), msg.Timestamp)
	req.True(msg.SentAt().Equal(at))
	req.True(msg.IsFrom("u1"))
	req.False(msg.IsFrom("u2"))
}

func TestNewMessage_Rejects_Blank_Text(t *testing.T) {
	_, err := NewMessage(" \n\t ", "u1", time.Now())
	require.ErrorIs(t, err, errors.ErrEmptyMessage)
}

func TestMessage_Validate_Requires_Sender(t *testing.T) {
	err := Message{Text: "hi", Timestamp: 1}.Validate()
	require.ErrorIs(t, err, errors.ErrInvalidMessage)
}

func TestNewTabSessionID_Is_Unique_Per_Tab(t *testing.T) {
	req := require.New(t)
	at := time.UnixMilli(42)

	first := NewTabSessionID("u1", at)
	second := NewTabSessionID("u1", at)

	req.NotEqual(first, second)
	req.True(strings.HasPrefix(first.String(), "u1-42-"))
}
