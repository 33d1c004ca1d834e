// Package domain contains core concepts of the conversation mirror.
// This file defines participant and tab identities.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ParticipantID is the logical chat identity shared by all tabs of one participant.
// It is supplied by the hosting environment, never computed here.
type ParticipantID string

// TabSessionID identifies one open tab. Diagnostics only: echo filtering uses ParticipantID.
type TabSessionID string

// NewTabSessionID derives a tab identifier from the participant, the creation time
// and a random component.
func NewTabSessionID(participant ParticipantID, createdAt time.Time) TabSessionID {
	return TabSessionID(fmt.Sprintf("%s-%d-%s", participant, createdAt.UnixMilli(), uuid.NewString()))
}

func (p ParticipantID) String() string { return string(p) }

func (t TabSessionID) String() string { return string(t) }
