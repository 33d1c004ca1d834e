package indicator

import (
	"testing"

	"tab-mirror/domain"
	"tab-mirror/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIndicator_Stop_Twice_Transitions_Once(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	view := mocks.NewMockView(ctrl)
	typing := New(domain.TypingIndicator, view)

	// Given the typing indicator is shown
	view.EXPECT().ShowIndicator(domain.TypingIndicator).Times(1)
	req.True(typing.Start())

	// When stop arrives twice
	view.EXPECT().HideIndicator(domain.TypingIndicator).Times(1)
	first := typing.Stop()
	second := typing.Stop()

	// Then only the first one is a visible transition
	req.True(first)
	req.False(second)
	req.False(typing.Active())
}

func TestIndicator_Stop_While_Inactive_Does_Not_Render(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	view := mocks.NewMockView(ctrl)

	require.False(t, New(domain.VoiceIndicator, view).Stop())
}

func TestIndicator_Start_Rerenders_When_Active(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	view := mocks.NewMockView(ctrl)
	voice := New(domain.VoiceIndicator, view)

	view.EXPECT().ShowIndicator(domain.VoiceIndicator).Times(2)

	req.True(voice.Start())
	req.False(voice.Start())
	req.True(voice.Active())
	req.Equal(domain.VoiceIndicator, voice.Kind())
}
