package domain

// Trigger tells how a send was initiated.
type Trigger string

const (
	TriggerKeyboard Trigger = "keyboard"
	TriggerVoice    Trigger = "voice"
)

// Command is an input consumed by a tab's event loop.
// Local user actions and collaborator callbacks are all expressed as commands
// so that a tab mutates its state from a single goroutine.
type Command interface {
	Name() string
}

type SendCommand struct {
	Text        string
	TriggeredBy Trigger
}

type InputChangedCommand struct {
	Value string
}

type ToggleVoiceCommand struct{}

type TypingTimeoutCommand struct {
	Generation uint64
}

// Recognition commands carry the recognition session that produced them.
type RecognitionResultCommand struct {
	Session    uint64
	Transcript string
}

type RecognitionErrorCommand struct {
	Session uint64
	Reason  string
}

type RecognitionEndCommand struct {
	Session uint64
}

func (SendCommand) Name() string              { return "send" }
func (InputChangedCommand) Name() string      { return "input_changed" }
func (ToggleVoiceCommand) Name() string       { return "toggle_voice" }
func (TypingTimeoutCommand) Name() string     { return "typing_timeout" }
func (RecognitionResultCommand) Name() string { return "recognition_result" }
func (RecognitionErrorCommand) Name() string  { return "recognition_error" }
func (RecognitionEndCommand) Name() string    { return "recognition_end" }
