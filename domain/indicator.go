package domain

// IndicatorKind names one of the two remote activity indicators.
type IndicatorKind string

const (
	TypingIndicator IndicatorKind = "typing"
	VoiceIndicator  IndicatorKind = "voice"
)

// VoiceMode is the local voice toggle state.
type VoiceMode int

const (
	VoiceIdle VoiceMode = iota
	VoiceListening
)

func (v VoiceMode) String() string {
	if v == VoiceListening {
		return "listening"
	}
	return "idle"
}
