package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrEmptyMessage     = fmt.Errorf("message text is empty")
	ErrInvalidMessage   = fmt.Errorf("invalid message")
	ErrMalformedEvent   = fmt.Errorf("malformed bus event")
	ErrUnknownEventType = fmt.Errorf("unknown bus event type")
	ErrSelfEcho         = fmt.Errorf("event originated from the local participant")

	ErrKeyNotFound    = fmt.Errorf("key not found")
	ErrQuotaExceeded  = fmt.Errorf("storage quota exceeded")
	ErrPersistence    = fmt.Errorf("conversation log could not be persisted")
	ErrStoreClosed    = fmt.Errorf("store is closed")
	ErrUnknownBackend = fmt.Errorf("unknown backend")

	ErrAlreadySubscribed = fmt.Errorf("bus port already has a subscriber")
	ErrBusClosed         = fmt.Errorf("bus port is closed")

	ErrRecognitionRunning     = fmt.Errorf("speech recognition already running")
	ErrSynthesisUnsupported   = fmt.Errorf("speech synthesis is not available")
)
