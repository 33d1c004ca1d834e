//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"tab-mirror/domain"
	"tab-mirror/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Store is the key-value persistence shared by every tab of an origin.
// Get returns errors.ErrKeyNotFound when the key was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Bus is one tab's port on a named broadcast channel.
// Publish never delivers to the publishing port itself.
// The handler is invoked asynchronously, at most once per publish.
type Bus interface {
	Publish(ctx context.Context, evt event.BusEvent) error
	Subscribe(handler func(event.BusEvent)) error
	Close() error
}

// View is the rendering collaborator of a tab.
type View interface {
	ShowWelcome()
	AddMessage(msg domain.Message, own bool)
	ShowIndicator(kind domain.IndicatorKind)
	HideIndicator(kind domain.IndicatorKind)
	ClearInput()
	SetListening(listening bool)
	DisableVoice()
}

// RecognitionHandlers receives the callbacks of a speech recognition engine.
type RecognitionHandlers struct {
	OnResult func(transcript string)
	OnError  func(reason string)
	OnEnd    func()
}

// Recognizer is the speech-to-text engine.
type Recognizer interface {
	Start(ctx context.Context, handlers RecognitionHandlers) error
	Stop() error
}

// Synthesizer is the text-to-speech engine. Only one utterance plays at a time.
type Synthesizer interface {
	Speak(ctx context.Context, text, lang string) error
	Cancel()
	Speaking() bool
}

type Timer interface {
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
