package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tab-mirror/bus"
	"tab-mirror/clock"
	"tab-mirror/contract"
	"tab-mirror/domain"
	"tab-mirror/projection"
	"tab-mirror/repositories"
	"tab-mirror/runtime"
	"tab-mirror/runtime/workers"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 5 * time.Second
	tick    = 20 * time.Millisecond
)

type BaseTabSuite struct {
	suite.Suite
	Config Config
	Log    *slog.Logger
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseTabSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.Log = logs.GetLoggerFromLevel(slog.LevelDebug)
}

// Step prints a colorized header for a scenario step
func (s *BaseTabSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Tab is a running tab rendered into a transcript.
type Tab struct {
	Controller *runtime.Controller
	View       *projection.Transcript
}

// OpenTab starts a supervised tab on the given port and store. It is shut
// down when the test ends.
func (s *BaseTabSuite) OpenTab(self domain.ParticipantID, port bus.Port, store contract.Store, key string) Tab {
	ctx, cancel := context.WithCancel(context.Background())
	view := projection.NewTranscript()
	controller := runtime.NewController(s.Log, runtime.Options{
		Self:       self,
		Bus:        port,
		Store:      store,
		StorageKey: key,
		View:       view,
		Clock:      clock.System{},
		Debounce:   500 * time.Millisecond,
	})
	s.Require().NoError(controller.Start(ctx))

	sup := workers.NewSupervisor(s.Log, 0)
	done := make(chan struct{})
	go func() {
		sup.Add(controller, port).Run(ctx)
		close(done)
	}()
	s.T().Cleanup(func() {
		cancel()
		<-done
		controller.Shutdown(context.Background())
	})
	return Tab{Controller: controller, View: view}
}

// UniqueKey isolates the scenario data of one run on a shared server.
func UniqueKey(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func (s *BaseTabSuite) AwaitTexts(tab Tab, want ...string) {
	s.Require().Eventually(func() bool {
		got := tab.View.Texts()
		if len(got) != len(want) {
			return false
		}
		for i := range want {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}, waitFor, tick, "expected %v", want)
}

func (s *BaseTabSuite) AwaitHistory(store contract.Store, key string, want int) {
	s.Require().Eventually(func() bool {
		raw, err := store.Get(context.Background(), key)
		if err != nil {
			return false
		}
		messages, err := repositories.Decode(raw)
		return err == nil && len(messages) == want
	}, waitFor, tick)
}
