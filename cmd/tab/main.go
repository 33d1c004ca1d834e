package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tab-mirror/bus"
	"tab-mirror/clock"
	"tab-mirror/contract"
	"tab-mirror/domain"
	"tab-mirror/internal"
	"tab-mirror/runtime"
	"tab-mirror/runtime/workers"
	"tab-mirror/speech"
	"tab-mirror/storage"
	"tab-mirror/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const voiceCommand = "/voice"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	headless := flag.Bool("headless", false, "print the conversation and read messages from stdin instead of the terminal UI")
	flag.Parse()

	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log, closer, err := internal.NewLogger(config.LogLevel, internal.LogDestination(config.LogFile, !*headless))
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Collaborators. Missing infrastructure degrades the tab, never stops it.
	store := storage.OpenOrFallback(ctx, config, log)
	defer func() {
		log.Info("Closing store...")
		_ = store.Close()
	}()
	port := bus.OpenOrFallback(ctx, config, log)

	var recognizer contract.Recognizer
	if config.RecognitionSource != "" {
		recognizer = speech.NewLineRecognizer(speech.FileSource(config.RecognitionSource), log)
	}
	var synthesizer contract.Synthesizer
	if config.TTSCommand != "" {
		synthesizer = speech.NewCommandSynthesizer(config.TTSCommand, log)
	}

	self := domain.ParticipantID(config.ParticipantID)
	var view contract.View
	bridge := ui.NewBridge()
	if *headless {
		view = ui.NewPlain(os.Stdout, true)
	} else {
		view = bridge
	}

	tab := runtime.NewController(log, runtime.Options{
		Self:        self,
		Bus:         port,
		Store:       store,
		StorageKey:  config.StorageKey,
		View:        view,
		Recognizer:  recognizer,
		Synthesizer: synthesizer,
		Clock:       clock.System{},
		Debounce:    config.TypingDebounce,
		SpeechLang:  config.SpeechLang,
		BufferSize:  config.CommandBuffer,
	})

	// 3. Input surface. The terminal program must run before the tab renders into it.
	inputDone := make(chan error, 1)
	if *headless {
		go func() { inputDone <- readLines(os.Stdin, tab) }()
	} else {
		started := make(chan struct{})
		go func() { inputDone <- ui.Run(ctx, tab, self, bridge, started) }()
		<-started
	}

	// 4. Start the tab and its supervised loops
	if err = tab.Start(ctx); err != nil {
		return fmt.Errorf("tab failed to start: %w", err)
	}
	sup := workers.NewSupervisor(log, config.RestartInterval)
	monitor := workers.NewBacklogMonitor(log, config.MonitorInterval,
		workers.Queue{Name: "commands", Fill: tab.Backlog})
	supervised := make(chan struct{})
	go func() {
		sup.Add(tab, port, monitor).Run(ctx)
		close(supervised)
	}()

	// 5. Wait for Stop or the end of input
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-inputDone:
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			log.Error("Input stopped", "error", err)
		} else {
			err = nil
		}
	}

	// 6. Final Cleanup
	sup.Stop()
	<-supervised
	tab.Shutdown(context.Background())
	log.Info("Tab stopped cleanly", "tab", tab.Session().String())
	return err
}

// readLines feeds a headless tab: every line is sent, "/voice" toggles voice input.
func readLines(in io.Reader, tab *runtime.Controller) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == voiceCommand {
			tab.ToggleVoice()
			continue
		}
		tab.InputChanged(line)
		tab.Send(line)
	}
	return scanner.Err()
}
