// Command inspect prints a persisted conversation log, or serves it over
// HTTP, without taking the lock of a running tab.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tab-mirror/contract"
	"tab-mirror/domain"
	"tab-mirror/internal"
	"tab-mirror/repositories"
	"tab-mirror/search"
	"tab-mirror/storage"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	query := flag.String("q", "", "full-text search over the conversation")
	limit := flag.Int("limit", 50, "maximum number of search results")
	sender := flag.String("sender", "", "only show messages from this participant")
	serve := flag.Int("serve", 0, "serve the conversation at http://localhost:<port>/inspect instead of printing it")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, config, log)
	if err != nil {
		return err
	}
	defer store.Close()

	load := func(ctx context.Context) ([]domain.Message, error) {
		raw, err := store.Get(ctx, config.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", config.StorageKey, err)
		}
		return repositories.Decode(raw)
	}
	filter := func(ctx context.Context, messages []domain.Message, q string) ([]internal.InspectRow, error) {
		return searchRows(ctx, messages, q, *limit, log)
	}

	if *serve > 0 {
		return serveHistory(ctx, *serve, internal.NewInspectHandler(config.StorageKey, load, filter, log), log)
	}

	messages, err := load(ctx)
	if err != nil {
		return err
	}
	if *sender != "" {
		messages = lo.Filter(messages, func(m domain.Message, _ int) bool {
			return m.IsFrom(domain.ParticipantID(*sender))
		})
	}

	rows := internal.Rows(messages)
	if *query != "" {
		if rows, err = filter(ctx, messages, *query); err != nil {
			return err
		}
	}
	printTable(rows, config.Colours)
	fmt.Printf("\n%d/%d messages\n", len(rows), len(messages))
	return nil
}

// openStore opens the persisted log without competing with running tabs:
// badger is opened read-only, bypassing the directory lock.
func openStore(ctx context.Context, config Config, log *slog.Logger) (contract.Store, error) {
	switch config.StoreBackend {
	case internal.BackendBadger:
		return storage.OpenBadgerReadOnly(config.BadgerFilepath, log)
	case internal.BackendRedis:
		client, err := storage.DialRedis(ctx, config.RedisURL)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(client, config.RedisPrefix, log), nil
	default:
		return nil, fmt.Errorf("backend %q cannot be inspected from another process", config.StoreBackend)
	}
}

func searchRows(ctx context.Context, messages []domain.Message, q string, limit int, log *slog.Logger) ([]internal.InspectRow, error) {
	index, err := search.NewIndex(log)
	if err != nil {
		return nil, err
	}
	defer index.Close()
	if err = index.Index(messages); err != nil {
		return nil, err
	}
	hits, total, err := index.Search(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	log.Info("Search done", "query", q, "total", total)
	return lo.Map(hits, func(h search.Hit, _ int) internal.InspectRow {
		return internal.Row(h.Position, h.Message)
	}), nil
}

func printTable(rows []internal.InspectRow, colours bool) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(internal.Header())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, row := range rows {
		cells := row.Cells()
		if colours {
			cells[1] = color.Cyan.Render(cells[1])
			cells[2] = color.Gray.Render(cells[2])
		}
		table.Append(cells)
	}
	table.Render()
}

func serveHistory(ctx context.Context, port int, handler http.Handler, log *slog.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("Viewer started at http://localhost:%d/inspect\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("viewer error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down viewer...")
	case err := <-errChan:
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
