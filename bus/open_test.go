package bus

import (
	"context"
	"log/slog"
	"testing"

	"tab-mirror/domain/event"
	"tab-mirror/internal"

	"github.com/stretchr/testify/require"
)

func TestOpen_Local(t *testing.T) {
	config := internal.Config{BusBackend: internal.BackendLocal, ChannelName: "chat_app_sync", BusBufferSize: 4}

	port, err := Open(context.Background(), config, nil, slog.Default())

	require.NoError(t, err)
	_, isLocal := port.(*LocalPort)
	require.True(t, isLocal)
}

func TestOpen_Unknown_Backend(t *testing.T) {
	_, err := Open(context.Background(), internal.Config{BusBackend: "carrier-pigeon"}, nil, slog.Default())
	require.Error(t, err)
}

func TestOpenOrFallback_Uses_Private_Hub_When_Redis_Is_Down(t *testing.T) {
	req := require.New(t)
	config := internal.Config{
		BusBackend:    internal.BackendRedis,
		RedisURL:      "redis://127.0.0.1:1/0",
		ChannelName:   "chat_app_sync",
		BusBufferSize: 4,
	}

	port := OpenOrFallback(context.Background(), config, slog.Default())
	defer port.Close()

	_, isLocal := port.(*LocalPort)
	req.True(isLocal)
	req.NoError(port.Subscribe(func(event.BusEvent) {}))
}
