package bus

import (
	"context"
	"fmt"
	"log/slog"

	"tab-mirror/contract"
	"tab-mirror/errors"
	"tab-mirror/internal"
	"tab-mirror/storage"
)

// Port is a bus endpoint whose delivery loop runs as a supervised worker.
type Port interface {
	contract.Bus
	contract.Worker
	ID() string
}

var (
	_ Port = (*LocalPort)(nil)
	_ Port = (*RedisPort)(nil)
	_ Port = (*ZMQPort)(nil)
)

// Open creates the port selected by the configuration. The hub is only used
// by the local backend.
func Open(ctx context.Context, config internal.Config, hub *Hub, log *slog.Logger) (Port, error) {
	switch config.BusBackend {
	case internal.BackendLocal:
		if hub == nil {
			hub = NewHub(log, config.BusBufferSize)
		}
		return hub.Open(config.ChannelName), nil
	case internal.BackendRedis:
		client, err := storage.DialRedis(ctx, config.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisPort(client, config.ChannelName, log), nil
	case internal.BackendZMQ:
		return NewZMQPort(config.ZMQPubEndpoint, config.ZMQSubEndpoint, config.ChannelName, log)
	default:
		return nil, fmt.Errorf("%w: bus %q", errors.ErrUnknownBackend, config.BusBackend)
	}
}

// OpenOrFallback never fails: when the configured transport is unreachable
// the tab gets a port on a private hub. It keeps working alone, without
// live mirroring.
func OpenOrFallback(ctx context.Context, config internal.Config, log *slog.Logger) Port {
	port, err := Open(ctx, config, nil, log)
	if err != nil {
		log.Warn("Broadcast unavailable, tab will not mirror other tabs",
			"backend", config.BusBackend, "error", err)
		return NewHub(log, config.BusBufferSize).Open(config.ChannelName)
	}
	return port
}
