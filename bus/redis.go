package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tab-mirror/domain/event"
	"tab-mirror/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisSubscribeTimeout bounds the wait for the server to confirm a subscription.
const redisSubscribeTimeout = 3 * time.Second

// RedisPort broadcasts over Redis pub/sub. Redis delivers a message to every
// subscriber, the publisher included, so frames carry the port id and a port
// skips its own.
type RedisPort struct {
	id      string
	channel string
	client  *redis.Client
	codec   Codec
	log     *slog.Logger

	subscribeTimeout time.Duration

	mu      sync.Mutex
	handler func(event.BusEvent)
	pubsub  *redis.PubSub
	closed  bool

	ready chan struct{}
	done  chan struct{}
}

func NewRedisPort(client *redis.Client, channel string, log *slog.Logger) *RedisPort {
	return &RedisPort{
		id:      uuid.NewString(),
		channel: channel,
		client:  client,
		codec:   JSONCodec{},
		log:     log,
		ready:   make(chan struct{}),
		done:    make(chan struct{}),

		subscribeTimeout: redisSubscribeTimeout,
	}
}

func (p *RedisPort) ID() string { return p.id }

func (p *RedisPort) Publish(ctx context.Context, evt event.BusEvent) error {
	if p.isClosed() {
		return errors.ErrBusClosed
	}
	bytes, err := p.codec.Marshal(Frame{Origin: p.id, BusEvent: evt})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, bytes).Err()
}

// Subscribe waits for the server to confirm the subscription so that every
// event published afterwards reaches this port.
func (p *RedisPort) Subscribe(handler func(event.BusEvent)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.ErrBusClosed
	}
	if p.handler != nil {
		return errors.ErrAlreadySubscribed
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.subscribeTimeout)
	defer cancel()
	pubsub := p.client.Subscribe(ctx)
	confirmed := make(chan error, 1)
	go func() {
		if err := pubsub.Subscribe(ctx, p.channel); err != nil {
			confirmed <- err
			return
		}
		_, err := pubsub.Receive(ctx)
		confirmed <- err
	}()
	var err error
	select {
	case err = <-confirmed:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("redis subscription to %q not confirmed: %w", p.channel, err)
	}
	p.handler = handler
	p.pubsub = pubsub
	close(p.ready)
	return nil
}

func (p *RedisPort) Run(ctx context.Context) error {
	select {
	case <-p.ready:
	case <-p.done:
		return nil
	case <-ctx.Done():
		return nil
	}

	messages := p.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.done:
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			p.deliver([]byte(msg.Payload))
		}
	}
}

func (p *RedisPort) deliver(data []byte) {
	frame, err := p.codec.Unmarshal(data)
	if err != nil {
		p.log.Debug("Undecodable frame dropped", "channel", p.channel, "error", err)
		return
	}
	if frame.Origin == p.id {
		return
	}
	p.handler(frame.BusEvent)
}

func (p *RedisPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	if p.pubsub != nil {
		_ = p.pubsub.Close()
	}
	return p.client.Close()
}

func (p *RedisPort) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
