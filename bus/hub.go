package bus

import (
	"context"
	"log/slog"
	"sync"

	"tab-mirror/domain/event"
	"tab-mirror/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Set map[*LocalPort]struct{}

// Hub hosts in-process channels. Tabs living in the same process open
// ports on it by channel name.
type Hub struct {
	mu         sync.RWMutex
	log        *slog.Logger
	bufferSize int
	subscribed map[string]Set // map channel name -> ports having a handler
}

func NewHub(log *slog.Logger, bufferSize int) *Hub {
	return &Hub{
		log:        log,
		bufferSize: bufferSize,
		subscribed: make(map[string]Set),
	}
}

// Open creates a port on the named channel. The port receives nothing
// until Subscribe is called.
func (h *Hub) Open(channel string) *LocalPort {
	return &LocalPort{
		id:      uuid.NewString(),
		channel: channel,
		hub:     h,
		inbox:   make(chan event.BusEvent, h.bufferSize),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Peers returns the subscribed ports of a channel except the given one.
func (h *Hub) Peers(channel string, except *LocalPort) []*LocalPort {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.subscribed[channel]
	if !ok {
		return nil
	}
	return lo.Filter(lo.Keys(members), func(p *LocalPort, _ int) bool {
		return p != except
	})
}

func (h *Hub) register(p *LocalPort) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribed[p.channel]; !ok {
		h.subscribed[p.channel] = make(Set)
	}
	h.subscribed[p.channel][p] = struct{}{}
}

// unregister removes the port and drops the channel entry once empty.
func (h *Hub) unregister(p *LocalPort) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.subscribed[p.channel]; ok {
		delete(members, p)
		if len(members) == 0 {
			delete(h.subscribed, p.channel)
		}
	}
}

// LocalPort is a tab's port on a Hub channel.
// Delivery happens on the goroutine running Run, never inside Publish.
type LocalPort struct {
	id      string
	channel string
	hub     *Hub

	mu      sync.Mutex
	handler func(event.BusEvent)
	closed  bool

	inbox chan event.BusEvent
	ready chan struct{}
	done  chan struct{}
}

func (p *LocalPort) ID() string { return p.id }

func (p *LocalPort) Publish(_ context.Context, evt event.BusEvent) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return errors.ErrBusClosed
	}

	for _, peer := range p.hub.Peers(p.channel, p) {
		select {
		case peer.inbox <- evt:
		default:
			p.hub.log.Debug("Peer inbox full, event dropped", "channel", p.channel, "type", evt.Type)
		}
	}
	return nil
}

func (p *LocalPort) Subscribe(handler func(event.BusEvent)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.ErrBusClosed
	}
	if p.handler != nil {
		return errors.ErrAlreadySubscribed
	}
	p.handler = handler
	p.hub.register(p)
	close(p.ready)
	return nil
}

// Run delivers received events to the handler until the context ends or the port closes.
func (p *LocalPort) Run(ctx context.Context) error {
	select {
	case <-p.ready:
	case <-p.done:
		return nil
	case <-ctx.Done():
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.done:
			return nil
		case evt := <-p.inbox:
			p.handler(evt)
		}
	}
}

func (p *LocalPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.hub.unregister(p)
	close(p.done)
	return nil
}
