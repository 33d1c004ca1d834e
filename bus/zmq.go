package bus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tab-mirror/domain/event"
	"tab-mirror/errors"

	"github.com/google/uuid"
	zmq "github.com/pebbe/zmq4"
)

const zmqPollInterval = 250 * time.Millisecond

// ZMQPort broadcasts through a local XSUB/XPUB forwarder (cmd/broker).
// Multipart messages are [channel name, msgpack frame]; the channel name is
// the SUB filter. ZeroMQ sockets are not goroutine safe: the PUB socket is
// guarded by a mutex and the SUB socket is only touched by Run.
type ZMQPort struct {
	id      string
	channel string
	codec   Codec
	log     *slog.Logger

	mu      sync.Mutex
	pub     *zmq.Socket
	sub     *zmq.Socket
	handler func(event.BusEvent)
	running bool
	closed  bool

	ready chan struct{}
	done  chan struct{}
}

// NewZMQPort connects the publishing side to the forwarder frontend and the
// receiving side to its backend.
func NewZMQPort(pubEndpoint, subEndpoint, channel string, log *slog.Logger) (*ZMQPort, error) {
	pub, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err = pub.Connect(pubEndpoint); err != nil {
		_ = pub.Close()
		return nil, err
	}
	sub, err := zmq.NewSocket(zmq.SUB)
	if err != nil {
		_ = pub.Close()
		return nil, err
	}
	if err = sub.Connect(subEndpoint); err != nil {
		_ = pub.Close()
		_ = sub.Close()
		return nil, err
	}
	_ = pub.SetLinger(0)
	_ = sub.SetLinger(0)

	return &ZMQPort{
		id:      uuid.NewString(),
		channel: channel,
		codec:   MsgpackCodec{},
		log:     log,
		pub:     pub,
		sub:     sub,
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

func (p *ZMQPort) ID() string { return p.id }

func (p *ZMQPort) Publish(_ context.Context, evt event.BusEvent) error {
	bytes, err := p.codec.Marshal(Frame{Origin: p.id, BusEvent: evt})
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.ErrBusClosed
	}
	_, err = p.pub.SendMessage(p.channel, bytes)
	return err
}

func (p *ZMQPort) Subscribe(handler func(event.BusEvent)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.ErrBusClosed
	}
	if p.handler != nil {
		return errors.ErrAlreadySubscribed
	}
	p.handler = handler
	close(p.ready)
	return nil
}

// Run owns the SUB socket: it applies the channel filter, then polls so that
// cancellation is noticed between receives.
func (p *ZMQPort) Run(ctx context.Context) error {
	select {
	case <-p.ready:
	case <-p.done:
		return nil
	case <-ctx.Done():
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()
	defer p.stopReceiving()

	if err := p.sub.SetSubscribe(p.channel); err != nil {
		return err
	}
	poller := zmq.NewPoller()
	poller.Add(p.sub, zmq.POLLIN)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.done:
			return nil
		default:
		}

		polled, err := poller.Poll(zmqPollInterval)
		if err != nil {
			return err
		}
		if len(polled) == 0 {
			continue
		}
		parts, err := p.sub.RecvMessageBytes(0)
		if err != nil {
			return err
		}
		if len(parts) < 2 {
			p.log.Debug("Invalid multipart message dropped", "parts", len(parts))
			continue
		}
		p.deliver(parts[1])
	}
}

func (p *ZMQPort) deliver(data []byte) {
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

func (p *ZMQPort) stopReceiving() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	if p.closed {
		_ = p.sub.Close()
	}
}

// Close releases the PUB socket. The SUB socket is released by Run when it is
// active, here otherwise.
func (p *ZMQPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	err := p.pub.Close()
	if !p.running {
		_ = p.sub.Close()
	}
	return err
}
