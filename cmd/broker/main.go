// Command broker forwards bus frames between tabs of different processes:
// tabs publish to its XSUB endpoint and subscribe on its XPUB endpoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	zmq "github.com/pebbe/zmq4"
)

const controlEndpoint = "inproc://broker-control"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	zctx, err := zmq.NewContext()
	if err != nil {
		return fmt.Errorf("failed to create zmq context: %w", err)
	}
	defer zctx.Term()

	xsub, err := bind(zctx, zmq.XSUB, config.XSubBind)
	if err != nil {
		return err
	}
	defer xsub.Close()
	xpub, err := bind(zctx, zmq.XPUB, config.XPubBind)
	if err != nil {
		return err
	}
	defer xpub.Close()
	control, err := bind(zctx, zmq.PAIR, controlEndpoint)
	if err != nil {
		return err
	}
	defer control.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	terminated := make(chan error, 1)
	go func() {
		<-ctx.Done()
		terminated <- terminate(zctx)
	}()

	log.Info("Broker started", "xsub", config.XSubBind, "xpub", config.XPubBind)
	if err = zmq.ProxySteerable(xsub, xpub, nil, control); err != nil {
		return fmt.Errorf("proxy stopped: %w", err)
	}
	if err = <-terminated; err != nil {
		return err
	}
	log.Info("Broker stopped cleanly")
	return nil
}

func bind(zctx *zmq.Context, kind zmq.Type, endpoint string) (*zmq.Socket, error) {
	socket, err := zctx.NewSocket(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s socket: %w", kind, err)
	}
	if err = socket.Bind(endpoint); err != nil {
		_ = socket.Close()
		return nil, fmt.Errorf("failed to bind %s on %s: %w", kind, endpoint, err)
	}
	return socket, nil
}

// terminate asks the steerable proxy to return.
func terminate(zctx *zmq.Context) error {
	peer, err := zctx.NewSocket(zmq.PAIR)
	if err != nil {
		return err
	}
	defer peer.Close()
	if err = peer.Connect(controlEndpoint); err != nil {
		return err
	}
	_, err = peer.Send("TERMINATE", 0)
	return err
}
