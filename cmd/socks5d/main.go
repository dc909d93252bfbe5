// Command socks5d is a CONNECT-only SOCKS5 proxy without authentication.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/pires/go-proxyproto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	socks5 "github.com/things-go/socks5-handshake"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "socks5d").Logger()

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("socks5 listen: %w", err)
	}
	if cfg.ProxyProtocol {
		ln = &proxyproto.Listener{Listener: ln, ReadHeaderTimeout: cfg.NegotiationTimeout}
	}

	dialer := &net.Dialer{Timeout: cfg.DialTimeout}
	srv := socks5.NewServer(
		socks5.WithLogger(socks5.NewZeroLogger(logger)),
		socks5.WithDial(dialer.DialContext),
		socks5.WithNegotiationTimeout(cfg.NegotiationTimeout),
	)

	g, ctx := errgroup.WithContext(context.Background())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("socks5 serve: %w", err)
		}
		return nil
	})
	logger.Info().
		Str("listen", ln.Addr().String()).
		Bool("proxy_protocol", cfg.ProxyProtocol).
		Msg("socks5 proxy listening")

	err = g.Wait()
	logger.Info().Msg("shutting down")
	return err
}
