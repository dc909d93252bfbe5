package socks5

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/things-go/socks5-handshake/statute"
)

// handleRequest is used for request processing after negotiation
func (s *Server) handleRequest(ctx context.Context, conn net.Conn, bufConn io.Reader, early *EarlyClient) error {
	// Check if this is allowed
	ctx, ok := s.rules.Allow(ctx, early)
	if !ok {
		if _, err := conn.Write(early.ReplyError(statute.RepRuleFailure)); err != nil {
			return fmt.Errorf("failed to send reply, %w", err)
		}
		return fmt.Errorf("%v to %v blocked by rules", early.Command(), early.DestAddr())
	}

	switch early.Command() {
	case statute.CommandConnect:
		return s.handleConnect(ctx, conn, bufConn, early)
	default:
		if _, err := conn.Write(early.ReplyError(statute.RepCommandNotSupported)); err != nil {
			return fmt.Errorf("failed to send reply, %w", err)
		}
		return fmt.Errorf("unsupported command[%v]", early.Command())
	}
}

// handleConnect is used to handle a connect command
func (s *Server) handleConnect(ctx context.Context, conn net.Conn, bufConn io.Reader, early *EarlyClient) error {
	dest := early.DestAddr()
	target, err := s.dial(ctx, "tcp", dest.String())
	if err != nil {
		if _, werr := conn.Write(early.ReplyError(replyForDialError(err))); werr != nil {
			return fmt.Errorf("failed to send reply, %w", werr)
		}
		return fmt.Errorf("connect to %v failed, %w", dest, err)
	}
	defer target.Close()

	bnd, err := statute.AddrFromNetAddr(target.LocalAddr())
	if err != nil {
		if _, werr := conn.Write(early.ReplyError(statute.RepServerFailure)); werr != nil {
			return fmt.Errorf("failed to send reply, %w", werr)
		}
		return fmt.Errorf("bound address %v, %w", target.LocalAddr(), err)
	}

	// Send success
	client, reply := early.ReplySuccess(bnd)
	if _, err := conn.Write(reply); err != nil {
		return fmt.Errorf("failed to send reply, %w", err)
	}
	s.logger.Debugf("%s: relaying %s via %s", conn.RemoteAddr(), client.DestAddr(), client.BndAddr())

	return s.relay(ctx, conn, bufConn, target)
}

type closeWriter interface {
	CloseWrite() error
}

// relay copies in both directions until both sides are done or one fails.
// bufConn holds whatever the client pipelined after its request.
func (s *Server) relay(ctx context.Context, conn net.Conn, bufConn io.Reader, target net.Conn) error {
	var closeOnce sync.Once
	closeBoth := func() {
		closeOnce.Do(func() {
			_ = conn.Close()
			_ = target.Close()
		})
	}
	defer closeBoth()

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, closeBoth)
	defer stop()

	g.Go(func() error { return s.proxy(target, bufConn) })
	g.Go(func() error { return s.proxy(conn, target) })
	return g.Wait()
}

// proxy is used to shuffle data from src to destination, then half-closes
// destination so the peer sees EOF
func (s *Server) proxy(dst net.Conn, src io.Reader) error {
	buf := s.bufferPool.Get()
	defer s.bufferPool.Put(buf)

	_, err := io.CopyBuffer(dst, src, (*buf)[:cap(*buf)])
	if cw, ok := dst.(closeWriter); ok {
		_ = cw.CloseWrite()
	}
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// replyForDialError picks the reply status for a failed outbound dial.
func replyForDialError(err error) statute.ReplyType {
	var netErr net.Error
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED):
		return statute.RepConnectionRefused
	case errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, syscall.EADDRNOTAVAIL):
		return statute.RepNetworkUnreachable
	case errors.Is(err, syscall.EHOSTUNREACH),
		errors.As(err, &dnsErr),
		errors.As(err, &netErr) && netErr.Timeout():
		return statute.RepHostUnreachable
	}
	return statute.RepServerFailure
}
