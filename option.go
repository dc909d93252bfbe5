package socks5

import (
	"context"
	"net"
	"time"

	"github.com/things-go/socks5-handshake/bufferpool"
)

// Option user's option
type Option func(s *Server)

// WithBufferPool can be provided to implement custom buffer pool
// By default, buffer pool use size is 32k
func WithBufferPool(p bufferpool.BufPool) Option {
	return func(s *Server) {
		if p != nil {
			s.bufferPool = p
		}
	}
}

// WithRule is provided to enable custom logic around permitting
// various commands. If not provided, NewPermitAll is used.
func WithRule(rule RuleSet) Option {
	return func(s *Server) {
		if rule != nil {
			s.rules = rule
		}
	}
}

// WithLogger can be used to provide a custom log target.
// Defaults to io.Discard.
func WithLogger(l Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDial Optional function for dialing out
func WithDial(dial func(ctx context.Context, network, addr string) (net.Conn, error)) Option {
	return func(s *Server) {
		if dial != nil {
			s.dial = dial
		}
	}
}

// WithGPool can be provided to do custom goroutine pool.
func WithGPool(pool GPool) Option {
	return func(s *Server) {
		if pool != nil {
			s.gPool = pool
		}
	}
}

// WithNegotiationTimeout bounds the time a client may take from connecting
// to a decoded request. Zero disables the deadline.
func WithNegotiationTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.negotiationTimeout = d
		}
	}
}
