package socks5

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/things-go/socks5-handshake/bufferpool"
	"github.com/things-go/socks5-handshake/statute"
)

// ErrNoAcceptableMethod is returned when the client does not offer
// "no authentication required".
var ErrNoAcceptableMethod = errors.New("no supported authentication mechanism")

// GPool is used to implement custom goroutine pool default use goroutine
type GPool interface {
	Submit(f func()) error
}

// Server is responsible for accepting connections and driving each of them
// through the SOCKS5 session phases, then relaying CONNECT traffic.
type Server struct {
	// rules is provided to enable custom logic around permitting
	// various commands. If not provided, PermitAll is used.
	rules RuleSet
	// logger can be used to provide a custom log target.
	// Defaults to io.Discard.
	logger Logger
	// Optional function for dialing out
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
	// buffer pool
	bufferPool bufferpool.BufPool
	// goroutine pool
	gPool GPool
	// negotiationTimeout bounds the handshake, zero means no deadline.
	negotiationTimeout time.Duration
}

// NewServer creates a new Server
func NewServer(opts ...Option) *Server {
	srv := &Server{
		rules:      NewPermitAll(),
		logger:     NewLogger(log.New(io.Discard, "socks5: ", log.LstdFlags)),
		bufferPool: bufferpool.NewPool(32 * 1024),
		dial: func(ctx context.Context, net_, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, net_, addr)
		},
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// ListenAndServe is used to create a listener and serve on it
func (s *Server) ListenAndServe(network, addr string) error {
	l, err := net.Listen(network, addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve is used to serve connections from a listener
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		s.submit(func() {
			if err := s.ServeConn(conn); err != nil {
				s.logger.Errorf("server conn %v", err)
			}
		})
	}
}

// ServeConn is used to serve a single connection.
func (s *Server) ServeConn(conn net.Conn) (err error) {
	defer conn.Close()

	id := uuid.New()
	defer func() {
		if err != nil {
			err = fmt.Errorf("[%s] %s: %w", id, conn.RemoteAddr(), err)
		}
	}()

	if s.negotiationTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.negotiationTimeout))
	}
	bufConn := bufio.NewReader(conn)

	authed, err := s.negotiate(conn, bufConn)
	if err != nil {
		return err
	}

	packet, err := statute.ReadRequestFrame(bufConn)
	if err != nil {
		return s.replyRequestError(conn, fmt.Errorf("failed to read request, %w", err))
	}
	early, err := authed.OnRequest(packet)
	if err != nil {
		return s.replyRequestError(conn, fmt.Errorf("failed to parse request, %w", err))
	}

	if s.negotiationTimeout > 0 {
		_ = conn.SetDeadline(time.Time{})
	}
	s.logger.Debugf("[%s] %s: %v %s", id, conn.RemoteAddr(), early.Command(), early.DestAddr())

	if err = s.handleRequest(context.Background(), conn, bufConn, early); err != nil {
		return fmt.Errorf("failed to handle request, %w", err)
	}
	return nil
}

// negotiate runs method negotiation, only "no authentication required" is accepted.
func (s *Server) negotiate(conn io.Writer, bufConn io.Reader) (*AuthenticatedClient, error) {
	packet, err := statute.ReadMethodRequestFrame(bufConn)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth methods, %w", err)
	}
	client, err := NewUnauthenticatedClient(packet)
	if err != nil {
		return nil, fmt.Errorf("failed to negotiate, %w", err)
	}

	if !client.Offers(statute.MethodNoAuth) {
		if _, err := conn.Write(client.Refuse()); err != nil {
			return nil, fmt.Errorf("failed to send reply, %w", err)
		}
		return nil, ErrNoAcceptableMethod
	}

	authed, reply := client.Accept(statute.MethodNoAuth)
	if _, err := conn.Write(reply); err != nil {
		return nil, fmt.Errorf("failed to send reply, %w", err)
	}
	return authed, nil
}

// replyRequestError tells the client why its request was rejected when the
// protocol has a reply for it, and returns err.
func (s *Server) replyRequestError(conn io.Writer, err error) error {
	if rep, ok := ReplyForError(err); ok {
		if _, werr := conn.Write(FailureReply(rep)); werr != nil {
			return fmt.Errorf("failed to send reply, %w", werr)
		}
	}
	return err
}

func (s *Server) submit(f func()) {
	if s.gPool == nil || s.gPool.Submit(f) != nil {
		go f()
	}
}
