package socks5

import (
	"errors"
	"fmt"

	"github.com/things-go/socks5-handshake/statute"
)

// A client session moves through four phases, each a distinct type:
//
//	UnauthenticatedClient --Accept--> AuthenticatedClient --OnRequest--> EarlyClient --ReplySuccess--> Client
//	        |                                                                |
//	        +--Refuse (terminal)                                             +--ReplyError (terminal)
//
// Every transition consumes its receiver. Calling a second transition on a
// consumed phase is a caller bug and panics.

// phase is the one-shot guard embedded in every non-terminal phase.
type phase struct {
	consumed bool
}

func (p *phase) consume(op string) {
	if p.consumed {
		panic(fmt.Sprintf("socks5: %s called on a consumed session phase", op))
	}
	p.consumed = true
}

// MaxInitialBytes is the largest method negotiation message a client can send.
const MaxInitialBytes = statute.MaxMethodRequestLen

// UnauthenticatedClient is a new client whose method negotiation has been
// decoded but not answered.
type UnauthenticatedClient struct {
	phase
	methods []statute.Method
}

// NewUnauthenticatedClient decodes the method negotiation packet of a new
// client. It fails with the codec error, or *statute.UnsupportedVersionError
// if the client does not speak SOCKS5.
func NewUnauthenticatedClient(packet []byte) (*UnauthenticatedClient, error) {
	msg, err := statute.ParseMethodRequest(packet)
	if err != nil {
		return nil, err
	}
	if msg.Ver != statute.VersionSocks5 {
		return nil, &statute.UnsupportedVersionError{Version: msg.Ver}
	}
	return &UnauthenticatedClient{methods: msg.Methods}, nil
}

// Methods returns the methods proposed by the client, in the order sent.
func (c *UnauthenticatedClient) Methods() []statute.Method {
	return append([]statute.Method(nil), c.methods...)
}

// Offers reports whether the client proposed m.
func (c *UnauthenticatedClient) Offers(m statute.Method) bool {
	return statute.MethodRequest{Methods: c.methods}.Contains(m)
}

// Accept selects method and returns the next phase with the method reply to
// send. It panics if method is MethodNoAcceptable or a method the server does
// not implement.
func (c *UnauthenticatedClient) Accept(method statute.Method) (*AuthenticatedClient, []byte) {
	if method == statute.MethodNoAcceptable || !method.Known() {
		panic(fmt.Sprintf("socks5: %v may not be used to accept a client", method))
	}
	c.consume("Accept")
	reply := statute.MethodReply{Ver: statute.VersionSocks5, Method: method}
	return &AuthenticatedClient{method: method}, reply.Bytes()
}

// Refuse ends the session and returns the "no acceptable methods" reply.
func (c *UnauthenticatedClient) Refuse() []byte {
	c.consume("Refuse")
	reply := statute.MethodReply{Ver: statute.VersionSocks5, Method: statute.MethodNoAcceptable}
	return reply.Bytes()
}

// AuthenticatedClient has completed method negotiation and waits for its request.
type AuthenticatedClient struct {
	phase
	method statute.Method
}

// Method returns the negotiated method.
func (c *AuthenticatedClient) Method() statute.Method { return c.method }

// MaxExpectedBytes is the largest request the client can send.
func (c *AuthenticatedClient) MaxExpectedBytes() int { return statute.MaxRequestLen }

// OnRequest decodes the client's request. Codec errors are returned
// unchanged; a version other than 5 fails with *statute.UnsupportedVersionError.
// The phase is consumed even when decoding fails.
func (c *AuthenticatedClient) OnRequest(packet []byte) (*EarlyClient, error) {
	c.consume("OnRequest")
	req, err := statute.ParseRequest(packet)
	if err != nil {
		return nil, err
	}
	if req.Version != statute.VersionSocks5 {
		return nil, &statute.UnsupportedVersionError{Version: req.Version}
	}
	return &EarlyClient{command: req.Command, destAddr: req.DstAddr}, nil
}

// EarlyClient has sent its request and waits for the server's reply.
type EarlyClient struct {
	phase
	command  statute.Command
	destAddr statute.AddrSpec
}

// Command returns the command requested by the client.
func (c *EarlyClient) Command() statute.Command { return c.command }

// DestAddr returns the destination address requested by the client.
func (c *EarlyClient) DestAddr() statute.AddrSpec { return c.destAddr }

// ReplyError ends the session with a failure reply carrying the zero IPv4
// bound address. rep must be an assigned code other than RepSuccess.
func (c *EarlyClient) ReplyError(rep statute.ReplyType) []byte {
	if rep == statute.RepSuccess || !rep.Valid() {
		panic(fmt.Sprintf("socks5: %v is not a failure reply", rep))
	}
	c.consume("ReplyError")
	return FailureReply(rep)
}

// ReplySuccess confirms the request, returning the established Client and the
// reply to send.
func (c *EarlyClient) ReplySuccess(bndAddr statute.AddrSpec) (*Client, []byte) {
	c.consume("ReplySuccess")
	reply := statute.NewReply(statute.RepSuccess, bndAddr).Bytes()
	return &Client{command: c.command, destAddr: c.destAddr, bndAddr: bndAddr}, reply
}

// Client is an established session, ready to be relayed.
type Client struct {
	command  statute.Command
	destAddr statute.AddrSpec
	bndAddr  statute.AddrSpec
}

// Command returns the command requested by the client.
func (c *Client) Command() statute.Command { return c.command }

// DestAddr returns the destination address requested by the client.
func (c *Client) DestAddr() statute.AddrSpec { return c.destAddr }

// BndAddr returns the bound address reported to the client.
func (c *Client) BndAddr() statute.AddrSpec { return c.bndAddr }

// FailureReply encodes a reply with status rep and the zero IPv4 bound
// address, for failures that happen before an EarlyClient exists.
func FailureReply(rep statute.ReplyType) []byte {
	return statute.NewReply(rep, statute.ZeroAddr).Bytes()
}

// ReplyForError maps a request decoding error to the reply status the client
// should get. ok is false when the connection should just be closed.
func ReplyForError(err error) (rep statute.ReplyType, ok bool) {
	var cmdErr *statute.UnsupportedCommandError
	var atypErr *statute.UnsupportedAddrTypeError
	switch {
	case errors.As(err, &cmdErr):
		return statute.RepCommandNotSupported, true
	case errors.As(err, &atypErr):
		return statute.RepAddrTypeNotSupported, true
	}
	return 0, false
}
