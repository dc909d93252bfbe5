package statute

import (
	"fmt"
)

// Request represents the SOCKS5 request, it contains everything that is not payload
// The SOCKS5 request is formed as follows:
//
//	+-----+-----+-------+------+----------+----------+
//	| VER | CMD |  RSV  | ATYP | DST.ADDR | DST.PORT |
//	+-----+-----+-------+------+----------+----------+
//	|  1  |  1  | X'00' |  1   | Variable |    2     |
//	+-----+-----+-------+------+----------+----------+
type Request struct {
	// Version of socks protocol for message
	Version byte
	// Socks Command "connect","bind","associate"
	Command Command
	// DstAddr in socks message
	DstAddr AddrSpec
}

// ParseRequest decodes a request from b. The RSV byte is skipped unchecked
// and the version is returned as sent; address errors are returned unchanged.
func ParseRequest(b []byte) (req Request, err error) {
	if len(b) < 2 {
		return req, ErrPacketTooShort
	}
	req.Version = b[0]
	if req.Command, err = ParseCommand(b[1]); err != nil {
		return Request{}, err
	}
	if req.DstAddr, err = ParseAddrSpec(b[min(3, len(b)):]); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Bytes returns a slice of request
func (h Request) Bytes() []byte {
	b := make([]byte, 0, 3+h.DstAddr.Len())
	b = append(b, h.Version, h.Command.Code(), 0x00)
	return h.DstAddr.AppendTo(b)
}

// Reply represents the SOCKS5 reply, it contains everything that is not payload
// The SOCKS5 response is formed as follows:
//
//	+-----+-----+-------+------+----------+----------+
//	| VER | REP |  RSV  | ATYP | BND.ADDR | BND.PORT |
//	+-----+-----+-------+------+----------+----------+
//	|  1  |  1  | X'00' |  1   | Variable |    2     |
//	+-----+-----+-------+------+----------+----------+
type Reply struct {
	// Version of socks protocol for message
	Version byte
	// Socks Response status
	Response ReplyType
	// Bind Address in socks message
	BndAddr AddrSpec
}

// NewReply returns a SOCKS5 reply.
func NewReply(rep ReplyType, bnd AddrSpec) Reply {
	return Reply{VersionSocks5, rep, bnd}
}

// Bytes returns a slice of reply, 3+BndAddr.Len() bytes long.
func (h Reply) Bytes() []byte {
	b := make([]byte, 0, 3+h.BndAddr.Len())
	b = append(b, h.Version, h.Response.Code(), 0x00)
	return h.BndAddr.AppendTo(b)
}

// ParseReply decodes a reply from b.
func ParseReply(b []byte) (rep Reply, err error) {
	if len(b) < 2 {
		return rep, ErrPacketTooShort
	}
	rep.Version = b[0]
	rep.Response = ReplyType(b[1])
	if rep.Version != VersionSocks5 {
		return Reply{}, &UnsupportedVersionError{rep.Version}
	}
	if !rep.Response.Valid() {
		return Reply{}, fmt.Errorf("unassigned reply code[%#02x]", b[1])
	}
	if rep.BndAddr, err = ParseAddrSpec(b[min(3, len(b)):]); err != nil {
		return Reply{}, err
	}
	return rep, nil
}
