package statute

import (
	"fmt"
)

// Method is an authentication method code. Every byte value is a Method,
// codes other than MethodNoAuth and MethodNoAcceptable are carried opaquely.
type Method byte

// auth defined
const (
	MethodNoAuth       Method = 0x00
	MethodNoAcceptable Method = 0xff
)

// Code returns the wire value of the method.
func (m Method) Code() byte { return byte(m) }

// Known reports whether the server understands m.
func (m Method) Known() bool { return m == MethodNoAuth || m == MethodNoAcceptable }

func (m Method) String() string {
	switch m {
	case MethodNoAuth:
		return "no authentication required"
	case MethodNoAcceptable:
		return "no acceptable methods"
	}
	return fmt.Sprintf("unknown method(%#02x)", byte(m))
}

// MethodRequest is the negotiation method request packet
// The SOCKS handshake method request is formed as follows:
//
//	+-----+----------+---------------+
//	| VER | NMETHODS |    METHODS    |
//	+-----+----------+---------------+
//	|  1  |     1    | X'00' - X'FF' |
//	+-----+----------+---------------+
type MethodRequest struct {
	Ver     byte
	Methods []Method // 0-255 methods, order as sent by the client
}

// NewMethodRequest new negotiation method request
func NewMethodRequest(ver byte, methods ...Method) MethodRequest {
	return MethodRequest{ver, methods}
}

// ParseMethodRequest decodes a method request. b must hold exactly
// 2+NMETHODS bytes. The version is not checked here.
func ParseMethodRequest(b []byte) (mr MethodRequest, err error) {
	if len(b) < 2 {
		return mr, ErrPacketTooShort
	}
	mr.Ver = b[0]
	want := 2 + int(b[1])
	if len(b) != want {
		return MethodRequest{}, &LengthMismatchError{Got: len(b), Want: want}
	}
	mr.Methods = make([]Method, 0, b[1])
	for _, code := range b[2:] {
		mr.Methods = append(mr.Methods, Method(code))
	}
	return mr, nil
}

// Bytes returns the wire form of the method request.
// It panics with more than 255 methods.
func (mr MethodRequest) Bytes() []byte {
	if len(mr.Methods) > 0xff {
		panic(fmt.Sprintf("socks5: %d methods cannot be encoded", len(mr.Methods)))
	}
	b := make([]byte, 0, 2+len(mr.Methods))
	b = append(b, mr.Ver, byte(len(mr.Methods)))
	for _, m := range mr.Methods {
		b = append(b, m.Code())
	}
	return b
}

// Contains reports whether the client proposed m.
func (mr MethodRequest) Contains(m Method) bool {
	for _, v := range mr.Methods {
		if v == m {
			return true
		}
	}
	return false
}

// MethodReply is the negotiation method reply packet
// The SOCKS handshake method response is formed as follows:
//
//	+-----+--------+
//	| VER | METHOD |
//	+-----+--------+
//	|  1  |     1  |
//	+-----+--------+
type MethodReply struct {
	Ver    byte
	Method Method
}

// Bytes returns the wire form of the method reply.
func (mr MethodReply) Bytes() []byte {
	return []byte{mr.Ver, mr.Method.Code()}
}

// ParseMethodReply decodes a method reply, b must hold exactly 2 bytes.
func ParseMethodReply(b []byte) (mr MethodReply, err error) {
	if len(b) < 2 {
		return mr, ErrPacketTooShort
	}
	if len(b) != 2 {
		return mr, &LengthMismatchError{Got: len(b), Want: 2}
	}
	return MethodReply{b[0], Method(b[1])}, nil
}
