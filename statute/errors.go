package statute

import (
	"errors"
	"fmt"
)

// ErrPacketTooShort is returned whenever a buffer ends before the structure
// being decoded from it.
var ErrPacketTooShort = errors.New("packet too short")

// UnsupportedVersionError is returned when a handshake message carries a
// version other than VersionSocks5.
type UnsupportedVersionError struct {
	Version byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported SOCKS version[%d]", e.Version)
}

// UnsupportedCommandError carries the unrecognized CMD byte of a request.
type UnsupportedCommandError struct {
	Code byte
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported command[%#02x]", e.Code)
}

// UnsupportedAddrTypeError carries the unrecognized ATYP byte of an address.
type UnsupportedAddrTypeError struct {
	Type byte
}

func (e *UnsupportedAddrTypeError) Error() string {
	return fmt.Sprintf("unrecognized address type[%#02x]", e.Type)
}

// LengthMismatchError is returned when the method negotiation message length
// does not equal 2+NMETHODS.
type LengthMismatchError struct {
	Got  int
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("packet length (%d) does not match nmethods+2 (%d)", e.Got, e.Want)
}
