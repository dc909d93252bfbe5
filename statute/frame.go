package statute

import (
	"fmt"
	"io"
	"net"
)

// Upper bounds of the handshake messages a client may send.
const (
	// VER NMETHODS METHODS[255]
	MaxMethodRequestLen = 2 + 0xff
	// VER CMD RSV ATYP LEN DOMAIN[255] PORT
	MaxRequestLen = 3 + 1 + 1 + 0xff + 2
)

// ReadMethodRequestFrame reads exactly one method request from r and
// returns its raw bytes for ParseMethodRequest.
func ReadMethodRequestFrame(r io.Reader) ([]byte, error) {
	b := make([]byte, 2, MaxMethodRequestLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("failed to get method request header, %w", err)
	}
	b = b[:2+int(b[1])]
	if _, err := io.ReadFull(r, b[2:]); err != nil {
		return nil, fmt.Errorf("failed to get methods, %w", err)
	}
	return b, nil
}

// ReadRequestFrame reads exactly one request from r and returns its raw bytes
// for ParseRequest. An unknown ATYP cannot be framed and is reported as
// *UnsupportedAddrTypeError.
func ReadRequestFrame(r io.Reader) ([]byte, error) {
	// VER CMD RSV ATYP and the first address byte, present for every ATYP.
	b := make([]byte, 5, MaxRequestLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("failed to get request header, %w", err)
	}

	total := 3 + 1 + 2
	switch atyp := b[3]; atyp {
	case ATYPIPv4:
		total += net.IPv4len
	case ATYPIPv6:
		total += net.IPv6len
	case ATYPDomain:
		total += 1 + int(b[4])
	default:
		return nil, &UnsupportedAddrTypeError{atyp}
	}

	b = b[:total]
	if _, err := io.ReadFull(r, b[5:]); err != nil {
		return nil, fmt.Errorf("failed to get request address, %w", err)
	}
	return b, nil
}
