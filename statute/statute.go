package statute

import (
	"fmt"
)

// socks const defined
const (
	// protocol version
	VersionSocks5 = byte(0x05)
	// address type
	ATYPIPv4   = byte(0x01)
	ATYPDomain = byte(0x03)
	ATYPIPv6   = byte(0x04)
)

// ReplyType is the REP field of a SOCKS5 reply.
type ReplyType uint8

// reply status, the values are fixed by RFC 1928 and must never be renumbered.
const (
	RepSuccess ReplyType = iota
	RepServerFailure
	RepRuleFailure
	RepNetworkUnreachable
	RepHostUnreachable
	RepConnectionRefused
	RepTTLExpired
	RepCommandNotSupported
	RepAddrTypeNotSupported
	// 0x09 - 0xff unassigned
)

var replyTypeNames = [...]string{
	RepSuccess:              "succeeded",
	RepServerFailure:        "general SOCKS server failure",
	RepRuleFailure:          "connection not allowed by ruleset",
	RepNetworkUnreachable:   "network unreachable",
	RepHostUnreachable:      "host unreachable",
	RepConnectionRefused:    "connection refused",
	RepTTLExpired:           "TTL expired",
	RepCommandNotSupported:  "command not supported",
	RepAddrTypeNotSupported: "address type not supported",
}

// Code returns the wire value of the reply type.
func (r ReplyType) Code() byte { return byte(r) }

// Valid reports whether r is one of the nine assigned reply codes.
func (r ReplyType) Valid() bool { return int(r) < len(replyTypeNames) }

func (r ReplyType) String() string {
	if r.Valid() {
		return replyTypeNames[r]
	}
	return fmt.Sprintf("unassigned reply(%#02x)", byte(r))
}
