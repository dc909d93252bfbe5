package statute

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/netip"
	"strconv"
)

// AddrSpec is the DST/BND address field of a request or reply,
// specified as IPv4, IPv6, or a FQDN.
// The SOCKS5 address is formed as follows:
//
//	+------+----------+------+
//	| ATYP |   ADDR   | PORT |
//	+------+----------+------+
//	|  1   | Variable |  2   |
//	+------+----------+------+
//
// AddrSpec values are comparable with ==.
type AddrSpec struct {
	// FQDN is set for ATYPDomain. It may contain any bytes, not only valid
	// host names, and must be shorter than 256 bytes to be encoded.
	FQDN string
	// IP is set for ATYPIPv4 and ATYPIPv6.
	IP   netip.Addr
	Port uint16
	// AddrType is one of ATYPIPv4, ATYPDomain, ATYPIPv6.
	AddrType byte
}

// ZeroAddr is the all-zero IPv4 address, used as bound address in failure replies.
var ZeroAddr = AddrSpec{IP: netip.IPv4Unspecified(), AddrType: ATYPIPv4}

// NewEndpointAddr returns an IPv4 or IPv6 AddrSpec. IPv4-mapped IPv6
// addresses stay IPv6. The zone is dropped, the wire format has no room for it.
func NewEndpointAddr(ap netip.AddrPort) AddrSpec {
	ip := ap.Addr().WithZone("")
	a := AddrSpec{IP: ip, Port: ap.Port(), AddrType: ATYPIPv6}
	if ip.Is4() {
		a.AddrType = ATYPIPv4
	}
	return a
}

// NewDomainAddr returns a domain AddrSpec.
func NewDomainAddr(fqdn string, port uint16) AddrSpec {
	return AddrSpec{FQDN: fqdn, Port: port, AddrType: ATYPDomain}
}

// AddrFromNetAddr converts a net.Addr, typically a connection's local
// address, to an AddrSpec. IPv4 addresses held in 16-byte form are unmapped.
func AddrFromNetAddr(addr net.Addr) (AddrSpec, error) {
	switch v := addr.(type) {
	case *net.TCPAddr:
		ap := v.AddrPort()
		return NewEndpointAddr(netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())), nil
	case *net.UDPAddr:
		ap := v.AddrPort()
		return NewEndpointAddr(netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())), nil
	}
	return ParseHostPort(addr.String())
}

// ParseHostPort parses a "host:port" string to an AddrSpec. Hosts that are
// not IP literals become domain addresses.
func ParseHostPort(address string) (a AddrSpec, err error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return a, err
	}
	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return a, fmt.Errorf("invalid port %q, %w", port, err)
	}
	if ip, err := netip.ParseAddr(host); err == nil {
		return NewEndpointAddr(netip.AddrPortFrom(ip, uint16(p))), nil
	}
	if len(host) > math.MaxUint8 {
		return a, errors.New("destination host name too long")
	}
	return NewDomainAddr(host, uint16(p)), nil
}

// ParseAddrSpec decodes an address starting at b[0]. Bytes after the port are
// ignored, use Len to know how many were consumed. The result does not alias b.
func ParseAddrSpec(b []byte) (a AddrSpec, err error) {
	a.AddrType, err = ByteAt(b, 0)
	if err != nil {
		return a, err
	}

	off := 1
	switch a.AddrType {
	case ATYPIPv4:
		var raw []byte
		if raw, err = SliceAt(b, off, net.IPv4len); err != nil {
			return AddrSpec{}, err
		}
		a.IP = netip.AddrFrom4([4]byte(raw))
		off += net.IPv4len
	case ATYPIPv6:
		var raw []byte
		if raw, err = SliceAt(b, off, net.IPv6len); err != nil {
			return AddrSpec{}, err
		}
		a.IP = netip.AddrFrom16([16]byte(raw))
		off += net.IPv6len
	case ATYPDomain:
		var n byte
		if n, err = ByteAt(b, off); err != nil {
			return AddrSpec{}, err
		}
		off++
		var raw []byte
		if raw, err = SliceAt(b, off, int(n)); err != nil {
			return AddrSpec{}, err
		}
		a.FQDN = string(raw)
		off += int(n)
	default:
		return AddrSpec{}, &UnsupportedAddrTypeError{a.AddrType}
	}

	if a.Port, err = Uint16At(b, off); err != nil {
		return AddrSpec{}, err
	}
	return a, nil
}

// Len returns the encoded length of the address, ATYP and PORT included.
func (a AddrSpec) Len() int {
	switch a.AddrType {
	case ATYPIPv4:
		return 1 + net.IPv4len + 2
	case ATYPIPv6:
		return 1 + net.IPv6len + 2
	default:
		return 1 + 1 + len(a.FQDN) + 2
	}
}

// Bytes returns the wire form of the address.
// It panics if AddrType is unknown or FQDN is 256 bytes or longer,
// both are caller errors.
func (a AddrSpec) Bytes() []byte {
	return a.AppendTo(make([]byte, 0, a.Len()))
}

// AppendTo appends the wire form of the address to b, see Bytes.
func (a AddrSpec) AppendTo(b []byte) []byte {
	b = append(b, a.AddrType)
	switch a.AddrType {
	case ATYPIPv4:
		ip := a.IP
		if !ip.IsValid() {
			ip = netip.IPv4Unspecified()
		}
		ip4 := ip.As4()
		b = append(b, ip4[:]...)
	case ATYPIPv6:
		ip := a.IP
		if !ip.IsValid() {
			ip = netip.IPv6Unspecified()
		}
		ip16 := ip.As16()
		b = append(b, ip16[:]...)
	case ATYPDomain:
		if len(a.FQDN) > math.MaxUint8 {
			panic(fmt.Sprintf("socks5: domain name of %d bytes cannot be encoded", len(a.FQDN)))
		}
		b = append(b, byte(len(a.FQDN)))
		b = append(b, a.FQDN...)
	default:
		panic(fmt.Sprintf("socks5: cannot encode address type %#02x", a.AddrType))
	}
	hi, lo := BreakPort(a.Port)
	return append(b, hi, lo)
}

// AddrPort returns the IP and port, ok is false for domain addresses.
func (a AddrSpec) AddrPort() (ap netip.AddrPort, ok bool) {
	if a.AddrType == ATYPDomain || !a.IP.IsValid() {
		return ap, false
	}
	return netip.AddrPortFrom(a.IP, a.Port), true
}

// String returns a string suitable to dial.
func (a AddrSpec) String() string {
	port := strconv.Itoa(int(a.Port))
	if a.AddrType == ATYPDomain {
		return net.JoinHostPort(a.FQDN, port)
	}
	return net.JoinHostPort(a.IP.String(), port)
}
