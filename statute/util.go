package statute

// BuildPort assembles a big-endian port from its two wire bytes.
func BuildPort(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }

// BreakPort splits a port into its two big-endian wire bytes.
func BreakPort(port uint16) (hi, lo byte) { return byte(port >> 8), byte(port) }

// ByteAt returns b[off], or ErrPacketTooShort if off is out of range.
func ByteAt(b []byte, off int) (byte, error) {
	if off < 0 || off >= len(b) {
		return 0, ErrPacketTooShort
	}
	return b[off], nil
}

// SliceAt returns b[off:off+n] without copying, or ErrPacketTooShort if the
// range does not fit in b.
func SliceAt(b []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(b) || len(b)-off < n {
		return nil, ErrPacketTooShort
	}
	return b[off : off+n], nil
}

// Uint16At reads a big-endian uint16 at b[off:off+2].
func Uint16At(b []byte, off int) (uint16, error) {
	p, err := SliceAt(b, off, 2)
	if err != nil {
		return 0, err
	}
	return BuildPort(p[0], p[1]), nil
}
