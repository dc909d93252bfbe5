package statute

import (
	"bytes"
	"io"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMethodRequestFrame(t *testing.T) {
	r := bytes.NewReader([]byte{VersionSocks5, 2, 0x00, 0x02, VersionSocks5, 0x01})
	b, err := ReadMethodRequestFrame(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{VersionSocks5, 2, 0x00, 0x02}, b)
	assert.Equal(t, 2, r.Len())

	_, err = ReadMethodRequestFrame(bytes.NewReader([]byte{VersionSocks5, 3, 0x00}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadMethodRequestFrame(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadRequestFrame(t *testing.T) {
	reqs := []Request{
		{VersionSocks5, CommandConnect, NewEndpointAddr(netip.MustParseAddrPort("10.0.0.1:8080"))},
		{VersionSocks5, CommandConnect, NewEndpointAddr(netip.MustParseAddrPort("[2001:db8::1]:443"))},
		{VersionSocks5, CommandConnect, NewDomainAddr("example", 80)},
		{VersionSocks5, CommandConnect, NewDomainAddr("", 80)},
	}
	for _, req := range reqs {
		want := req.Bytes()
		r := bytes.NewReader(append(append([]byte{}, want...), "ping"...))
		b, err := ReadRequestFrame(r)
		require.NoError(t, err)
		assert.Equal(t, want, b)
		assert.Equal(t, 4, r.Len())
		assert.LessOrEqual(t, len(b), MaxRequestLen)

		_, err = ReadRequestFrame(bytes.NewReader(want[:len(want)-1]))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	}

	_, err := ReadRequestFrame(bytes.NewReader([]byte{VersionSocks5, 0x01, 0, 0x05, 0, 0, 0, 0, 0, 0}))
	var e *UnsupportedAddrTypeError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, byte(0x05), e.Type)
}
