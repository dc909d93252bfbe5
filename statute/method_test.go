package statute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	for i := 0; i <= 0xff; i++ {
		m := Method(i)
		assert.Equal(t, byte(i), m.Code())
		assert.Equal(t, i == 0x00 || i == 0xff, m.Known())
	}
	assert.Equal(t, "unknown method(0x02)", Method(0x02).String())
}

func TestMethodRequest(t *testing.T) {
	mr := NewMethodRequest(VersionSocks5, MethodNoAuth, Method(0x02))
	want := []byte{VersionSocks5, 2, 0x00, 0x02}
	assert.Equal(t, want, mr.Bytes())

	mr1, err := ParseMethodRequest(want)
	require.NoError(t, err)
	assert.Equal(t, mr, mr1)
	assert.True(t, mr1.Contains(MethodNoAuth))
	assert.False(t, mr1.Contains(MethodNoAcceptable))
}

func TestParseMethodRequest(t *testing.T) {
	tests := []struct {
		name    string
		b       []byte
		want    MethodRequest
		wantErr error
	}{
		{
			"no auth",
			[]byte{0x05, 0x01, 0x00},
			MethodRequest{VersionSocks5, []Method{MethodNoAuth}},
			nil,
		},
		{
			"order preserved, unknown kept",
			[]byte{0x05, 0x03, 0x80, 0x00, 0xff},
			MethodRequest{VersionSocks5, []Method{Method(0x80), MethodNoAuth, MethodNoAcceptable}},
			nil,
		},
		{
			"no methods",
			[]byte{0x05, 0x00},
			MethodRequest{VersionSocks5, []Method{}},
			nil,
		},
		{
			"version not checked",
			[]byte{0x04, 0x01, 0x00},
			MethodRequest{0x04, []Method{MethodNoAuth}},
			nil,
		},
		{"empty", []byte{}, MethodRequest{}, ErrPacketTooShort},
		{"one byte", []byte{0x05}, MethodRequest{}, ErrPacketTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethodRequest(tt.b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMethodRequest_LengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		got  int
		want int
	}{
		{"missing method", []byte{0x05, 0x03, 0x00, 0x01}, 4, 5},
		{"extra byte", []byte{0x05, 0x01, 0x00, 0x00}, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMethodRequest(tt.b)
			var e *LengthMismatchError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.got, e.Got)
			assert.Equal(t, tt.want, e.Want)
			assert.Contains(t, err.Error(), "(4)")
		})
	}
}

func TestMethodReply(t *testing.T) {
	mr := MethodReply{VersionSocks5, MethodNoAuth}
	assert.Equal(t, []byte{0x05, 0x00}, mr.Bytes())

	mr1, err := ParseMethodReply(mr.Bytes())
	require.NoError(t, err)
	assert.Equal(t, mr, mr1)

	_, err = ParseMethodReply([]byte{0x05})
	assert.ErrorIs(t, err, ErrPacketTooShort)
}

func TestParseMethodRequest_Truncated(t *testing.T) {
	b := NewMethodRequest(VersionSocks5, MethodNoAuth, Method(0x02), Method(0x80)).Bytes()
	for n := 0; n < len(b); n++ {
		_, err := ParseMethodRequest(b[:n])
		if n < 2 {
			assert.ErrorIs(t, err, ErrPacketTooShort)
			continue
		}
		var e *LengthMismatchError
		assert.ErrorAs(t, err, &e, "truncated to %d", n)
	}
}
