package socks5

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/things-go/socks5-handshake/statute"
)

func TestPermitCommand(t *testing.T) {
	ctx := context.Background()
	r := NewPermitConnOnly()

	connect := newEarlyClient(t, []byte{statute.VersionSocks5, 0x01, 0, statute.ATYPIPv4, 127, 0, 0, 1, 0, 80})
	_, ok := r.Allow(ctx, connect)
	assert.True(t, ok, "expect connect")

	bind := newEarlyClient(t, []byte{statute.VersionSocks5, 0x02, 0, statute.ATYPIPv4, 127, 0, 0, 1, 0, 80})
	_, ok = r.Allow(ctx, bind)
	assert.False(t, ok, "do not expect bind")

	associate := newEarlyClient(t, []byte{statute.VersionSocks5, 0x03, 0, statute.ATYPIPv4, 127, 0, 0, 1, 0, 80})
	_, ok = r.Allow(ctx, associate)
	assert.False(t, ok, "do not expect associate")

	_, ok = NewPermitNone().Allow(ctx, connect)
	assert.False(t, ok)
	_, ok = NewPermitAll().Allow(ctx, associate)
	assert.True(t, ok)
}
