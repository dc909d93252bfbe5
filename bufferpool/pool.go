// Package bufferpool provides fixed size copy buffers for the relay.
package bufferpool

import (
	"sync"
)

// BufPool is an interface for getting and returning temporary
// byte slices for use by io.CopyBuffer.
// Buffers travel as *[]byte so Put does not allocate.
type BufPool interface {
	Get() *[]byte
	Put(*[]byte)
}

type pool struct {
	size int
	pool *sync.Pool
}

// NewPool new buffer pool whose buffers all have capacity size.
func NewPool(size int) BufPool {
	return &pool{
		size,
		&sync.Pool{
			New: func() any {
				b := make([]byte, 0, size)
				return &b
			}},
	}
}

// Get implement interface BufPool, the buffer has zero length.
func (sf *pool) Get() *[]byte {
	return sf.pool.Get().(*[]byte)
}

// Put implement interface BufPool. It panics on a buffer that did not come
// from a pool of the same size.
func (sf *pool) Put(b *[]byte) {
	if b == nil || cap(*b) != sf.size {
		panic("bufferpool: invalid buffer size that's put into pool")
	}
	*b = (*b)[:0]
	sf.pool.Put(b)
}
