// pkg/buflist/alloc.go

package buflist

import "sync"

// Pool tiers for page buffers. Streaming callers mostly push pages of one
// fixed size, so a handful of power-of-two classes is enough.
const (
	size4K  = 1 << 12
	size64K = 1 << 16
	size1M  = 1 << 20
	size4M  = 1 << 22
)

var (
	pool4K  = sync.Pool{New: func() interface{} { return make([]byte, size4K) }}
	pool64K = sync.Pool{New: func() interface{} { return make([]byte, size64K) }}
	pool1M  = sync.Pool{New: func() interface{} { return make([]byte, size1M) }}
	pool4M  = sync.Pool{New: func() interface{} { return make([]byte, size4M) }}
)

// allocBytes returns a buffer of exactly size bytes, backed by the smallest
// pool class that fits. Oversized requests are allocated directly.
func allocBytes(size int) []byte {
	switch {
	case size <= size4K:
		return pool4K.Get().([]byte)[:size]
	case size <= size64K:
		return pool64K.Get().([]byte)[:size]
	case size <= size1M:
		return pool1M.Get().([]byte)[:size]
	case size <= size4M:
		return pool4M.Get().([]byte)[:size]
	default:
		return make([]byte, size)
	}
}

// freeBytes returns a buffer to its pool. Buffers that did not come from a
// pool are left to the GC.
func freeBytes(buf []byte) {
	switch cap(buf) {
	case size4K:
		pool4K.Put(buf[:cap(buf)])
	case size64K:
		pool64K.Put(buf[:cap(buf)])
	case size1M:
		pool1M.Put(buf[:cap(buf)])
	case size4M:
		pool4M.Put(buf[:cap(buf)])
	}
}
