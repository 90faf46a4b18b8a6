// pkg/buflist/buflist.go

// Package buflist stores a byte stream as an ordered list of chunks, so
// data arriving in pieces can be buffered and consumed without being copied
// into one contiguous allocation.
package buflist

import (
	"fmt"
	"io"
	"net"
)

// entry is one stored chunk. data is never empty; page, when set, is the
// backing storage to release once the chunk has been consumed.
type entry struct {
	data []byte
	page *Page
}

// BufList is a FIFO of byte chunks representing one logical stream. Chunks
// are appended at the back and consumed from the front. The total of the
// unconsumed bytes is tracked incrementally, so Len is O(1).
//
// A BufList is not safe for concurrent use.
type BufList struct {
	// Invariant: no entry in chunks has zero-length data,
	// and size == sum of len(data) over all entries.
	chunks []entry
	size   int
}

// New creates an empty list.
func New() *BufList {
	return &BufList{}
}

// FromBytes creates a list holding p as its only chunk.
func FromBytes(p []byte) *BufList {
	l := New()
	l.Push(p)
	return l
}

// Push appends a chunk at the back of the list. The list keeps a view of p,
// not a copy, so the caller must not modify it afterwards. Pushing an empty
// chunk is a no-op.
func (l *BufList) Push(p []byte) {
	if len(p) == 0 {
		return
	}
	l.chunks = append(l.chunks, entry{data: p})
	l.size += len(p)
}

// PushPage appends the page's bytes as a chunk. The list takes over the
// caller's reference and releases it once the chunk is dropped from the
// front (or on Reset). A page with no bytes is released right away.
func (l *BufList) PushPage(p *Page) {
	if len(p.Data) == 0 {
		p.Release()
		return
	}
	l.chunks = append(l.chunks, entry{data: p.Data, page: p})
	l.size += len(p.Data)
}

// Extend appends each chunk in order.
func (l *BufList) Extend(chunks ...[]byte) {
	for _, p := range chunks {
		l.Push(p)
	}
}

// NumChunks returns the number of stored chunks.
func (l *BufList) NumChunks() int {
	return len(l.chunks)
}

// Chunk returns a read-only view of the i-th chunk (0 is the front), or nil
// when i is out of range.
func (l *BufList) Chunk(i int) []byte {
	if i < 0 || i >= len(l.chunks) {
		return nil
	}
	return l.chunks[i].data
}

// Chunks returns views of all stored chunks, front first. The views share
// storage with the list.
func (l *BufList) Chunks() [][]byte {
	out := make([][]byte, len(l.chunks))
	for i := range l.chunks {
		out[i] = l.chunks[i].data
	}
	return out
}

// Buffers returns the chunk views as net.Buffers for vectored output.
// Writing them does not consume the list.
func (l *BufList) Buffers() net.Buffers {
	bufs := make(net.Buffers, 0, len(l.chunks))
	for i := range l.chunks {
		bufs = append(bufs, l.chunks[i].data)
	}
	return bufs
}

// Len returns the total number of unconsumed bytes.
func (l *BufList) Len() int {
	return l.size
}

// HasRemaining reports whether any unconsumed bytes are left.
func (l *BufList) HasRemaining() bool {
	return l.size > 0
}

// Front returns the unconsumed bytes of the front chunk without copying,
// or an empty slice when the list is empty.
func (l *BufList) Front() []byte {
	if len(l.chunks) == 0 {
		return nil
	}
	return l.chunks[0].data
}

// Advance drops n bytes from the front, across as many chunks as needed.
// A chunk narrowed down to zero bytes is removed, never kept as an empty
// placeholder. Advancing by a negative count or past Len is a caller bug
// and panics.
func (l *BufList) Advance(n int) {
	if n < 0 || n > l.size {
		panic(fmt.Sprintf("buflist: advance %d bytes with only %d remaining", n, l.size))
	}
	l.size -= n
	for n > 0 {
		front := l.chunks[0].data
		if len(front) > n {
			l.chunks[0].data = front[n:]
			return
		}
		n -= len(front)
		l.dropFront()
	}
}

func (l *BufList) dropFront() {
	if l.chunks[0].page != nil {
		l.chunks[0].page.Release()
	}
	l.chunks[0] = entry{}
	l.chunks = l.chunks[1:]
}

// Take returns exactly n contiguous bytes from the front, consuming them.
// When the front chunk is plain (not page-backed) and holds at least n
// bytes, the returned slice shares its storage; otherwise the bytes are
// copied out. Taking a negative count or more than Len is a caller bug and
// panics.
func (l *BufList) Take(n int) []byte {
	if n < 0 || n > l.size {
		panic(fmt.Sprintf("buflist: take %d bytes with only %d remaining", n, l.size))
	}
	if n == 0 {
		return nil
	}
	// Page-backed chunks may be recycled once dropped, so only plain chunks
	// can be handed out without a copy.
	if front := l.chunks[0]; front.page == nil && len(front.data) >= n {
		out := front.data[:n:n]
		l.Advance(n)
		return out
	}
	out := make([]byte, n)
	for pos := 0; pos < n; {
		m := copy(out[pos:], l.Front())
		l.Advance(m)
		pos += m
	}
	return out
}

// Read drains bytes from the front of the list into p. It returns io.EOF
// once the list is empty.
func (l *BufList) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.size == 0 {
		return 0, io.EOF
	}
	var n int
	for n < len(p) && l.size > 0 {
		m := copy(p[n:], l.Front())
		l.Advance(m)
		n += m
	}
	return n, nil
}

// WriteTo writes every chunk to w without copying the data between chunks,
// draining the list as it goes.
func (l *BufList) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for len(l.chunks) > 0 {
		front := l.chunks[0].data
		n, err := w.Write(front)
		written += int64(n)
		l.Advance(n)
		if err != nil {
			return written, err
		}
		if n < len(front) {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// Reset drops all chunks and releases their pages.
func (l *BufList) Reset() {
	for i := range l.chunks {
		if l.chunks[i].page != nil {
			l.chunks[i].page.Release()
		}
		l.chunks[i] = entry{}
	}
	l.chunks = l.chunks[:0]
	l.size = 0
}
