// pkg/buflist/cursor.go

package buflist

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// ErrInvalidSeek is returned when a seek would land before the start of the
// data (or, for a DrainCursor, before its drain point). The position is
// left unchanged on this failure.
var ErrInvalidSeek = errors.New("buflist: invalid seek to an unreachable position")

// SeekReader is the positioned reader contract shared by Cursor and
// DrainCursor: buffered reads with the Peek/Discard protocol plus seeking
// over the logical concatenation of a BufList's chunks.
type SeekReader interface {
	io.Reader
	io.Seeker

	// Peek returns a zero-copy view of the unread bytes of the chunk under
	// the current position, without advancing it. It returns an empty slice
	// at end of data, and the same slice when called repeatedly.
	Peek() []byte

	// Discard advances the position by n bytes. n must not exceed the
	// length of the slice Peek returns; claiming more is a caller bug and
	// panics.
	Discard(n int)

	// Position returns the absolute offset of the next byte to read.
	Position() int64

	// Size returns the total length of the wrapped data.
	Size() int64
}

// Cursor is a seekable reader over the logical concatenation of a BufList's
// chunks. It never mutates the wrapped list, so several cursors can share
// one list and every position stays reachable for the cursor's lifetime.
// The list must not be modified while cursors over it are in use.
type Cursor struct {
	list *BufList

	// startPos[i] is the absolute offset of chunk i. The extra entry at the
	// end is the total length of the list.
	startPos []int64

	// Index of the chunk under pos, kept in sync with it. Equal to
	// len(startPos)-1 exactly when pos is at or past the end.
	chunk int

	pos int64
}

var _ SeekReader = (*Cursor)(nil)
var _ io.ByteReader = (*Cursor)(nil)
var _ io.WriterTo = (*Cursor)(nil)

// NewCursor creates a cursor at position 0. The chunk layout is indexed
// once here, so the wrapped list must not change afterwards.
func NewCursor(list *BufList) *Cursor {
	startPos := make([]int64, 0, list.NumChunks()+1)
	var next int64
	for i := 0; i < list.NumChunks(); i++ {
		startPos = append(startPos, next)
		next += int64(len(list.Chunk(i)))
	}
	startPos = append(startPos, next)
	return &Cursor{list: list, startPos: startPos}
}

// List returns the wrapped list.
func (c *Cursor) List() *BufList {
	return c.list
}

// Position returns the absolute offset of the next byte to read.
func (c *Cursor) Position() int64 {
	return c.pos
}

// Size returns the total length of the wrapped data.
func (c *Cursor) Size() int64 {
	return c.startPos[len(c.startPos)-1]
}

// SetPosition moves the cursor to an absolute offset. Offsets past the end
// are allowed; reads there return io.EOF.
func (c *Cursor) SetPosition(pos int64) {
	c.setPos(pos)
}

// Seek implements io.Seeker. Seeking past the end is allowed and leaves
// zero bytes to read; a seek that resolves to a negative offset fails with
// ErrInvalidSeek and does not move the cursor.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = c.pos
	case io.SeekEnd:
		base = c.Size()
	default:
		return 0, errors.Errorf("buflist: invalid seek whence %d", whence)
	}
	pos := base + offset
	if pos < 0 {
		return 0, errors.Wrapf(ErrInvalidSeek, "offset %d from base %d", offset, base)
	}
	c.setPos(pos)
	return pos, nil
}

// Read copies bytes from the current position into p, crossing chunk
// boundaries, and advances the position. It returns io.EOF at end of data.
func (c *Cursor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var n int
	for n < len(p) {
		data, off := c.chunkUnder()
		if data == nil {
			break
		}
		m := copy(p[n:], data[off:])
		n += m
		c.pos += int64(m)
		if off+m == len(data) {
			c.chunk++
		}
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadByte implements io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	data, off := c.chunkUnder()
	if data == nil {
		return 0, io.EOF
	}
	b := data[off]
	c.pos++
	if off+1 == len(data) {
		c.chunk++
	}
	return b, nil
}

// Peek returns the unread bytes of the chunk under the cursor, zero-copy
// and without moving the position. Empty at end of data.
func (c *Cursor) Peek() []byte {
	data, off := c.chunkUnder()
	if data == nil {
		return nil
	}
	return data[off:]
}

// Discard advances the position by n bytes, which must not exceed the
// length of the slice Peek returns.
func (c *Cursor) Discard(n int) {
	avail := len(c.Peek())
	if n < 0 || n > avail {
		panic(fmt.Sprintf("buflist: discard %d bytes with %d available", n, avail))
	}
	c.setPos(c.pos + int64(n))
}

// WriteTo writes everything from the current position to the end of the
// data into w without copying, advancing the position.
func (c *Cursor) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for {
		data, off := c.chunkUnder()
		if data == nil {
			return written, nil
		}
		n, err := w.Write(data[off:])
		written += int64(n)
		c.pos += int64(n)
		if off+n == len(data) {
			c.chunk++
		}
		if err != nil {
			return written, err
		}
		if off+n < len(data) {
			return written, io.ErrShortWrite
		}
	}
}

// chunkUnder returns the chunk under pos and the offset inside it, or nil
// when pos is at or past the end of the data.
func (c *Cursor) chunkUnder() ([]byte, int) {
	data := c.list.Chunk(c.chunk)
	if data == nil {
		return nil, 0
	}
	return data, int(c.pos - c.startPos[c.chunk])
}

// setPos moves pos and relocates the chunk index. Moves inside the current
// chunk keep the index as is; far jumps fall back to a binary search over
// the chunk start offsets.
func (c *Cursor) setPos(pos int64) {
	switch {
	case pos > c.pos:
		if pos >= c.nextStart() {
			c.chunk = c.locate(pos)
		}
	case pos < c.pos:
		if c.startPos[c.chunk] > pos {
			c.chunk = c.locate(pos)
		}
	}
	c.pos = pos
}

// nextStart returns the start offset of the chunk after the current one,
// or a sentinel above any position once the cursor points past the data.
func (c *Cursor) nextStart() int64 {
	if c.chunk+1 < len(c.startPos) {
		return c.startPos[c.chunk+1]
	}
	return math.MaxInt64
}

// locate returns the index of the chunk containing pos, or len(startPos)-1
// when pos is at or past the end of the data.
func (c *Cursor) locate(pos int64) int {
	if pos >= c.Size() {
		return len(c.startPos) - 1
	}
	return sort.Search(len(c.startPos)-1, func(i int) bool {
		return c.startPos[i+1] > pos
	})
}
