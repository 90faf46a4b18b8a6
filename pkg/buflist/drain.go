// pkg/buflist/drain.go

package buflist

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// DrainCursor is a seekable reader that owns its BufList and physically
// drops chunks as they are consumed, releasing their backing pages as early
// as possible. The trade-off against Cursor is that drained positions are
// gone for good: seeking below MinPosition fails with ErrInvalidSeek.
type DrainCursor struct {
	list *BufList
	size int64 // total length at construction
	pos  int64 // may point past size after a long forward seek
}

var _ SeekReader = (*DrainCursor)(nil)

// NewDrainCursor takes ownership of list; the caller must not touch it
// afterwards.
func NewDrainCursor(list *BufList) *DrainCursor {
	return &DrainCursor{list: list, size: int64(list.Len())}
}

// Position returns the absolute offset of the next byte to read.
func (d *DrainCursor) Position() int64 {
	return d.pos
}

// Size returns the total length of the owned data.
func (d *DrainCursor) Size() int64 {
	return d.size
}

// MinPosition returns the lowest position Seek can still reach. Everything
// below it has been drained from the underlying list.
func (d *DrainCursor) MinPosition() int64 {
	return d.size - int64(d.list.Len())
}

// Seek implements io.Seeker. Forward seeks drain the skipped bytes; seeks
// past the end are allowed and leave zero bytes to read. Seeking below
// MinPosition (including any negative position) fails with ErrInvalidSeek
// and does not move the cursor.
func (d *DrainCursor) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = d.pos
	case io.SeekEnd:
		base = d.size
	default:
		return 0, errors.Errorf("buflist: invalid seek whence %d", whence)
	}
	pos := base + offset
	if pos < 0 {
		return 0, errors.Wrapf(ErrInvalidSeek, "offset %d from base %d", offset, base)
	}
	if min := d.MinPosition(); pos < min {
		return 0, errors.Wrapf(ErrInvalidSeek, "position %d is below the drain point %d", pos, min)
	}
	if skip := pos - d.MinPosition(); skip > 0 {
		if remaining := int64(d.list.Len()); skip > remaining {
			skip = remaining
		}
		d.list.Advance(int(skip))
	}
	d.pos = pos
	return pos, nil
}

// Read drains bytes from the front of the owned list into p. It returns
// io.EOF at end of data.
func (d *DrainCursor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !d.list.HasRemaining() {
		return 0, io.EOF
	}
	var n int
	for n < len(p) && d.list.HasRemaining() {
		m := copy(p[n:], d.list.Front())
		d.list.Advance(m)
		n += m
	}
	d.pos += int64(n)
	return n, nil
}

// Peek returns the unread bytes of the front chunk, zero-copy and without
// draining. Empty at end of data.
func (d *DrainCursor) Peek() []byte {
	return d.list.Front()
}

// Discard drains n bytes, which must not exceed the length of the slice
// Peek returns.
func (d *DrainCursor) Discard(n int) {
	avail := len(d.list.Front())
	if n < 0 || n > avail {
		panic(fmt.Sprintf("buflist: discard %d bytes with %d available", n, avail))
	}
	d.list.Advance(n)
	d.pos += int64(n)
}

// Reset releases whatever is still buffered in the owned list.
func (d *DrainCursor) Reset() {
	d.pos = d.size
	d.list.Reset()
}
