// pkg/buflist/drain_test.go

package buflist

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainCursorSequentialRead(t *testing.T) {
	d := NewDrainCursor(newList("hello", "world", "!"))
	require.Equal(t, int64(11), d.Size())
	assert.Equal(t, int64(0), d.MinPosition())

	p := make([]byte, 7)
	n, err := io.ReadFull(d, p)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []byte("hellowo"), p)

	// consumed chunks are physically gone
	assert.Equal(t, int64(7), d.Position())
	assert.Equal(t, int64(7), d.MinPosition())

	rest, err := io.ReadAll(d)
	require.NoError(t, err)
	assert.Equal(t, []byte("rld!"), rest)

	n, err = d.Read(p)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestDrainCursorBackwardSeekFails(t *testing.T) {
	d := NewDrainCursor(newList("abc", "def"))

	p := make([]byte, 4)
	_, err := io.ReadFull(d, p)
	require.NoError(t, err)
	require.Equal(t, int64(4), d.MinPosition())

	_, err = d.Seek(2, io.SeekStart)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidSeek, errors.Cause(err))
	assert.Equal(t, int64(4), d.Position())

	_, err = d.Seek(-1, io.SeekStart)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidSeek, errors.Cause(err))

	// the drain point itself stays reachable
	pos, err := d.Seek(4, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)
	assert.Equal(t, []byte("ef"), d.Peek())
}

func TestDrainCursorForwardSeekDrains(t *testing.T) {
	d := NewDrainCursor(newList("abc", "def", "ghi"))

	pos, err := d.Seek(4, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)
	assert.Equal(t, int64(4), d.MinPosition())
	assert.Equal(t, []byte("ef"), d.Peek())

	rest, err := io.ReadAll(d)
	require.NoError(t, err)
	assert.Equal(t, []byte("efghi"), rest)
}

func TestDrainCursorSeekPastEnd(t *testing.T) {
	d := NewDrainCursor(newList("abc"))

	pos, err := d.Seek(2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)
	assert.Empty(t, d.Peek())

	var p [1]byte
	n, err := d.Read(p[:])
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	// everything was drained, so only positions at or past the end remain
	assert.Equal(t, int64(3), d.MinPosition())
	pos, err = d.Seek(-2, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)
	_, err = d.Seek(2, io.SeekStart)
	assert.Equal(t, ErrInvalidSeek, errors.Cause(err))
}

func TestDrainCursorPeekDiscard(t *testing.T) {
	d := NewDrainCursor(newList("abc", "de"))

	assert.Equal(t, []byte("abc"), d.Peek())
	assert.Equal(t, []byte("abc"), d.Peek())
	assert.Equal(t, int64(0), d.Position())

	d.Discard(3)
	assert.Equal(t, []byte("de"), d.Peek())
	assert.Panics(t, func() { d.Discard(3) })
	assert.Equal(t, int64(3), d.Position())
}

func TestDrainCursorReleasesPages(t *testing.T) {
	parent := NewPage([]byte("abcdef"))
	l := New()
	l.PushPage(parent.Slice(0, 3))
	l.PushPage(parent.Slice(3, 3))
	parent.Release()

	d := NewDrainCursor(l)
	_, err := io.ReadAll(d)
	require.NoError(t, err)
	assert.Nil(t, parent.Data)
}

func TestSeekReaderInterface(t *testing.T) {
	// both cursor variants satisfy the same contract
	readAll := func(r SeekReader) []byte {
		if _, err := r.Seek(2, io.SeekStart); err != nil {
			t.Fatal(err)
		}
		var out []byte
		for {
			p := r.Peek()
			if len(p) == 0 {
				return out
			}
			out = append(out, p...)
			r.Discard(len(p))
		}
	}

	assert.Equal(t, []byte("cde"), readAll(NewCursor(newList("ab", "cde"))))
	assert.Equal(t, []byte("cde"), readAll(NewDrainCursor(newList("ab", "cde"))))
}
