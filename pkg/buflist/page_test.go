// pkg/buflist/page_test.go

package buflist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSliceSharesStorage(t *testing.T) {
	p := NewPage([]byte("abcdef"))
	view := p.Slice(2, 3)
	assert.Equal(t, []byte("cde"), view.Data)

	// narrowing is a view, not a copy
	p.Data[2] = 'X'
	assert.Equal(t, []byte("Xde"), view.Data)

	view.Release()
	p.Release()
	assert.Nil(t, p.Data)
}

func TestPageSliceKeepsParentAlive(t *testing.T) {
	p := NewPage([]byte("abcdef"))
	view := p.Slice(0, 6)
	p.Release()

	// the view still holds a reference on the parent
	require.NotNil(t, p.Data)
	assert.Equal(t, []byte("abcdef"), view.Data)

	view.Release()
	assert.Nil(t, p.Data)
}

func TestPageAcquireRelease(t *testing.T) {
	p := NewPage([]byte("ab"))
	p.Acquire()
	p.Release()
	require.NotNil(t, p.Data)
	p.Release()
	assert.Nil(t, p.Data)
}

func TestPooledPage(t *testing.T) {
	p := NewPooledPage(100)
	require.Len(t, p.Data, 100)
	// the buffer comes from the smallest pool class that fits
	assert.Equal(t, size4K, cap(p.Data))
	p.Release()
	assert.Nil(t, p.Data)

	assert.Panics(t, func() { NewPooledPage(0) })
	assert.Panics(t, func() { NewPooledPage(-1) })
}

func TestPooledPageOversized(t *testing.T) {
	p := NewPooledPage(size4M + 1)
	require.Len(t, p.Data, size4M+1)
	p.Release()
}

func TestAllocTiers(t *testing.T) {
	for _, tc := range []struct {
		size, tier int
	}{
		{1, size4K},
		{size4K, size4K},
		{size4K + 1, size64K},
		{size64K + 1, size1M},
		{size1M + 1, size4M},
	} {
		buf := allocBytes(tc.size)
		assert.Len(t, buf, tc.size)
		assert.Equal(t, tc.tier, cap(buf))
		freeBytes(buf)
	}
}
