// pkg/buflist/page.go

package buflist

import (
	"runtime"
	"sync/atomic"

	"AveBuf/pkg/utils"
)

var logger = utils.GetLogger("avebuf")

// Page is a reference-counted run of bytes. Several chunk views may share
// one page without copying; the storage is reclaimed once every reference
// is released.
type Page struct {
	refs   int32
	pooled bool
	dep    *Page
	Data   []byte
}

// NewPage creates a page wrapping data, with a single reference.
func NewPage(data []byte) *Page {
	return &Page{refs: 1, Data: data}
}

// NewPooledPage allocates a page from the size-tiered pool. The buffer goes
// back to the pool once the last reference is released.
func NewPooledPage(size int) *Page {
	if size <= 0 {
		panic("size of page should > 0")
	}
	page := &Page{refs: 1, pooled: true, Data: allocBytes(size)}
	runtime.SetFinalizer(page, func(p *Page) {
		refCnt := atomic.LoadInt32(&p.refs)
		if refCnt != 0 {
			logger.Errorf("refcount of page %p is not zero: %d", p, refCnt)
			if refCnt > 0 {
				p.Release()
			}
		}
	})
	return page
}

// Slice returns a narrowed view of the page. The view holds a reference on
// this page and releases it together with its own last reference.
func (p *Page) Slice(off, len int) *Page {
	p.Acquire()
	np := NewPage(p.Data[off : off+len])
	np.dep = p
	return np
}

// Acquire increases the refcount
func (p *Page) Acquire() {
	atomic.AddInt32(&p.refs, 1)
}

// Release decreases the refcount
func (p *Page) Release() {
	if atomic.AddInt32(&p.refs, -1) == 0 {
		if p.pooled {
			freeBytes(p.Data)
		}
		if p.dep != nil {
			p.dep.Release()
			p.dep = nil
		}
		p.Data = nil
	}
}
