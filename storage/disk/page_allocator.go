package disk

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang-collections/collections/queue"

	"github.com/ryogrid/samehada-bufmgr/types"
)

// pageAllocator tracks which page numbers of a file are in use.
// Disposed numbers are handed out again, oldest first, before the file grows.
type pageAllocator struct {
	nextPageID types.PageID
	reusable   *queue.Queue // of types.PageID
	disposed   mapset.Set[types.PageID]
}

func newPageAllocator(numPages types.PageID) *pageAllocator {
	return &pageAllocator{
		nextPageID: numPages,
		reusable:   queue.New(),
		disposed:   mapset.NewThreadUnsafeSet[types.PageID](),
	}
}

// allocate returns a page number and whether it had been disposed before
func (a *pageAllocator) allocate() (types.PageID, bool) {
	if a.reusable.Len() > 0 {
		pageID := a.reusable.Dequeue().(types.PageID)
		a.disposed.Remove(pageID)
		return pageID, true
	}
	pageID := a.nextPageID
	a.nextPageID++
	return pageID, false
}

// unallocate reverts an allocate whose page could not be initialized
func (a *pageAllocator) unallocate(pageID types.PageID, reused bool) {
	if !reused && pageID == a.nextPageID-1 {
		a.nextPageID--
		return
	}
	a.dispose(pageID)
}

func (a *pageAllocator) dispose(pageID types.PageID) {
	a.disposed.Add(pageID)
	a.reusable.Enqueue(pageID)
}

// check reports why pageID cannot be read or written, or nil
func (a *pageAllocator) check(pageID types.PageID) error {
	if !pageID.IsValid() {
		return ErrInvalidPageID
	}
	if pageID >= a.nextPageID {
		return ErrPastEndOfFile
	}
	if a.disposed.Contains(pageID) {
		return ErrPageDisposed
	}
	return nil
}

func (a *pageAllocator) numAllocated() int {
	return int(a.nextPageID) - a.disposed.Cardinality()
}
