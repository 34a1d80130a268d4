// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/notEpsilon/go-pair"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/ryogrid/samehada-bufmgr/common"
	"github.com/ryogrid/samehada-bufmgr/container/hash"
	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/storage/page"
	"github.com/ryogrid/samehada-bufmgr/types"
)

// PageTable maps a page of a file to the frame holding it.
// Lookup and Remove report a missing page with hash.ErrKeyNotFound.
type PageTable interface {
	Lookup(file disk.File, pageID types.PageID) (uint32, error)
	Insert(file disk.File, pageID types.PageID, frameNo uint32) error
	Remove(file disk.File, pageID types.PageID) error
}

// Stats counts what the buffer pool did since it was created
type Stats struct {
	Hits       uint64
	Misses     uint64
	Reads      uint64
	Allocs     uint64
	Disposes   uint64
	Evictions  uint64
	WriteBacks uint64
}

// BufferPoolManager represents the buffer pool manager.
// It is not safe for concurrent use; callers serialize access.
type BufferPoolManager struct {
	numBufs   uint32
	descs     []frameDesc
	pages     []page.Page
	pageTable PageTable
	clockHand FrameID
	stats     Stats
	closed    bool
}

// NewBufferPoolManager returns an empty buffer pool manager with numBufs frames
func NewBufferPoolManager(numBufs uint32) *BufferPoolManager {
	return NewBufferPoolManagerWithPageTable(numBufs, hash.NewPageTable(numBufs))
}

// NewBufferPoolManagerWithPageTable is NewBufferPoolManager with a caller supplied page table
func NewBufferPoolManagerWithPageTable(numBufs uint32, pageTable PageTable) *BufferPoolManager {
	common.SH_Assert(numBufs > 0, "buffer pool needs at least one frame")

	descs := make([]frameDesc, numBufs)
	for i := uint32(0); i < numBufs; i++ {
		descs[i].frameNo = FrameID(i)
		descs[i].clear()
	}

	return &BufferPoolManager{
		numBufs:   numBufs,
		descs:     descs,
		pages:     make([]page.Page, numBufs),
		pageTable: pageTable,
		// the first advance lands on frame 0
		clockHand: FrameID(numBufs - 1),
	}
}

// ReadPage returns the page pinned. On a miss the page is read from file into a frame
// chosen by the clock sweep. The returned page stays valid until the matching UnpinPage.
func (b *BufferPoolManager) ReadPage(file disk.File, pageID types.PageID) (*page.Page, error) {
	b.assertOpen()
	defer b.checkInvariants()
	const op = "read page"

	frameID, found, err := b.lookup(op, file, pageID)
	if err != nil {
		return nil, err
	}
	if found {
		desc := &b.descs[frameID]
		desc.pinCount++
		desc.refBit = true
		b.stats.Hits++
		return &b.pages[frameID], nil
	}

	b.stats.Misses++
	frameID, err = b.allocBuf(op)
	if err != nil {
		return nil, err
	}

	pg := &b.pages[frameID]
	if err := file.ReadPage(pageID, pg.Data()[:]); err != nil {
		b.releaseFrame(frameID, file, pageID)
		return nil, newBufferError(ErrIOFailure, op, file, pageID, err)
	}
	b.stats.Reads++

	if err := b.pageTable.Insert(file, pageID, uint32(frameID)); err != nil {
		b.releaseFrame(frameID, file, pageID)
		return nil, newBufferError(ErrIndexError, op, file, pageID, err)
	}

	b.descs[frameID].set(file, pageID)
	return pg, nil
}

// UnpinPage drops one pin of the page. isDirty marks the page modified, it never clears the mark.
func (b *BufferPoolManager) UnpinPage(file disk.File, pageID types.PageID, isDirty bool) error {
	b.assertOpen()
	defer b.checkInvariants()
	const op = "unpin page"

	frameID, found, err := b.lookup(op, file, pageID)
	if err != nil {
		return err
	}
	if !found {
		return newBufferError(ErrNotFound, op, file, pageID, nil)
	}

	desc := &b.descs[frameID]
	if desc.pinCount == 0 {
		return newBufferError(ErrNotPinned, op, file, pageID, nil)
	}
	if isDirty {
		desc.dirty = true
	}
	desc.pinCount--
	return nil
}

// AllocPage allocates a new page in file and returns it pinned and zero-filled
func (b *BufferPoolManager) AllocPage(file disk.File) (types.PageID, *page.Page, error) {
	b.assertOpen()
	defer b.checkInvariants()
	const op = "alloc page"

	pageID, err := file.AllocatePage()
	if err != nil {
		return types.InvalidPageID, nil, newBufferError(ErrIOFailure, op, file, types.InvalidPageID, err)
	}

	frameID, err := b.allocBuf(op)
	if err != nil {
		b.giveBack(file, pageID)
		return types.InvalidPageID, nil, err
	}

	if err := b.pageTable.Insert(file, pageID, uint32(frameID)); err != nil {
		b.releaseFrame(frameID, file, pageID)
		b.giveBack(file, pageID)
		return types.InvalidPageID, nil, newBufferError(ErrIndexError, op, file, pageID, err)
	}

	pg := &b.pages[frameID]
	pg.Clear()
	b.descs[frameID].set(file, pageID)
	b.stats.Allocs++
	return pageID, pg, nil
}

// DisposePage drops the page from the pool without writing it back and frees it in file.
// A pinned page is not disposed.
func (b *BufferPoolManager) DisposePage(file disk.File, pageID types.PageID) error {
	b.assertOpen()
	defer b.checkInvariants()
	const op = "dispose page"

	frameID, found, err := b.lookup(op, file, pageID)
	if err != nil {
		return err
	}
	if found {
		desc := &b.descs[frameID]
		if desc.pinCount > 0 {
			return newBufferError(ErrPagePinned, op, file, pageID, nil)
		}
		if err := b.pageTable.Remove(file, pageID); err != nil {
			return newBufferError(ErrIndexError, op, file, pageID, err)
		}
		desc.clear()
		b.pages[frameID].Clear()
	}

	if err := file.DisposePage(pageID); err != nil {
		return newBufferError(ErrIOFailure, op, file, pageID, err)
	}
	b.stats.Disposes++
	return nil
}

// FlushFile writes back the dirty pages of file and drops all its pages from the pool.
// Nothing changes when one of them is still pinned.
func (b *BufferPoolManager) FlushFile(file disk.File) error {
	b.assertOpen()
	defer b.checkInvariants()
	const op = "flush file"

	for i := range b.descs {
		desc := &b.descs[i]
		if !desc.belongsTo(file) {
			continue
		}
		if !desc.valid {
			return newBufferError(ErrInconsistentState, op, file, desc.pageNo, nil)
		}
		if desc.pinCount > 0 {
			return newBufferError(ErrPagePinned, op, file, desc.pageNo, nil)
		}
	}

	for i := range b.descs {
		desc := &b.descs[i]
		if !desc.belongsTo(file) {
			continue
		}
		if desc.dirty {
			if err := file.WritePage(desc.pageNo, b.pages[i].Data()[:]); err != nil {
				return newBufferError(ErrIOFailure, op, file, desc.pageNo, err)
			}
			desc.dirty = false
			b.stats.WriteBacks++
		}
		if err := b.pageTable.Remove(file, desc.pageNo); err != nil {
			return newBufferError(ErrIndexError, op, file, desc.pageNo, err)
		}
		desc.clear()
	}
	return nil
}

// Shutdown writes back every dirty page, pinned or not, and releases the pool.
// All write-back failures are returned together. The manager must not be used afterwards.
func (b *BufferPoolManager) Shutdown() error {
	b.assertOpen()

	var result error
	for i := range b.descs {
		desc := &b.descs[i]
		if !desc.valid || !desc.dirty {
			continue
		}
		if err := desc.file.WritePage(desc.pageNo, b.pages[i].Data()[:]); err != nil {
			if common.LogLevelSetting&common.ERROR != 0 {
				common.LogFields(logrus.Fields{
					"file":  desc.file.Name(),
					"page":  desc.pageNo,
					"frame": desc.frameNo,
				}).WithError(err).Error("write back on shutdown failed")
			}
			result = multierr.Append(result, newBufferError(ErrIOFailure, "shutdown", desc.file, desc.pageNo, err))
			continue
		}
		desc.dirty = false
		b.stats.WriteBacks++
	}

	b.closed = true
	b.descs = nil
	b.pages = nil
	return result
}

// Stats returns a copy of the counters
func (b *BufferPoolManager) Stats() Stats {
	return b.stats
}

func (b *BufferPoolManager) GetPoolSize() uint32 {
	return b.numBufs
}

// lookup reports where the page is resident. A page table miss is not an error.
func (b *BufferPoolManager) lookup(op string, file disk.File, pageID types.PageID) (FrameID, bool, error) {
	frameNo, err := b.pageTable.Lookup(file, pageID)
	if errors.Is(err, hash.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, newBufferError(ErrIndexError, op, file, pageID, err)
	}
	return FrameID(frameNo), true, nil
}

// releaseFrame undoes a half done install, the frame goes back to invalid
func (b *BufferPoolManager) releaseFrame(frameID FrameID, file disk.File, pageID types.PageID) {
	common.ShPrintf(common.WARN, "roll back frame %d for file %d page %d\n", frameID, file.ID(), pageID)
	b.descs[frameID].clear()
	b.pages[frameID].Clear()
}

// giveBack frees a page number that never made it into the pool
func (b *BufferPoolManager) giveBack(file disk.File, pageID types.PageID) {
	if err := file.DisposePage(pageID); err != nil {
		common.ShPrintf(common.WARN, "could not give page %d back to %s: %v\n", pageID, file.Name(), err)
	}
}

func (b *BufferPoolManager) assertOpen() {
	common.SH_Assert(!b.closed, "buffer pool manager is used after Shutdown")
}

// checkInvariants panics when a frame and the page table disagree. Only runs with common.EnableDebug.
func (b *BufferPoolManager) checkInvariants() {
	if !common.EnableDebug {
		return
	}
	resident := mapset.NewThreadUnsafeSet[pair.Pair[disk.FileID, types.PageID]]()
	for i := range b.descs {
		desc := &b.descs[i]
		common.SH_Assert(desc.pinCount >= 0, "negative pin count")
		if !desc.valid {
			common.SH_Assert(desc.pinCount == 0 && !desc.dirty && desc.file == nil, "invalid frame holds state")
			continue
		}
		common.SH_Assert(resident.Add(pair.Pair[disk.FileID, types.PageID]{First: desc.file.ID(), Second: desc.pageNo}),
			"two frames hold the same page")
		frameNo, err := b.pageTable.Lookup(desc.file, desc.pageNo)
		common.SH_Assert(err == nil && FrameID(frameNo) == desc.frameNo, "valid frame is not in the page table")
	}
}
