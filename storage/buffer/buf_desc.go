package buffer

import (
	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/types"
)

// FrameID is the type for frame id
type FrameID uint32

// frameDesc is the book-keeping of one frame. frameNo never changes.
// An invalid frame has no file, no pins and is not dirty.
type frameDesc struct {
	frameNo  FrameID
	file     disk.File
	pageNo   types.PageID
	pinCount int32
	dirty    bool
	valid    bool
	refBit   bool
}

// set installs a freshly pinned page
func (d *frameDesc) set(file disk.File, pageNo types.PageID) {
	d.file = file
	d.pageNo = pageNo
	d.pinCount = 1
	d.dirty = false
	d.valid = true
	d.refBit = true
}

// clear returns the frame to the invalid state
func (d *frameDesc) clear() {
	d.file = nil
	d.pageNo = types.InvalidPageID
	d.pinCount = 0
	d.dirty = false
	d.valid = false
	d.refBit = false
}

func (d *frameDesc) belongsTo(file disk.File) bool {
	return d.file != nil && d.file.ID() == file.ID()
}
