package buffer

import (
	"fmt"

	"github.com/OneOfOne/xxhash"
	"github.com/devlights/gomy/output"

	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/types"
)

// FrameInfo is a snapshot of one frame
type FrameInfo struct {
	FrameID  FrameID
	FileID   disk.FileID
	FileName string
	PageID   types.PageID
	PinCount int32
	Dirty    bool
	Valid    bool
	RefBit   bool
	// Digest is the xxhash of the frame content
	Digest uint64
}

func (fi FrameInfo) String() string {
	if !fi.Valid {
		return fmt.Sprintf("frame %d: invalid", fi.FrameID)
	}
	return fmt.Sprintf("frame %d: file %d (%s) page %d pin %d dirty %t ref %t digest %016x",
		fi.FrameID, fi.FileID, fi.FileName, fi.PageID, fi.PinCount, fi.Dirty, fi.RefBit, fi.Digest)
}

// Frames returns the state of every frame in frame order
func (b *BufferPoolManager) Frames() []FrameInfo {
	b.assertOpen()

	infos := make([]FrameInfo, len(b.descs))
	for i := range b.descs {
		desc := &b.descs[i]
		info := FrameInfo{
			FrameID:  desc.frameNo,
			PageID:   desc.pageNo,
			PinCount: desc.pinCount,
			Dirty:    desc.dirty,
			Valid:    desc.valid,
			RefBit:   desc.refBit,
			Digest:   xxhash.Checksum64(b.pages[i].Data()[:]),
		}
		if desc.file != nil {
			info.FileID = desc.file.ID()
			info.FileName = desc.file.Name()
		}
		infos[i] = info
	}
	return infos
}

// PrintSelf dumps the frame table to stdout
func (b *BufferPoolManager) PrintSelf() {
	numValid := 0
	for _, info := range b.Frames() {
		output.Stdoutl("[buffer]", info.String())
		if info.Valid {
			numValid++
		}
	}
	output.Stdoutl("[buffer]", fmt.Sprintf("valid frames: %d/%d clock hand: %d", numValid, b.numBufs, b.clockHand))
}
