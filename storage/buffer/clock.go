package buffer

import (
	"github.com/ryogrid/samehada-bufmgr/common"
	"github.com/ryogrid/samehada-bufmgr/types"
)

func (b *BufferPoolManager) advanceClock() {
	b.clockHand = (b.clockHand + 1) % FrameID(b.numBufs)
}

// allocBuf finds a frame for a new page with the clock sweep.
// Unpinned frames get a second chance when their refBit is set. A dirty victim is
// written back and its page table entry removed before the frame is handed out invalid.
// After ClockSweepPasses rotations without a victim every frame must be pinned.
func (b *BufferPoolManager) allocBuf(op string) (FrameID, error) {
	for visits := uint32(0); visits < common.ClockSweepPasses*b.numBufs; visits++ {
		b.advanceClock()
		desc := &b.descs[b.clockHand]

		if !desc.valid {
			return desc.frameNo, nil
		}
		if desc.refBit {
			desc.refBit = false
			continue
		}
		if desc.pinCount > 0 {
			continue
		}

		// victim
		if desc.dirty {
			if err := desc.file.WritePage(desc.pageNo, b.pages[desc.frameNo].Data()[:]); err != nil {
				return 0, newBufferError(ErrIOFailure, op, desc.file, desc.pageNo, err)
			}
			desc.dirty = false
			b.stats.WriteBacks++
		}
		if err := b.pageTable.Remove(desc.file, desc.pageNo); err != nil {
			return 0, newBufferError(ErrIndexError, op, desc.file, desc.pageNo, err)
		}
		common.ShPrintf(common.DEBUG_INFO, "evict frame %d (file %d page %d)\n", desc.frameNo, desc.file.ID(), desc.pageNo)
		b.stats.Evictions++
		desc.clear()
		return desc.frameNo, nil
	}
	return 0, newBufferError(ErrPoolExhausted, op, nil, types.InvalidPageID, nil)
}
