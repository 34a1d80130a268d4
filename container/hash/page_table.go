package hash

import (
	"fmt"

	"github.com/notEpsilon/go-pair"

	"github.com/ryogrid/samehada-bufmgr/common"
	"github.com/ryogrid/samehada-bufmgr/errors"
	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/types"
)

const (
	ErrKeyNotFound  = errors.Error("page is not in the table")
	ErrDuplicateKey = errors.Error("page is already in the table")
	ErrTableFull    = errors.Error("page table is full")
)

type pageKey = pair.Pair[disk.FileID, types.PageID]

type slot struct {
	key     pageKey
	frameNo uint32
	used    bool
}

/**
 * PageTable maps (file, page number) to the frame holding that page.
 * Linear probing over a fixed array of slots. Remove shifts the rest of the probe
 * run back into the hole, so an empty slot always ends a probe and no tombstones pile up.
 * Not safe for concurrent use, the buffer pool manager serializes access.
 */
type PageTable struct {
	slots      []slot
	numEntries int
}

// NewPageTable sizes the table for a pool of numFrames frames
func NewPageTable(numFrames uint32) *PageTable {
	size := int(float64(numFrames)*common.PageTableSizeRatio)*2/2 + 1
	return &PageTable{slots: make([]slot, size)}
}

// Lookup returns the frame number holding pageID of file
func (t *PageTable) Lookup(file disk.File, pageID types.PageID) (uint32, error) {
	key := pageKey{First: file.ID(), Second: pageID}
	if idx, found := t.find(key); found {
		return t.slots[idx].frameNo, nil
	}
	return 0, ErrKeyNotFound
}

// Insert records that frameNo holds pageID of file
func (t *PageTable) Insert(file disk.File, pageID types.PageID, frameNo uint32) error {
	key := pageKey{First: file.ID(), Second: pageID}
	start := t.home(key)
	for i := 0; i < len(t.slots); i++ {
		idx := (start + i) % len(t.slots)
		s := &t.slots[idx]
		if !s.used {
			*s = slot{key: key, frameNo: frameNo, used: true}
			t.numEntries++
			return nil
		}
		if s.key == key {
			return ErrDuplicateKey
		}
	}
	return ErrTableFull
}

// Remove drops the entry for pageID of file
func (t *PageTable) Remove(file disk.File, pageID types.PageID) error {
	key := pageKey{First: file.ID(), Second: pageID}
	hole, found := t.find(key)
	if !found {
		return ErrKeyNotFound
	}

	n := len(t.slots)
	next := hole
	for i := 1; i < n; i++ {
		next = (next + 1) % n
		if !t.slots[next].used {
			break
		}
		// an entry may fill the hole only if the hole lies between its home and where it sits now
		home := t.home(t.slots[next].key)
		if (next-home+n)%n < (next-hole+n)%n {
			continue
		}
		t.slots[hole] = t.slots[next]
		hole = next
	}
	t.slots[hole] = slot{}
	t.numEntries--
	return nil
}

// Len is the number of entries
func (t *PageTable) Len() int {
	return t.numEntries
}

// Size is the number of slots
func (t *PageTable) Size() int {
	return len(t.slots)
}

func (t *PageTable) String() string {
	return fmt.Sprintf("PageTable{entries: %d, slots: %d}", t.numEntries, len(t.slots))
}

func (t *PageTable) find(key pageKey) (int, bool) {
	start := t.home(key)
	for i := 0; i < len(t.slots); i++ {
		idx := (start + i) % len(t.slots)
		s := &t.slots[idx]
		if !s.used {
			return -1, false
		}
		if s.key == key {
			return idx, true
		}
	}
	return -1, false
}

func (t *PageTable) home(key pageKey) int {
	raw := append(key.First.Serialize(), key.Second.Serialize()...)
	return int(GenHashMurMur(raw) % uint32(len(t.slots)))
}
