package buffer

import (
	"go.uber.org/multierr"

	"github.com/ryogrid/samehada-bufmgr/container/hash"
	"github.com/ryogrid/samehada-bufmgr/errors"
	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/types"
)

const errTableFault = errors.Error("page table fault")

// faultyPageTable is a hash.PageTable whose operations can be made to fail
type faultyPageTable struct {
	*hash.PageTable
	failLookup bool
	failInsert bool
	failRemove bool
}

func newFaultyPageTable(numFrames uint32) *faultyPageTable {
	return &faultyPageTable{PageTable: hash.NewPageTable(numFrames)}
}

func (p *faultyPageTable) Lookup(file disk.File, pageID types.PageID) (uint32, error) {
	if p.failLookup {
		return 0, errTableFault
	}
	return p.PageTable.Lookup(file, pageID)
}

func (p *faultyPageTable) Insert(file disk.File, pageID types.PageID, frameNo uint32) error {
	if p.failInsert {
		return errTableFault
	}
	return p.PageTable.Insert(file, pageID, frameNo)
}

func (p *faultyPageTable) Remove(file disk.File, pageID types.PageID) error {
	if p.failRemove {
		return errTableFault
	}
	return p.PageTable.Remove(file, pageID)
}

func multierrErrors(err error) []error {
	return multierr.Errors(err)
}
