package disk

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/ryogrid/samehada-bufmgr/types"
)

// FileID identifies one opened page file. Two File values are the same file
// for the buffer pool exactly when their IDs are equal.
type FileID uint32

// SizeOfFileID is the length of a serialized FileID
const SizeOfFileID = 4

var lastFileID uint32

func newFileID() FileID {
	return FileID(atomic.AddUint32(&lastFileID, 1))
}

// Serialize casts it to []byte
func (id FileID) Serialize() []byte {
	buf := make([]byte, SizeOfFileID)
	binary.LittleEndian.PutUint32(buf, uint32(id))
	return buf
}

/**
 * File is one on-disk page store. It performs the reading and writing of fixed-size pages addressed by
 * page number, and hands out and takes back page numbers. The buffer pool manager only borrows a File:
 * it never closes or otherwise owns one.
 */
type File interface {
	ID() FileID
	Name() string
	// ReadPage fills data (common.PageSize bytes) with the content of pageID
	ReadPage(pageID types.PageID, data []byte) error
	// WritePage stores data (common.PageSize bytes) as the content of pageID
	WritePage(pageID types.PageID, data []byte) error
	AllocatePage() (types.PageID, error)
	DisposePage(pageID types.PageID) error
}
