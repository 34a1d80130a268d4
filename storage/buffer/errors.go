package buffer

import (
	"fmt"

	"github.com/ryogrid/samehada-bufmgr/errors"
	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/types"
)

const (
	ErrIOFailure         = errors.Error("page file operation failed")
	ErrPoolExhausted     = errors.Error("buffer pool exhausted, every frame is pinned")
	ErrIndexError        = errors.Error("page table operation failed")
	ErrNotFound          = errors.Error("page is not in the buffer pool")
	ErrNotPinned         = errors.Error("page is not pinned")
	ErrPagePinned        = errors.Error("page is pinned")
	ErrInconsistentState = errors.Error("bad buffer, stale frame references the file")
)

// BufferError is returned by every failing BufferPoolManager operation.
// errors.Is matches Kind, and Unwrap gives the page file or page table error behind it.
type BufferError struct {
	Kind   errors.Error
	Op     string
	FileID disk.FileID
	PageID types.PageID
	Err    error
}

func newBufferError(kind errors.Error, op string, file disk.File, pageID types.PageID, cause error) *BufferError {
	var fileID disk.FileID
	if file != nil {
		fileID = file.ID()
	}
	return &BufferError{Kind: kind, Op: op, FileID: fileID, PageID: pageID, Err: cause}
}

func (e *BufferError) Error() string {
	msg := fmt.Sprintf("buffer: %s file %d page %d: %s", e.Op, e.FileID, e.PageID, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BufferError) Is(target error) bool {
	kind, ok := target.(errors.Error)
	return ok && kind == e.Kind
}

func (e *BufferError) Unwrap() error {
	return e.Err
}
