// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/ryogrid/samehada-bufmgr/common"
	"github.com/ryogrid/samehada-bufmgr/types"
)

// pageStore is the byte-addressed medium under a page file
type pageStore interface {
	io.ReaderAt
	io.WriterAt
}

// pageFile implements File on top of a pageStore. Page n lives at offset n*PageSize.
// The mutex guards the store because a File may be shared by several users.
type pageFile struct {
	id        FileID
	fileName  string
	store     pageStore
	alloc     *pageAllocator
	numReads  uint64
	numWrites uint64
	size      int64
	closed    bool
	mutex     deadlock.Mutex
}

func newPageFile(fileName string, store pageStore, size int64) *pageFile {
	return &pageFile{
		id:       newFileID(),
		fileName: fileName,
		store:    store,
		alloc:    newPageAllocator(types.PageID(size / common.PageSize)),
		size:     size,
	}
}

func (f *pageFile) ID() FileID {
	return f.id
}

func (f *pageFile) Name() string {
	return f.fileName
}

// ReadPage reads a page from the file
func (f *pageFile) ReadPage(pageID types.PageID, pageData []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.checkAccess(pageID, pageData); err != nil {
		return errors.Wrapf(err, "read page %d of %s", pageID, f.fileName)
	}

	offset := int64(pageID) * int64(common.PageSize)
	bytesRead, err := f.store.ReadAt(pageData, offset)
	if err == io.EOF && bytesRead == len(pageData) {
		err = nil
	}
	if err != nil {
		return errors.Wrapf(err, "read page %d of %s", pageID, f.fileName)
	}
	f.numReads++
	return nil
}

// WritePage writes a page to the file
func (f *pageFile) WritePage(pageID types.PageID, pageData []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.checkAccess(pageID, pageData); err != nil {
		return errors.Wrapf(err, "write page %d of %s", pageID, f.fileName)
	}
	return f.writeAt(pageID, pageData)
}

// AllocatePage hands out a page number, reusing disposed ones first.
// The page is zero-filled on the medium so that it can be read right away.
func (f *pageFile) AllocatePage() (types.PageID, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.closed {
		return types.InvalidPageID, errors.Wrapf(ErrFileClosed, "allocate page of %s", f.fileName)
	}

	pageID, reused := f.alloc.allocate()
	if err := f.writeAt(pageID, make([]byte, common.PageSize)); err != nil {
		f.alloc.unallocate(pageID, reused)
		return types.InvalidPageID, err
	}
	return pageID, nil
}

// DisposePage gives pageID back to the file. Reading or writing it fails until it is allocated again.
func (f *pageFile) DisposePage(pageID types.PageID) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.closed {
		return errors.Wrapf(ErrFileClosed, "dispose page %d of %s", pageID, f.fileName)
	}
	if err := f.alloc.check(pageID); err != nil {
		return errors.Wrapf(err, "dispose page %d of %s", pageID, f.fileName)
	}
	f.alloc.dispose(pageID)
	return nil
}

// GetNumReads returns the number of page reads
func (f *pageFile) GetNumReads() uint64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.numReads
}

// GetNumWrites returns the number of page writes
func (f *pageFile) GetNumWrites() uint64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.numWrites
}

// Size returns the size of the file in bytes
func (f *pageFile) Size() int64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.size
}

// NumPages returns how many pages are allocated and not disposed
func (f *pageFile) NumPages() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.alloc.numAllocated()
}

func (f *pageFile) checkAccess(pageID types.PageID, pageData []byte) error {
	if f.closed {
		return ErrFileClosed
	}
	if len(pageData) != common.PageSize {
		return ErrInvalidPageSize
	}
	return f.alloc.check(pageID)
}

// writeAt must be called with the mutex held
func (f *pageFile) writeAt(pageID types.PageID, pageData []byte) error {
	offset := int64(pageID) * int64(common.PageSize)
	bytesWritten, err := f.store.WriteAt(pageData, offset)
	if err != nil {
		return errors.Wrapf(err, "write page %d of %s", pageID, f.fileName)
	}
	if bytesWritten != common.PageSize {
		return errors.Wrapf(io.ErrShortWrite, "write page %d of %s", pageID, f.fileName)
	}

	if offset+int64(bytesWritten) > f.size {
		f.size = offset + int64(bytesWritten)
	}
	f.numWrites++
	return nil
}
