// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"path/filepath"
	"testing"

	"github.com/ryogrid/samehada-bufmgr/common"
	"github.com/ryogrid/samehada-bufmgr/types"
)

// NewDiskFileTest returns a DiskFile in a temporary directory that is removed when the test ends.
// It panics on failure, like the rest of the test helpers.
func NewDiskFileTest(t testing.TB) *DiskFile {
	path := filepath.Join(t.TempDir(), "samehada.db")
	file, err := OpenDiskFile(path)
	if err != nil {
		panic(err)
	}
	t.Cleanup(func() {
		file.Close()
	})
	return file
}

// FaultyFile wraps a File and fails the operations whose flag is set
type FaultyFile struct {
	File
	FailRead     bool
	FailWrite    bool
	FailAllocate bool
	FailDispose  bool
	// Err is returned by a failing operation, ErrInjectedFault when nil
	Err error
}

func NewFaultyFile(file File) *FaultyFile {
	return &FaultyFile{File: file}
}

func (f *FaultyFile) fault() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjectedFault
}

func (f *FaultyFile) ReadPage(pageID types.PageID, data []byte) error {
	if f.FailRead {
		// a failed read may leave garbage behind
		for i := range data {
			data[i] = 0xEE
		}
		return f.fault()
	}
	return f.File.ReadPage(pageID, data)
}

func (f *FaultyFile) WritePage(pageID types.PageID, data []byte) error {
	if f.FailWrite {
		return f.fault()
	}
	return f.File.WritePage(pageID, data)
}

func (f *FaultyFile) AllocatePage() (types.PageID, error) {
	if f.FailAllocate {
		return types.InvalidPageID, f.fault()
	}
	return f.File.AllocatePage()
}

func (f *FaultyFile) DisposePage(pageID types.PageID) error {
	if f.FailDispose {
		return f.fault()
	}
	return f.File.DisposePage(pageID)
}

// PageOf returns a page filled with b, handy for telling pages apart
func PageOf(b byte) []byte {
	data := make([]byte, common.PageSize)
	for i := range data {
		data[i] = b
	}
	return data
}
