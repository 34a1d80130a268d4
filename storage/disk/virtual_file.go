package disk

import (
	"github.com/dsnet/golib/memfile"
)

// VirtualFile is a File held in memory. It behaves like DiskFile but nothing survives the process.
type VirtualFile struct {
	*pageFile
}

func NewVirtualFile(fileName string) *VirtualFile {
	return &VirtualFile{newPageFile(fileName, memfile.New(make([]byte, 0)), 0)}
}

// Close marks the file closed. Later page operations fail with ErrFileClosed.
func (v *VirtualFile) Close() error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.closed = true
	return nil
}

// Remove is Close, there is nothing to delete
func (v *VirtualFile) Remove() error {
	return v.Close()
}
