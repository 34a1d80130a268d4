// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"os"

	"github.com/pkg/errors"

	"github.com/ryogrid/samehada-bufmgr/common"
)

// syncedFile makes every page write durable before it returns
type syncedFile struct {
	*os.File
}

func (s syncedFile) WriteAt(p []byte, off int64) (int, error) {
	n, err := s.File.WriteAt(p, off)
	if err != nil {
		return n, err
	}
	return n, s.File.Sync()
}

// DiskFile is a File stored in an operating system file
type DiskFile struct {
	*pageFile
	db *os.File
}

// OpenDiskFile opens fileName, creating it when it does not exist.
// Every whole page already in the file counts as allocated.
func OpenDiskFile(fileName string) (*DiskFile, error) {
	file, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open db file %s", fileName)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "file info error %s", fileName)
	}

	fileSize := fileInfo.Size()
	if fileSize%common.PageSize != 0 {
		common.ShPrintf(common.WARN, "db file %s has a partial trailing page (size %d)\n", fileName, fileSize)
	}

	return &DiskFile{newPageFile(fileName, syncedFile{file}, fileSize), file}, nil
}

// Close closes the database file. Later page operations fail with ErrFileClosed.
func (d *DiskFile) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return errors.Wrapf(d.db.Close(), "close %s", d.fileName)
}

// Remove closes the file and deletes it from the file system
func (d *DiskFile) Remove() error {
	if err := d.Close(); err != nil {
		return err
	}
	return errors.Wrapf(os.Remove(d.fileName), "remove %s", d.fileName)
}
