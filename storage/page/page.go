// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"github.com/ryogrid/samehada-bufmgr/common"
)

/**
 * Page is the basic unit of storage within the database system. Page is the raw byte block of one
 * on-disk page while it is held in main memory. Book-keeping such as pin count and dirty flag is kept
 * by the buffer pool manager in its frame descriptors, not here.
 */
type Page struct {
	data [common.PageSize]byte // bytes stored in disk
}

// Data returns the data of the page
func (p *Page) Data() *[common.PageSize]byte {
	return &p.data
}

// Copy copies data to the page's data
func (p *Page) Copy(offset uint32, data []byte) {
	copy(p.data[offset:], data)
}

// Clear zero-fills the page
func (p *Page) Clear() {
	p.data = [common.PageSize]byte{}
}

// NewEmpty creates a zero-filled page
func NewEmpty() *Page {
	return &Page{}
}
