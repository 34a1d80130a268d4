package disk

import "github.com/ryogrid/samehada-bufmgr/errors"

const (
	ErrPageDisposed    = errors.Error("page is disposed")
	ErrPastEndOfFile   = errors.Error("page is past the end of file")
	ErrInvalidPageID   = errors.Error("invalid page id")
	ErrInvalidPageSize = errors.Error("page data must be exactly one page long")
	ErrFileClosed      = errors.Error("file is closed")
	ErrInjectedFault   = errors.Error("injected fault")
)
