// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

// EnableDebug turns on invariant checks on every buffer pool operation
var EnableDebug bool = false

const (
	// size of a data page in byte
	PageSize = 4096
	// default number of frames when no configuration is given
	DefaultBufferPoolSize = 64
	// how many full rotations the clock hand may make before giving up
	ClockSweepPasses = 2
	// page table slots per frame (the table gets int(frames*ratio)*2/2+1 slots)
	PageTableSizeRatio = 1.2
)
