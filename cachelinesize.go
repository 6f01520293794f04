//go:build !coll_cachelinesize_64 && !coll_cachelinesize_128

package coll

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the cache line size of the target CPU.
// It's automatically calculated using the `golang.org/x/sys` package.
// Build with -tags coll_cachelinesize_64 or coll_cachelinesize_128 to pin it.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
