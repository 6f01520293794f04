//go:build coll_cachelinesize_128

package coll

const CacheLineSize uintptr = 128
