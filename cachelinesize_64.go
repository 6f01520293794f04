//go:build coll_cachelinesize_64 && !coll_cachelinesize_128

package coll

const CacheLineSize uintptr = 64
