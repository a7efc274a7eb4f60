package pool

import "sync"

// float64SlicePool pools scratch coordinate buffers used while walking a
// geometry tree to extend a bounding box one point at a time.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has length equal to size. The caller must call the
// returned cleanup function (typically via defer) to return it to the pool.
//
// Example:
//
//	coord, cleanup := pool.GetFloat64Slice(dims)
//	defer cleanup()
//	// Use coord slice...
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
