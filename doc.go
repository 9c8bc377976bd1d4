// Package pagevec provides a contiguous, dynamically growable array whose
// storage comes directly from the operating system's virtual-memory mapper
// instead of the Go heap.
//
// # Overview
//
// An Array owns exactly one anonymous read-write mapping, always sized to a
// whole number of pages. Growth prefers mapping additional pages immediately
// after the existing region, which extends capacity without moving a single
// element; only when that address space is occupied does the array relocate
// to a fresh mapping and copy the initialized prefix.
//
// # Usage
//
//	arr, err := pagevec.New[uint64](1024)
//	if err != nil { ... }
//	defer arr.Close()
//
//	s := arr.Slice()
//	s[0] = 42
//	arr.SetLen(1)
//
//	// Grow keeps arr.Ptr() stable whenever the adjacent
//	// address space is free.
//	if err := arr.Grow(100_000); err != nil { ... }
//
// # Element types
//
// The mapped region is invisible to the garbage collector. Element types must
// not contain Go pointers; storing pointers in an Array hides them from the
// GC and the referenced objects may be collected while still in use.
//
// # Thread safety
//
// An Array is not safe for concurrent use. Growth can swap the backing
// region, so callers sharing an Array across goroutines must provide their
// own synchronization around every operation, including reads of Ptr and
// Slice.
//
// # Platform support
//
// The default Mapper requires a Unix platform with page-granular anonymous
// mapping and fail-if-occupied fixed placement (see internal/vm). On other
// platforms New fails with errors.ErrUnsupported unless a custom Mapper is
// supplied.
package pagevec
