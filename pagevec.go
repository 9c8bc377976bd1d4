package pagevec

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/pagevec/internal/pagemath"
)

// Array is a contiguous array of T backed by a single anonymous
// virtual-memory mapping. The mapped byte size is always a non-zero multiple
// of the page size and the base address is always page-aligned.
//
// Capacity is derived from the mapping; the logical length is caller
// bookkeeping (see SetLen) and is consulted only to know how many elements
// must survive a relocating Grow.
type Array[T any] struct {
	mapper Mapper
	logger *slog.Logger

	ptr    unsafe.Pointer
	mapped int // mapped bytes, always a non-zero page multiple
	size   int // caller-maintained count of initialized elements

	closed atomic.Bool
}

// New maps an array with room for at least initialCapacity elements.
//
// The mapping is rounded up to a whole number of pages, so the resulting
// Cap may exceed initialCapacity; even for initialCapacity 0 a full page is
// mapped. With WithBaseAddress the mapping is placed at exactly that address
// or New fails with ErrAddressOccupied. Mapping failures surface unchanged;
// they are never retried.
func New[T any](initialCapacity int, opts ...Option) (*Array[T], error) {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem == 0 {
		return nil, ErrZeroSizeElement
	}
	if initialCapacity < 0 {
		return nil, ErrNegativeCapacity
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	mapped := pagemath.Round(initialCapacity*elem, o.mapper.PageSize())

	var (
		ptr unsafe.Pointer
		err error
	)
	if o.base != nil {
		ptr, err = o.mapper.MapAt(o.base, mapped)
	} else {
		ptr, err = o.mapper.Map(mapped)
	}
	if err != nil {
		return nil, err
	}

	return &Array[T]{
		mapper: o.mapper,
		logger: o.logger,
		ptr:    ptr,
		mapped: mapped,
	}, nil
}

func (a *Array[T]) elemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Ptr returns the page-aligned base address of the mapping, or nil after
// Close. Grow may change it; see Grow.
func (a *Array[T]) Ptr() unsafe.Pointer {
	if a.closed.Load() {
		return nil
	}
	return a.ptr
}

// Cap returns the number of element slots backed by mapped memory.
func (a *Array[T]) Cap() int {
	return pagemath.Slots(a.mapped, a.elemSize())
}

// Len returns the caller-maintained count of initialized elements.
func (a *Array[T]) Len() int {
	return a.size
}

// SetLen records that the first n elements are initialized. Only these
// elements are preserved when Grow has to relocate. n must lie in
// [0, Cap()]; anything else is a programming error and panics.
func (a *Array[T]) SetLen(n int) {
	if n < 0 || n > a.Cap() {
		panic("pagevec: SetLen out of range")
	}
	a.size = n
}

// Slice returns the full-capacity view of the mapped region. The slice is
// valid only until the next Grow or Close; Grow may relocate the backing
// memory, after which the old slice must not be touched. Returns nil after
// Close.
func (a *Array[T]) Slice() []T {
	if a.closed.Load() {
		return nil
	}
	return unsafe.Slice((*T)(a.ptr), a.Cap())
}

// Bytes returns the raw mapped region. Same validity rules as Slice.
func (a *Array[T]) Bytes() []byte {
	if a.closed.Load() {
		return nil
	}
	return unsafe.Slice((*byte)(a.ptr), a.mapped)
}

// Grow extends capacity to at least newCapacity elements. newCapacity must
// exceed Cap; a non-increasing capacity is a programming error and panics.
//
// Grow first tries to map the additional pages directly after the current
// region. When that succeeds no element moves and Ptr is unchanged. When the
// adjacent range is occupied (and only then) the array relocates: a fresh
// OS-chosen region is mapped, the first Len elements are copied, the old
// region is unmapped and Ptr changes. Any other mapping failure is returned
// as-is, without the fallback, and leaves the array untouched.
//
// The resulting Cap may exceed newCapacity due to page rounding. Len is
// never modified.
func (a *Array[T]) Grow(newCapacity int) error {
	if a.closed.Load() {
		return ErrClosed
	}
	if newCapacity <= a.Cap() {
		panic("pagevec: Grow: new capacity must exceed current capacity")
	}

	elem := a.elemSize()
	want := pagemath.Round(newCapacity*elem, a.mapper.PageSize())
	extra := want - a.mapped

	// Fast path: extend the mapping in place.
	tail := unsafe.Add(a.ptr, a.mapped)
	if _, err := a.mapper.MapAt(tail, extra); err == nil {
		a.mapped = want
		a.logger.Debug("pagevec: grew in place",
			"base", uintptr(a.ptr), "mapped", a.mapped, "cap", a.Cap())
		return nil
	} else if !errors.Is(err, ErrAddressOccupied) {
		return err
	}

	// The adjacent range is taken: relocate and copy the live prefix.
	ptr, err := a.mapper.Map(want)
	if err != nil {
		return err
	}
	if a.size > 0 {
		copy(unsafe.Slice((*T)(ptr), a.size), unsafe.Slice((*T)(a.ptr), a.size))
	}
	old, oldMapped := a.ptr, a.mapped
	a.ptr, a.mapped = ptr, want
	a.logger.Debug("pagevec: relocated",
		"base", uintptr(a.ptr), "mapped", a.mapped, "cap", a.Cap(), "copied", a.size)
	return a.mapper.Unmap(old, oldMapped)
}

// Close unmaps the region. It is idempotent; the array must not be used
// afterwards and any slice or pointer previously obtained from it becomes
// invalid.
func (a *Array[T]) Close() error {
	if a.closed.Swap(true) {
		return nil
	}
	return a.mapper.Unmap(a.ptr, a.mapped)
}
