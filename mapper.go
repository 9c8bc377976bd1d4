package pagevec

import (
	"unsafe"

	"github.com/hupe1980/pagevec/internal/vm"
)

// Mapper abstracts the virtual-memory subsystem an Array allocates from.
//
// Implementations must hand out zero-initialized, page-aligned regions.
// MapAt must place the region at exactly addr and fail with an error
// matching ErrAddressOccupied when the range overlaps an existing mapping;
// it must never relocate silently. Unmap must accept any page-aligned
// subrange of previously mapped memory.
//
// The zero value of the package's default implementation is used when no
// WithMapper option is given. Custom implementations exist mainly for tests
// that need a deterministic address-space layout or a pinned page size.
type Mapper interface {
	// PageSize reports the mapping granularity in bytes.
	PageSize() int
	// Map maps length bytes at an address of the implementation's choosing.
	Map(length int) (unsafe.Pointer, error)
	// MapAt maps length bytes at exactly addr, or fails with
	// ErrAddressOccupied if the range is taken.
	MapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error)
	// Unmap releases the range [addr, addr+length).
	Unmap(addr unsafe.Pointer, length int) error
}

// osMapper is the default Mapper, backed by the platform primitives.
type osMapper struct{}

func (osMapper) PageSize() int { return vm.PageSize() }

func (osMapper) Map(length int) (unsafe.Pointer, error) { return vm.Map(length) }

func (osMapper) MapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error) {
	return vm.MapAt(addr, length)
}

func (osMapper) Unmap(addr unsafe.Pointer, length int) error { return vm.Unmap(addr, length) }
