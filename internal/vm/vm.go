package vm

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrAddressOccupied is returned by MapAt when the requested address range
// overlaps an existing mapping.
var ErrAddressOccupied = errors.New("vm: address range already mapped")

// Map creates an anonymous, private, read-write mapping of length bytes at an
// address chosen by the operating system. The returned address is
// page-aligned and the memory is zero-initialized.
func Map(length int) (unsafe.Pointer, error) {
	if length <= 0 {
		return nil, fmt.Errorf("vm: map: invalid length %d", length)
	}
	return osMap(length)
}

// MapAt creates an anonymous, private, read-write mapping of length bytes at
// exactly addr. If the range [addr, addr+length) overlaps an existing
// mapping, MapAt fails with an error matching ErrAddressOccupied and leaves
// that mapping untouched.
func MapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error) {
	if addr == nil {
		return nil, errors.New("vm: map at: nil address")
	}
	if length <= 0 {
		return nil, fmt.Errorf("vm: map at: invalid length %d", length)
	}
	return osMapAt(addr, length)
}

// Unmap removes the mapping covering [addr, addr+length). The range must lie
// within mappings created by this package; partial unmapping of a larger
// region is permitted and splits it.
func Unmap(addr unsafe.Pointer, length int) error {
	if addr == nil || length <= 0 {
		return fmt.Errorf("vm: unmap: invalid range %p+%d", addr, length)
	}
	return osUnmap(addr, length)
}

// PageSize reports the platform's mapping granularity in bytes.
func PageSize() int {
	return osPageSize()
}
