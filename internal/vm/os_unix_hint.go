//go:build unix && !linux

package vm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Without MAP_FIXED_NOREPLACE the portable approach is to pass the address
// as a hint (no MAP_FIXED, which would clobber existing mappings) and check
// where the kernel actually placed the region.
func osMapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	p, err := unix.MmapPtr(-1, 0, addr, uintptr(length), prot, flags)
	if err != nil {
		return nil, fmt.Errorf("vm: map %d bytes at %p: %w", length, addr, err)
	}
	if p != addr {
		_ = unix.MunmapPtr(p, uintptr(length))
		return nil, fmt.Errorf("vm: map %d bytes at %p: %w", length, addr, ErrAddressOccupied)
	}
	return p, nil
}
