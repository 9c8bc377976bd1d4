package vm

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func osMapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE | unix.MAP_FIXED_NOREPLACE

	p, err := unix.MmapPtr(-1, 0, addr, uintptr(length), prot, flags)
	if err != nil {
		if errors.Is(err, unix.EEXIST) {
			return nil, fmt.Errorf("vm: map %d bytes at %p: %w", length, addr, ErrAddressOccupied)
		}
		return nil, fmt.Errorf("vm: map %d bytes at %p: %w", length, addr, err)
	}
	// Kernels before 4.17 ignore MAP_FIXED_NOREPLACE and treat addr as a
	// hint, so the placement still has to be verified.
	if p != addr {
		_ = unix.MunmapPtr(p, uintptr(length))
		return nil, fmt.Errorf("vm: map %d bytes at %p: %w", length, addr, ErrAddressOccupied)
	}
	return p, nil
}
