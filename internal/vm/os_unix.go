//go:build unix

package vm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func osMap(length int) (unsafe.Pointer, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	p, err := unix.MmapPtr(-1, 0, nil, uintptr(length), prot, flags)
	if err != nil {
		return nil, fmt.Errorf("vm: map %d bytes: %w", length, err)
	}
	return p, nil
}

func osUnmap(addr unsafe.Pointer, length int) error {
	if err := unix.MunmapPtr(addr, uintptr(length)); err != nil {
		return fmt.Errorf("vm: unmap %p+%d: %w", addr, length, err)
	}
	return nil
}

func osPageSize() int {
	return unix.Getpagesize()
}
