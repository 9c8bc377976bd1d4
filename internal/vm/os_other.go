//go:build !unix

package vm

import (
	"errors"
	"fmt"
	"os"
	"unsafe"
)

func osMap(length int) (unsafe.Pointer, error) {
	return nil, fmt.Errorf("vm: map: %w", errors.ErrUnsupported)
}

func osMapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error) {
	return nil, fmt.Errorf("vm: map at: %w", errors.ErrUnsupported)
}

func osUnmap(addr unsafe.Pointer, length int) error {
	return fmt.Errorf("vm: unmap: %w", errors.ErrUnsupported)
}

func osPageSize() int {
	return os.Getpagesize()
}
