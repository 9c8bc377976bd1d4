package pagevec

import (
	"errors"

	"github.com/hupe1980/pagevec/internal/vm"
)

var (
	// ErrAddressOccupied indicates a fixed-address mapping request collided
	// with an existing mapping. New surfaces it when the address passed to
	// WithBaseAddress is taken; Grow consumes it internally to trigger the
	// relocation fallback. Custom Mapper implementations must return an
	// error matching it (errors.Is) from MapAt in this situation.
	ErrAddressOccupied = vm.ErrAddressOccupied

	// ErrClosed is returned when operating on a closed array.
	ErrClosed = errors.New("pagevec: array is closed")

	// ErrZeroSizeElement is returned by New for element types with
	// sizeof == 0: capacity bookkeeping divides by the element size.
	ErrZeroSizeElement = errors.New("pagevec: element type has zero size")

	// ErrNegativeCapacity is returned by New for a negative capacity.
	ErrNegativeCapacity = errors.New("pagevec: negative capacity")
)
