//go:build unix

package pagevec_test

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"

	"github.com/hupe1980/pagevec"
	"github.com/hupe1980/pagevec/internal/vm"
)

// fakePageSize pins the page size the arrays under test see, independent of
// the real platform (16 KiB pages on arm64 would otherwise change every
// expected capacity).
const fakePageSize = 4096

var errArenaFull = errors.New("arena: out of space")

// arenaMapper is a deterministic Mapper for tests. The memory it hands out
// is carved from one real mapping, so it is genuinely readable and writable,
// but placement, occupancy and the page size are entirely under the test's
// control. Fresh regions are zeroed, matching the anonymous-mapping
// guarantee the Mapper contract requires.
type arenaMapper struct {
	base unsafe.Pointer
	size int
	live map[uintptr]int // allocation base -> length
}

func newArenaMapper(t *testing.T, pages int) *arenaMapper {
	t.Helper()

	size := pages * fakePageSize
	base, err := vm.Map(size)
	if err != nil {
		t.Fatalf("arena: backing mapping: %v", err)
	}
	t.Cleanup(func() { _ = vm.Unmap(base, size) })

	return &arenaMapper{base: base, size: size, live: make(map[uintptr]int)}
}

func (m *arenaMapper) PageSize() int { return fakePageSize }

func (m *arenaMapper) contains(addr uintptr, length int) bool {
	lo := uintptr(m.base)
	return addr >= lo && addr+uintptr(length) <= lo+uintptr(m.size)
}

func (m *arenaMapper) overlaps(addr uintptr, length int) bool {
	for a, l := range m.live {
		if addr < a+uintptr(l) && a < addr+uintptr(length) {
			return true
		}
	}
	return false
}

func (m *arenaMapper) claim(addr unsafe.Pointer, length int) {
	m.live[uintptr(addr)] = length
	clear(unsafe.Slice((*byte)(addr), length))
}

func (m *arenaMapper) Map(length int) (unsafe.Pointer, error) {
	for off := 0; off+length <= m.size; off += fakePageSize {
		addr := unsafe.Add(m.base, off)
		if !m.overlaps(uintptr(addr), length) {
			m.claim(addr, length)
			return addr, nil
		}
	}
	return nil, errArenaFull
}

func (m *arenaMapper) MapAt(addr unsafe.Pointer, length int) (unsafe.Pointer, error) {
	a := uintptr(addr)
	if !m.contains(a, length) {
		return nil, fmt.Errorf("arena: map at %#x: out of range", a)
	}
	if m.overlaps(a, length) {
		return nil, fmt.Errorf("arena: map at %#x: %w", a, pagevec.ErrAddressOccupied)
	}
	m.claim(addr, length)
	return addr, nil
}

func (m *arenaMapper) Unmap(addr unsafe.Pointer, length int) error {
	lo := uintptr(addr)
	hi := lo + uintptr(length)
	for a, l := range m.live {
		switch {
		case a >= lo && a+uintptr(l) <= hi:
			delete(m.live, a)
		case a < hi && lo < a+uintptr(l):
			return fmt.Errorf("arena: unmap %#x+%d splits allocation at %#x", lo, length, a)
		}
	}
	return nil
}

// allocations reports how many live regions the arena tracks.
func (m *arenaMapper) allocations() int { return len(m.live) }
