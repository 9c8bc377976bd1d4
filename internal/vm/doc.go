// Package vm wraps the platform's anonymous virtual-memory mapping primitives.
//
// # Overview
//
// The package exposes three operations: map a region at an OS-chosen address,
// map a region at an exact caller-chosen address with fail-if-occupied
// semantics, and unmap a region. All mappings are anonymous, private and
// read-write, and the kernel guarantees they are zero-initialized.
//
// # Fixed mappings
//
// MapAt never silently relocates. If the requested range is already occupied
// by another mapping the call fails with an error matching ErrAddressOccupied;
// callers use this to distinguish "the neighbouring address space is taken"
// from genuine resource failures.
//
// On Linux this uses MAP_FIXED_NOREPLACE. On other Unix systems the address
// is passed as a hint without MAP_FIXED and the placement is verified
// afterwards; a mapping that landed elsewhere is unmapped and reported as
// occupied. MAP_FIXED itself is never used: it would silently clobber
// whatever lives at the target range.
//
// # Platform support
//
// Unix only. On other platforms every operation fails with
// errors.ErrUnsupported: Windows offers neither partial unmap nor a
// fail-if-occupied placement compatible with this contract.
package vm
