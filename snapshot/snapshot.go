package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pagevec"
)

var (
	// ErrBadMagic is returned when the stream does not start with a snapshot header.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for snapshot versions this package cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrElementSizeMismatch is returned when the stored element size does not
	// match sizeof(T) of the requested element type.
	ErrElementSizeMismatch = errors.New("snapshot: element size mismatch")
	// ErrCorrupt is returned for structurally invalid snapshot data.
	ErrCorrupt = errors.New("snapshot: corrupt data")
)

var magic = [4]byte{'P', 'V', 'E', 'C'}

const formatVersion = 1

// fileHeader is the fixed-size snapshot preamble, little-endian on the wire.
type fileHeader struct {
	Magic       [4]byte
	Version     uint8
	Compression uint8
	_           uint16 // reserved
	ElemSize    uint32
	Count       uint64
	BlockSize   uint32
}

// Options configures Write.
type Options struct {
	// Compression selects the per-block algorithm. Defaults to ZSTD.
	Compression CompressionType
	// BlockSize is the uncompressed block size in bytes. Defaults to 256 KiB.
	BlockSize int
	// Concurrency bounds the number of blocks compressed in parallel.
	// Defaults to GOMAXPROCS.
	Concurrency int
}

func defaultOptions() Options {
	return Options{
		Compression: CompressionZSTD,
		BlockSize:   256 * 1024,
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// Write serializes the first arr.Len() elements of arr to w.
//
// Only the initialized prefix is written; capacity and base address are not
// part of a snapshot. arr is read but never modified.
func Write[T any](w io.Writer, arr *pagevec.Array[T], optFns ...func(o *Options)) error {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if !opts.Compression.valid() {
		return fmt.Errorf("snapshot: unknown compression type %d", opts.Compression)
	}
	if opts.BlockSize <= 0 {
		opts.BlockSize = 256 * 1024
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	var zero T
	elem := int(unsafe.Sizeof(zero))
	raw := arr.Bytes()
	if raw == nil {
		return pagevec.ErrClosed
	}
	payload := raw[:arr.Len()*elem]

	header := fileHeader{
		Magic:       magic,
		Version:     formatVersion,
		Compression: uint8(opts.Compression),
		ElemSize:    uint32(elem),
		Count:       uint64(arr.Len()),
		BlockSize:   uint32(opts.BlockSize),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}

	numBlocks := (len(payload) + opts.BlockSize - 1) / opts.BlockSize
	encoded := make([][]byte, numBlocks)

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)
	for i := 0; i < numBlocks; i++ {
		i := i
		g.Go(func() error {
			start := i * opts.BlockSize
			end := min(start+opts.BlockSize, len(payload))
			block, err := compressBlock(payload[start:end], opts.Compression)
			if err != nil {
				return fmt.Errorf("snapshot: compress block %d: %w", i, err)
			}
			encoded[i] = block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, block := range encoded {
		if _, err := w.Write(block); err != nil {
			return fmt.Errorf("snapshot: write block %d: %w", i, err)
		}
	}
	return nil
}

// Read restores a snapshot written by Write into a freshly mapped array with
// capacity for at least the stored element count. The returned array has its
// length set to that count; closing it is the caller's responsibility.
//
// opts are forwarded to pagevec.New, so tests can inject a Mapper and callers
// can request a base address.
func Read[T any](r io.Reader, opts ...pagevec.Option) (*pagevec.Array[T], error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if header.Magic != magic {
		return nil, ErrBadMagic
	}
	if header.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	if !CompressionType(header.Compression).valid() {
		return nil, fmt.Errorf("%w: unknown compression type %d", ErrCorrupt, header.Compression)
	}

	var zero T
	elem := int(unsafe.Sizeof(zero))
	if header.ElemSize != uint32(elem) {
		return nil, fmt.Errorf("%w: stored %d, element type has %d",
			ErrElementSizeMismatch, header.ElemSize, elem)
	}
	if header.Count > uint64(math.MaxInt/elem) {
		return nil, fmt.Errorf("%w: element count %d too large", ErrCorrupt, header.Count)
	}
	count := int(header.Count)

	arr, err := pagevec.New[T](count, opts...)
	if err != nil {
		return nil, err
	}

	dst := arr.Bytes()[:count*elem]
	if err := readBlocks(r, dst, CompressionType(header.Compression)); err != nil {
		_ = arr.Close()
		return nil, err
	}

	arr.SetLen(count)
	return arr, nil
}

func readBlocks(r io.Reader, dst []byte, compression CompressionType) error {
	off := 0
	for off < len(dst) {
		var blockHeader [blockHeaderSize]byte
		if _, err := io.ReadFull(r, blockHeader[:]); err != nil {
			return fmt.Errorf("snapshot: read block header: %w", err)
		}

		uncompressedSize := binary.LittleEndian.Uint32(blockHeader[0:])
		compressedSize := binary.LittleEndian.Uint32(blockHeader[4:])
		stored := compressedSize
		if stored == 0 {
			stored = uncompressedSize
		}

		block := make([]byte, blockHeaderSize+int(stored))
		copy(block, blockHeader[:])
		if _, err := io.ReadFull(r, block[blockHeaderSize:]); err != nil {
			return fmt.Errorf("snapshot: read block payload: %w", err)
		}

		decoded, err := decompressBlock(block, compression)
		if err != nil {
			return err
		}
		if off+len(decoded) > len(dst) {
			return fmt.Errorf("%w: block overruns element data", ErrCorrupt)
		}
		copy(dst[off:], decoded)
		off += len(decoded)
	}
	return nil
}
