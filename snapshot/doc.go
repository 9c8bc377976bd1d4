// Package snapshot serializes the initialized prefix of a pagevec.Array to a
// stream and restores it into a freshly mapped array.
//
// The core array deliberately has no file format of its own; this package is
// the caller layered on top of it.
//
// # Format
//
// A snapshot is a fixed 24-byte header (magic, version, compression tag,
// element size, element count, block size) followed by the raw element bytes
// in independent blocks. Each block carries its own
// [UncompressedSize uint32][CompressedSize uint32] header; a CompressedSize
// of zero marks a raw block, which is also what the writer emits when
// compression does not pay for itself.
//
// Blocks are compressed concurrently but written in order, so the output is
// byte-deterministic for a given input and options.
//
// # Usage
//
//	err := snapshot.Write(f, arr, func(o *snapshot.Options) {
//	    o.Compression = snapshot.CompressionLZ4
//	})
//
//	restored, err := snapshot.Read[Point](f)
//	defer restored.Close()
package snapshot
