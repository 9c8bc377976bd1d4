//go:build unix

package snapshot_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagevec"
	"github.com/hupe1980/pagevec/snapshot"
)

type point struct {
	X, Y float64
}

func newFilledArray(t *testing.T, n int) *pagevec.Array[point] {
	t.Helper()

	arr, err := pagevec.New[point](n)
	require.NoError(t, err)
	t.Cleanup(func() { _ = arr.Close() })

	s := arr.Slice()
	for i := 0; i < n; i++ {
		s[i] = point{X: float64(i), Y: float64(i) * 0.5}
	}
	arr.SetLen(n)
	return arr
}

func TestRoundtrip(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		compression snapshot.CompressionType
		blockSize   int
	}{
		{"empty none", 0, snapshot.CompressionNone, 0},
		{"small zstd", 10, snapshot.CompressionZSTD, 0},
		{"small lz4", 10, snapshot.CompressionLZ4, 0},
		{"multi-block none", 10_000, snapshot.CompressionNone, 4096},
		{"multi-block lz4", 10_000, snapshot.CompressionLZ4, 4096},
		{"multi-block zstd", 10_000, snapshot.CompressionZSTD, 4096},
		{"uneven final block", 1000, snapshot.CompressionZSTD, 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := newFilledArray(t, tt.count)

			var buf bytes.Buffer
			err := snapshot.Write(&buf, arr, func(o *snapshot.Options) {
				o.Compression = tt.compression
				if tt.blockSize > 0 {
					o.BlockSize = tt.blockSize
				}
			})
			require.NoError(t, err)

			restored, err := snapshot.Read[point](&buf)
			require.NoError(t, err)
			defer restored.Close()

			require.Equal(t, tt.count, restored.Len())
			assert.GreaterOrEqual(t, restored.Cap(), tt.count)

			want := arr.Slice()[:tt.count]
			got := restored.Slice()[:tt.count]
			assert.Equal(t, want, got)
		})
	}
}

func TestWrite_OnlyInitializedPrefix(t *testing.T) {
	arr := newFilledArray(t, 100)
	arr.SetLen(7)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, arr))

	restored, err := snapshot.Read[point](&buf)
	require.NoError(t, err)
	defer restored.Close()

	assert.Equal(t, 7, restored.Len())
	assert.Equal(t, arr.Slice()[:7], restored.Slice()[:7])
}

func TestWrite_ClosedArray(t *testing.T) {
	arr, err := pagevec.New[point](1)
	require.NoError(t, err)
	require.NoError(t, arr.Close())

	var buf bytes.Buffer
	assert.ErrorIs(t, snapshot.Write(&buf, arr), pagevec.ErrClosed)
}

func TestWrite_UnknownCompression(t *testing.T) {
	arr := newFilledArray(t, 1)

	var buf bytes.Buffer
	err := snapshot.Write(&buf, arr, func(o *snapshot.Options) {
		o.Compression = snapshot.CompressionType(99)
	})
	assert.Error(t, err)
}

func TestRead_BadMagic(t *testing.T) {
	_, err := snapshot.Read[point](bytes.NewReader(make([]byte, 64)))
	assert.ErrorIs(t, err, snapshot.ErrBadMagic)
}

func TestRead_ShortHeader(t *testing.T) {
	_, err := snapshot.Read[point](bytes.NewReader([]byte{'P', 'V'}))
	assert.Error(t, err)
}

func TestRead_UnsupportedVersion(t *testing.T) {
	arr := newFilledArray(t, 1)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, arr))

	data := buf.Bytes()
	data[4] = 99 // version byte

	_, err := snapshot.Read[point](bytes.NewReader(data))
	assert.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)
}

func TestRead_ElementSizeMismatch(t *testing.T) {
	arr := newFilledArray(t, 4)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, arr))

	_, err := snapshot.Read[uint32](&buf)
	assert.ErrorIs(t, err, snapshot.ErrElementSizeMismatch)
}

func TestRead_Truncated(t *testing.T) {
	arr := newFilledArray(t, 1000)

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, arr))

	truncated := buf.Bytes()[:buf.Len()/2]
	_, err := snapshot.Read[point](bytes.NewReader(truncated))
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
