package testing

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/praq"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadCompressedStream takes a compressed stream and returns a stream to access
// the uncompressed data.
//
//   - Writes to the stream do not affect `compressedBytes`.
//   - While the stream can be written to, its size is fixed to `expectedSize`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadCompressedStream(
	t *testing.T, compressedBytes []byte, expectedSize int,
) io.ReadWriteSeeker {
	require.GreaterOrEqual(
		t, len(compressedBytes), praq.HeaderSize, "compressed stream has no header")

	data, err := praq.DecompressBytes(compressedBytes, nil)
	require.NoError(t, err)

	require.Equal(t, expectedSize, len(data), "uncompressed stream is wrong size")
	return bytesextra.NewReadWriteSeeker(data)
}

// CreateOutputStream returns a fixed-size seekable sink large enough to hold
// the compressed form of `inputSize` bytes in any mode.
func CreateOutputStream(inputSize int) io.ReadWriteSeeker {
	size := praq.MaxCompressedSize(inputSize, praq.ModePPP)
	if vlcSize := praq.MaxCompressedSize(inputSize, praq.ModeVLC); vlcSize > size {
		size = vlcSize
	}
	return bytesextra.NewReadWriteSeeker(make([]byte, size))
}

// RoundTrip compresses `data` with the given mode, checks that decompressing
// the result gives back `data`, and returns the compressed bytes.
func RoundTrip(t *testing.T, data []byte, mode praq.Mode) []byte {
	compressed, err := praq.CompressBytes(data, mode, nil)
	require.NoErrorf(t, err, "error while compressing with %s", mode)

	decompressed, err := praq.DecompressBytes(compressed, nil)
	require.NoErrorf(t, err, "error while decompressing with %s", mode)
	require.Equal(t, len(data), len(decompressed), "decompressed data length is wrong")
	require.True(t, bytes.Equal(data, decompressed), "decompressed data is wrong")
	return compressed
}
