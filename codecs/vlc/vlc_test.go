package vlc_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/dargueta/praq/codecs/vlc"
	"github.com/dargueta/praq/utilities/bitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, data []byte, chunkSize int) []byte {
	buffer := bytes.Buffer{}
	writer := bitio.NewWriter(&buffer)

	n, err := vlc.NewEncoder(writer, chunkSize, nil).Encode(bytes.NewReader(data))
	require.NoError(t, err, "unexpected error while compressing")
	require.NoError(t, writer.Flush())
	assert.EqualValues(t, len(data), n, "wrong number of bytes read")
	return buffer.Bytes()
}

func decode(encoded []byte) ([]byte, error) {
	output := bytes.Buffer{}
	reader := bitio.NewReader(bytes.NewReader(encoded))
	n, err := vlc.NewDecoder(reader, nil).Decode(&output)
	if err == nil && int(n) != output.Len() {
		return nil, errors.New("returned size doesn't match output")
	}
	return output.Bytes(), err
}

func TestEncode__Empty(t *testing.T) {
	// 0 (no run), then 32 ones, a zero, and 000 for the sentinel.
	assert.Equal(t, []byte{0x7f, 0xff, 0xff, 0xff, 0x80}, encode(t, []byte{}, 0))
}

func TestEncode__SingleRun(t *testing.T) {
	for _, length := range []int{1, 2, 9, 1000} {
		encoded := encode(t, make([]byte, length), 0)

		// The table starts zeroed so every null byte is predicted. That should
		// give exactly one flush covering the whole input.
		reader := bitio.NewReader(bytes.NewReader(encoded))
		hasRun, err := reader.GetBit()
		require.NoError(t, err)
		require.True(t, hasRun)

		runLength, err := reader.GetGolomb(0)
		require.NoError(t, err)
		assert.EqualValues(t, length-1, runLength)

		sentinel, err := reader.GetGolomb(vlc.RankBits)
		require.NoError(t, err)
		assert.EqualValues(t, vlc.EndOfStream, sentinel)
	}
}

func TestEncode__RunThenMiss(t *testing.T) {
	encoded := encode(t, []byte{0, 0, 0, 5}, 0)
	reader := bitio.NewReader(bytes.NewReader(encoded))

	hasRun, err := reader.GetBit()
	require.NoError(t, err)
	assert.True(t, hasRun)

	runLength, err := reader.GetGolomb(0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, runLength)

	rank, err := reader.GetGolomb(vlc.RankBits)
	require.NoError(t, err)
	assert.EqualValues(t, 5, rank, "untouched symbol should still be at its initial rank")

	hasRun, err = reader.GetBit()
	require.NoError(t, err)
	assert.False(t, hasRun, "nothing follows the miss so there's no run to flush")

	sentinel, err := reader.GetGolomb(vlc.RankBits)
	require.NoError(t, err)
	assert.EqualValues(t, vlc.EndOfStream, sentinel)
}

func TestRoundTrip(t *testing.T) {
	random := make([]byte, 70000)
	_, err := rand.Read(random)
	require.NoError(t, err)

	text := bytes.Repeat([]byte("She sells sea shells by the sea shore; "), 3000)

	testData := []struct {
		Name string
		Data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0xaa}},
		{"single null", []byte{0}},
		{"four A", []byte("AAAA")},
		{"all symbols", allSymbols(4)},
		{"random", random},
		{"text", text},
		{"nulls", make([]byte, 32768)},
	}

	for _, test := range testData {
		t.Run(
			test.Name,
			func(t *testing.T) {
				// Use an odd chunk size so chunk boundaries land in the middle
				// of runs.
				for _, chunkSize := range []int{0, 7} {
					encoded := encode(t, test.Data, chunkSize)
					t.Logf("compressed %d -> %d", len(test.Data), len(encoded))

					decoded, err := decode(encoded)
					require.NoError(t, err, "unexpected error while decompressing")
					assert.Equal(t, len(test.Data), len(decoded))
					assert.True(t, bytes.Equal(test.Data, decoded), "decompressed data is wrong")
				}
			},
		)
	}
}

func allSymbols(repeats int) []byte {
	data := make([]byte, 0, 256*repeats)
	for r := 0; r < repeats; r++ {
		for i := 255; i >= 0; i-- {
			data = append(data, byte(i))
		}
	}
	return data
}

func TestEncode__Deterministic(t *testing.T) {
	data := bytes.Repeat([]byte("abracadabra"), 999)
	assert.Equal(t, encode(t, data, 0), encode(t, data, 0))
}

func TestDecode__StopsAtSentinel(t *testing.T) {
	encoded := encode(t, []byte("hello"), 0)
	withTrailer := append(append([]byte{}, encoded...), 0xde, 0xad, 0xbe, 0xef)

	decoded, err := decode(withTrailer)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)
}

func TestDecode__Truncated(t *testing.T) {
	encoded := encode(t, []byte("hello, world"), 0)

	for i := 0; i < len(encoded); i++ {
		_, err := decode(encoded[:i])
		assert.Truef(
			t, errors.Is(err, io.ErrUnexpectedEOF), "length %d: wrong error: %v", i, err)
	}
}

// TestDecode__TruncatedReportsDeliveredBytes checks that when decoding fails
// partway through a large stream, the byte count matches what the output
// actually received.
func TestDecode__TruncatedReportsDeliveredBytes(t *testing.T) {
	data := make([]byte, 100000)
	_, err := rand.Read(data)
	require.NoError(t, err)

	encoded := encode(t, data, 0)
	output := bytes.Buffer{}
	reader := bitio.NewReader(bytes.NewReader(encoded[:len(encoded)-10]))

	n, err := vlc.NewDecoder(reader, nil).Decode(&output)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.EqualValues(t, output.Len(), n, "reported size doesn't match output")
	assert.Greater(t, n, int64(0), "buffered output should have reached the sink")
	assert.Equal(t, data[:output.Len()], output.Bytes())
}

func TestDecode__RankOutOfRange(t *testing.T) {
	// Flag 0, then 32 ones, zero, and 0b111: 263.
	_, err := decode([]byte{0x7f, 0xff, 0xff, 0xff, 0xbc})
	assert.ErrorIs(t, err, vlc.ErrInvalidRank)

	// Flag 0, then a unary quotient that's too long for any valid rank.
	_, err = decode([]byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, vlc.ErrInvalidRank)
}
