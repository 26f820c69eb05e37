package praq_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/praq"
	"github.com/dargueta/praq/codecs/ppp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader__Layout(t *testing.T) {
	header := praq.Header{Mode: praq.ModePPP, BlockCount: 0x0102, LastBlockSize: 0x0304}
	data, err := header.MarshalBinary()
	require.NoError(t, err)

	expected := []byte{
		'P', 'R', 'A', 'Q', '6', 0, 0, 0,
		0x02, 0x01, 0, 0, 0, 0, 0, 0,
		0x04, 0x03, 0, 0,
		1, 0, 0, 0,
	}
	assert.Equal(t, expected, data)

	decoded, err := praq.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, header, decoded)
}

type invalidHeaderTestCase struct {
	Name   string
	Header praq.Header
}

var invalidHeaderTestCases = []invalidHeaderTestCase{
	{"zero mode", praq.Header{}},
	{"unknown mode", praq.Header{Mode: 3}},
	{"oversized last block", praq.Header{Mode: praq.ModePPP, LastBlockSize: ppp.BlockSize}},
	{"VLC with counts", praq.Header{Mode: praq.ModeVLC, BlockCount: 1}},
}

func TestHeader__Invalid(t *testing.T) {
	for _, test := range invalidHeaderTestCases {
		t.Run(
			test.Name,
			func(t *testing.T) {
				assert.ErrorIs(t, test.Header.Validate(), praq.ErrInvalidFormat)

				// MarshalBinary doesn't validate, so we can use it to produce
				// bad headers for the reader to reject.
				data, err := test.Header.MarshalBinary()
				require.NoError(t, err)
				_, err = praq.ReadHeader(bytes.NewReader(data))
				assert.ErrorIs(t, err, praq.ErrInvalidFormat)
			},
		)
	}
}

func TestHeader__UnmarshalWrongSize(t *testing.T) {
	header := praq.Header{}
	err := header.UnmarshalBinary(make([]byte, praq.HeaderSize-1))
	assert.ErrorIs(t, err, praq.ErrInvalidFormat)
}

func TestParseMode(t *testing.T) {
	valid := map[string]praq.Mode{
		"ppp": praq.ModePPP,
		"PPP": praq.ModePPP,
		"1":   praq.ModePPP,
		"vlc": praq.ModeVLC,
		" 2 ": praq.ModeVLC,
	}
	for name, expected := range valid {
		mode, err := praq.ParseMode(name)
		require.NoErrorf(t, err, "failed to parse %q", name)
		assert.Equal(t, expected, mode)
	}

	_, err := praq.ParseMode("zip")
	assert.ErrorIs(t, err, praq.ErrInvalidArgument)
	assert.Equal(t, "mode(9)", praq.Mode(9).String())
}
