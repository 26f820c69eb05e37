package praq

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dargueta/praq/codecs/ppp"
	"github.com/noxer/bytewriter"
)

// Mode selects the back end used to encode the body of a stream.
type Mode uint32

const (
	// ModePPP codes each block as a hit/miss bitmap followed by the missed
	// bytes.
	ModePPP Mode = 1
	// ModeVLC codes runs of hits and move-to-front ranks of misses with
	// Golomb codes.
	ModeVLC Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModePPP:
		return "ppp"
	case ModeVLC:
		return "vlc"
	default:
		return fmt.Sprintf("mode(%d)", uint32(m))
	}
}

// Valid returns true if `m` is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModePPP || m == ModeVLC
}

// ParseMode converts a mode name ("ppp" or "vlc", case-insensitive) or its
// numeric selector ("1" or "2") into a [Mode].
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ppp", "1":
		return ModePPP, nil
	case "vlc", "2":
		return ModeVLC, nil
	}
	return 0, ErrInvalidArgument.WithMessage(
		fmt.Sprintf("unrecognized mode %s; expected ppp or vlc", strconv.Quote(name)))
}

// HeaderSize is the size of a serialized [Header], in bytes.
const HeaderSize = 24

// Magic identifies a praq stream. It's NUL-padded to eight bytes.
var Magic = [8]byte{'P', 'R', 'A', 'Q', '6', 0, 0, 0}

// rawHeader is the on-disk layout of the header. All integers are little-endian.
type rawHeader struct {
	Magic         [8]byte
	BlockCount    uint64
	LastBlockSize uint32
	Mode          uint32
}

// Header is the fixed-size record at the start of every compressed stream.
type Header struct {
	Mode Mode
	// BlockCount is the number of full blocks in a PPP stream. It's always 0
	// for VLC.
	BlockCount uint64
	// LastBlockSize is the size of the trailing partial block in a PPP stream,
	// or 0 if there isn't one. It's always 0 for VLC.
	LastBlockSize uint32
}

// BlockCounts converts the header's PPP fields into the form the PPP decoder
// expects.
func (h Header) BlockCounts() ppp.BlockCounts {
	return ppp.BlockCounts{
		FullBlocks:    h.BlockCount,
		LastBlockSize: int(h.LastBlockSize),
	}
}

// Validate checks the header for internal consistency.
func (h Header) Validate() error {
	if !h.Mode.Valid() {
		return ErrInvalidFormat.WithMessage(
			fmt.Sprintf("unrecognized mode selector %d", uint32(h.Mode)))
	}

	if h.Mode == ModePPP {
		err := h.BlockCounts().Validate()
		if err != nil {
			return ErrInvalidFormat.Wrap(err)
		}
	} else if h.BlockCount != 0 || h.LastBlockSize != 0 {
		return ErrInvalidFormat.WithMessage(
			fmt.Sprintf(
				"%s stream has nonzero block counts (%d, %d)",
				h.Mode,
				h.BlockCount,
				h.LastBlockSize,
			),
		)
	}
	return nil
}

// MarshalBinary implements [encoding.BinaryMarshaler]. The result is always
// exactly [HeaderSize] bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	raw := rawHeader{
		Magic:         Magic,
		BlockCount:    h.BlockCount,
		LastBlockSize: h.LastBlockSize,
		Mode:          uint32(h.Mode),
	}

	output := make([]byte, HeaderSize)
	writer := bytewriter.New(output)
	err := binary.Write(writer, binary.LittleEndian, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize header: %w", err)
	}
	return output, nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler]. It checks the magic
// number and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) != HeaderSize {
		return ErrInvalidFormat.WithMessage(
			fmt.Sprintf("header must be %d bytes, got %d", HeaderSize, len(data)))
	}

	raw := rawHeader{}
	err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &raw)
	if err != nil {
		return ErrInvalidFormat.Wrap(err)
	}

	if raw.Magic != Magic {
		return ErrInvalidFormat.WithMessage(
			fmt.Sprintf("bad magic number %q", bytes.TrimRight(raw.Magic[:], "\x00")))
	}

	decoded := Header{
		Mode:          Mode(raw.Mode),
		BlockCount:    raw.BlockCount,
		LastBlockSize: raw.LastBlockSize,
	}
	err = decoded.Validate()
	if err != nil {
		return err
	}

	*h = decoded
	return nil
}

// ReadHeader reads and validates a header from the beginning of `input`.
func ReadHeader(input io.Reader) (Header, error) {
	buffer := make([]byte, HeaderSize)
	_, err := io.ReadFull(input, buffer)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, ErrTruncatedStream.WithMessage("missing header").
				Wrap(io.ErrUnexpectedEOF)
		}
		return Header{}, ErrIOFailed.Wrap(err)
	}

	header := Header{}
	err = header.UnmarshalBinary(buffer)
	return header, err
}

// WriteHeader serializes `header` to `output`.
func WriteHeader(output io.Writer, header Header) error {
	data, err := header.MarshalBinary()
	if err != nil {
		return ErrIOFailed.Wrap(err)
	}

	_, err = output.Write(data)
	if err != nil {
		return ErrIOFailed.Wrap(err)
	}
	return nil
}
