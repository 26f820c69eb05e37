package praq

import (
	"io"

	"github.com/gocarina/gocsv"
)

// Direction tells whether a [Stats] record describes compression or
// decompression.
type Direction string

const (
	DirectionCompress   = Direction("compress")
	DirectionDecompress = Direction("decompress")
)

// Stats summarizes a single call to [Compress] or [Decompress]. Byte counts
// include the header.
type Stats struct {
	Direction     Direction `csv:"direction"`
	Mode          Mode      `csv:"mode"`
	BytesRead     int64     `csv:"bytes_read"`
	BytesWritten  int64     `csv:"bytes_written"`
	BlockCount    uint64    `csv:"block_count"`
	LastBlockSize uint32    `csv:"last_block_size"`
}

// Ratio gives the space saved by compression as a percentage of the input
// size. Incompressible input gives a negative ratio. If nothing was read this
// returns 0.
func (s Stats) Ratio() float64 {
	if s.BytesRead == 0 {
		return 0
	}
	return (float64(s.BytesRead) - float64(s.BytesWritten)) / float64(s.BytesRead) * 100
}

// MarshalCSV lets gocsv write modes by name.
func (m Mode) MarshalCSV() (string, error) {
	return m.String(), nil
}

// UnmarshalCSV lets gocsv read modes written by [Mode.MarshalCSV].
func (m *Mode) UnmarshalCSV(value string) error {
	parsed, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// WriteStatsCSV writes the given records as CSV, with a header row, to `output`.
func WriteStatsCSV(output io.Writer, stats ...Stats) error {
	rows := make([]*Stats, len(stats))
	for i := range stats {
		rows[i] = &stats[i]
	}

	err := gocsv.Marshal(&rows, output)
	if err != nil {
		return ErrIOFailed.Wrap(err)
	}
	return nil
}
