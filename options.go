package praq

import (
	"fmt"

	"github.com/dargueta/praq/codecs/vlc"
	"github.com/nuclio/logger"
)

// Options configures [Compress] and [Decompress]. A nil *Options is the same
// as [DefaultOptions].
type Options struct {
	// Logger receives progress records. If nil, nothing is logged.
	Logger logger.Logger
	// ReadChunkSize is how many bytes the VLC encoder reads from its input at a
	// time. 0 means the default of 1 MiB. PPP always reads one block at a time.
	ReadChunkSize int
}

// DefaultOptions returns options for default behavior: no logging and 1 MiB
// reads.
func DefaultOptions() *Options {
	return &Options{ReadChunkSize: vlc.DefaultChunkSize}
}

func (opts *Options) validate() error {
	if opts.ReadChunkSize < 0 {
		return ErrInvalidArgument.WithMessage(
			fmt.Sprintf("read chunk size must be non-negative, got %d", opts.ReadChunkSize))
	}
	return nil
}
