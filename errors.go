package praq

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the type of every error returned by this package's public
// functions. Use [errors.Is] with one of the Err* values to find the category.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type basePraqError string

const rootError = basePraqError("")

// ErrIOFailed indicates the input couldn't be read or the output couldn't be
// written.
var ErrIOFailed = rootError.WithMessage("Input/output error")

// ErrInvalidFormat indicates the compressed data is malformed: a bad header,
// an unknown mode, or a code that decodes to something impossible.
var ErrInvalidFormat = rootError.WithMessage("Invalid compressed data")

// ErrTruncatedStream indicates the compressed data ended before everything its
// header promises could be decoded. It always wraps [io.ErrUnexpectedEOF].
var ErrTruncatedStream = rootError.WithMessage("Compressed data is truncated")

// ErrInvalidArgument indicates a caller passed a bad mode or bad options.
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e basePraqError) Error() string {
	return string(e)
}

func (e basePraqError) WithMessage(message string) CodecError {
	return customPraqError{
		message:       message,
		originalError: e,
	}
}

func (e basePraqError) Wrap(err error) CodecError {
	return customPraqError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customPraqError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customPraqError) Error() string {
	return e.message
}

func (e customPraqError) WithMessage(message string) CodecError {
	return customPraqError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customPraqError) Wrap(err error) CodecError {
	return customPraqError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customPraqError) Unwrap() error {
	return e.originalError
}
