package bitio

import (
	"errors"
	"fmt"
	"io"
)

// bufferSize is the size of the buffers kanzi keeps between the bit streams
// and the underlying reader or writer.
const bufferSize = 65536

// sourceStream sits between a kanzi input stream and the caller's reader. Once
// the reader fails or runs dry, the error is remembered and the bit stream is
// fed zeros, so it never panics on EOF. [Reader] then compares the number of
// bits consumed against the number of real bytes delivered to decide whether
// the caller read past the end.
type sourceStream struct {
	in        io.Reader
	bytesRead int64
	err       error
}

func (s *sourceStream) Read(buffer []byte) (int, error) {
	if s.err == nil {
		n, err := s.in.Read(buffer)
		s.bytesRead += int64(n)
		if err == nil {
			return n, nil
		}
		s.err = err
		if n > 0 {
			return n, nil
		}
	}

	for i := range buffer {
		buffer[i] = 0
	}
	return len(buffer), nil
}

func (s *sourceStream) Close() error {
	return nil
}

// check returns an error if `bitsConsumed` goes past the real input.
func (s *sourceStream) check(bitsConsumed uint64) error {
	if bitsConsumed <= uint64(s.bytesRead)*8 {
		return nil
	}
	if s.err == nil || errors.Is(s.err, io.EOF) || errors.Is(s.err, io.ErrUnexpectedEOF) {
		return fmt.Errorf(
			"%w: input ended after %d bytes", io.ErrUnexpectedEOF, s.bytesRead)
	}
	return fmt.Errorf("error reading input: %w", s.err)
}

// sinkStream sits between a kanzi output stream and the caller's writer. Write
// errors are remembered instead of being passed to kanzi, and [Writer] reports
// them after each operation.
type sinkStream struct {
	out          io.Writer
	bytesWritten int64
	err          error
}

func (s *sinkStream) Write(buffer []byte) (int, error) {
	if s.err == nil {
		n, err := s.out.Write(buffer)
		s.bytesWritten += int64(n)
		if err == nil && n < len(buffer) {
			err = io.ErrShortWrite
		}
		s.err = err
	}
	return len(buffer), nil
}

func (s *sinkStream) Close() error {
	return nil
}

func (s *sinkStream) check() error {
	if s.err != nil {
		return fmt.Errorf("failed to write to output: %w", s.err)
	}
	return nil
}

// recoverStreamPanic converts a panic raised by a kanzi bit stream into an
// error stored in `err`.
func recoverStreamPanic(err *error, action string) {
	recovered := recover()
	if recovered == nil {
		return
	}
	if cause, ok := recovered.(error); ok {
		*err = fmt.Errorf("bit stream failed while %s: %w", action, cause)
	} else {
		*err = fmt.Errorf("bit stream failed while %s: %v", action, recovered)
	}
}
