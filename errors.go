package lexkey

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated means fewer bytes remained than a fixed-width field requires.
	ErrTruncated = errors.New("truncated data")
	// ErrUnterminated means a string or blob field ended without its terminator.
	ErrUnterminated = errors.New("unterminated field")
	// ErrInvalidUTF8 means a decoded string field is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrTrailingData means bytes remained after a complete value was decoded.
	ErrTrailingData = errors.New("trailing data")
)

// DataError describes a decoding failure, carrying the buffer being decoded
// and the offset the failure occurred at. It wraps one of the Err sentinels
// above, so errors.Is(err, ErrTruncated) etc. works.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: at %d in (%d) %x", e.Msg, e.Err, e.Off, n, e.Data)
		} else {
			return fmt.Sprintf("%s: at %d in (%d) %x", e.Msg, e.Off, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: at %d in (%d) %x...%x", e.Msg, e.Err, e.Off, n, p, s)
		} else {
			return fmt.Sprintf("%s: at %d in (%d) %x...%x", e.Msg, e.Off, n, p, s)
		}
	}
}
