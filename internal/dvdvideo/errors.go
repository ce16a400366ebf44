package dvdvideo

import (
	"errors"
	"fmt"
)

// ErrNotDVD is returned when a directory does not contain a VIDEO_TS
// structure at all (missing VIDEO_TS folder or VIDEO_TS.IFO).
var ErrNotDVD = errors.New("dvdvideo: not a DVD-Video directory")

// ErrIO wraps unexpected filesystem/read failures that are not format
// problems (permission denied, device gone, short read past EOF).
var ErrIO = errors.New("dvdvideo: io error")

// FormatError reports a structural defect in IFO/VOB data, with enough
// context to know which part of the disc it came from.
type FormatError struct {
	Context string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dvdvideo: format error (%s): %v", e.Context, e.Err)
	}
	return fmt.Sprintf("dvdvideo: format error (%s)", e.Context)
}

func (e *FormatError) Unwrap() error { return e.Err }

func newFormatError(context string, err error) *FormatError {
	return &FormatError{Context: context, Err: err}
}

// IsFormatError reports whether err is (or wraps) a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IOError wraps a lower-level I/O failure encountered while reading disc
// data, distinct from a structural FormatError.
type IOError struct {
	Context string
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("dvdvideo: io error (%s): %v", e.Context, e.Err)
}

func (e *IOError) Unwrap() error { return errors.Join(ErrIO, e.Err) }

func newIOError(context string, err error) *IOError {
	return &IOError{Context: context, Err: err}
}
