package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent engine failures.
// These are distinct from infrastructure errors.
var (
	// ErrLoad indicates a dictionary could not be opened.
	// Every *LoadError matches it with errors.Is.
	ErrLoad = errors.New("dictionary load failed")

	// ErrNotReady indicates a query was issued before a dictionary was opened.
	ErrNotReady = errors.New("dictionary not ready")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Dictionary Format Errors.

	// ErrUnsupportedFormat indicates the file is not a recognised dictionary format.
	ErrUnsupportedFormat = errors.New("unsupported dictionary format")

	// ErrUnsupportedVersion indicates a known format with an unknown version.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrTruncated indicates the dictionary ended before its declared content.
	ErrTruncated = errors.New("dictionary truncated")

	// ErrChecksum indicates the stored checksum does not match the content.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrUnsorted indicates stems are out of order or duplicated.
	ErrUnsorted = errors.New("stems not strictly sorted")

	// ErrMalformed indicates a structurally invalid record.
	ErrMalformed = errors.New("malformed dictionary record")
)

// LoadError reports why a dictionary at Path could not be loaded.
// It unwraps to both ErrLoad and the underlying cause.
type LoadError struct {
	Path string
	Err  error
}

// NewLoadError wraps err as a LoadError for path.
// An err that already is a *LoadError is returned unchanged.
func NewLoadError(path string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Path: path, Err: err}
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load dictionary %q: %v", e.Path, ErrLoad)
	}
	return fmt.Sprintf("load dictionary %q: %v", e.Path, e.Err)
}

// Unwrap exposes ErrLoad and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}
	return []error{ErrLoad, e.Err}
}
