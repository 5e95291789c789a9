package domain

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrLoad", ErrLoad},
		{"ErrNotReady", ErrNotReady},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrUnsupportedVersion", ErrUnsupportedVersion},
		{"ErrTruncated", ErrTruncated},
		{"ErrChecksum", ErrChecksum},
		{"ErrUnsorted", ErrUnsorted},
		{"ErrMalformed", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrLoad,
		ErrNotReady,
		ErrInvalidInput,
		ErrUnsupportedFormat,
		ErrUnsupportedVersion,
		ErrTruncated,
		ErrChecksum,
		ErrUnsorted,
		ErrMalformed,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestLoadError_MatchesErrLoadAndCause tests that both sentinels are reachable
func TestLoadError_MatchesErrLoadAndCause(t *testing.T) {
	err := NewLoadError("missing.dict", os.ErrNotExist)

	assert.True(t, errors.Is(err, ErrLoad))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrNotReady))
	assert.Contains(t, err.Error(), "missing.dict")
}

// TestLoadError_As tests extracting the path with errors.As
func TestLoadError_As(t *testing.T) {
	err := fmt.Errorf("open: %w", NewLoadError("he.dict", ErrChecksum))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "he.dict", le.Path)
	assert.True(t, errors.Is(err, ErrChecksum))
}

// TestNewLoadError_DoesNotDoubleWrap tests that an existing LoadError is kept
func TestNewLoadError_DoesNotDoubleWrap(t *testing.T) {
	inner := NewLoadError("a.dict", ErrTruncated)
	outer := NewLoadError("b.dict", inner)

	assert.Same(t, inner, outer)
}

// TestLoadError_NilCause tests the message without a cause
func TestLoadError_NilCause(t *testing.T) {
	err := &LoadError{Path: "x.dict"}

	assert.True(t, errors.Is(err, ErrLoad))
	assert.Contains(t, err.Error(), "dictionary load failed")
}
