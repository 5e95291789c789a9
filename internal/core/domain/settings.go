package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// DictionaryFormat identifies an on-disk dictionary encoding.
type DictionaryFormat string

// Available dictionary formats.
const (
	// FormatBinary is the versioned, prefix-compressed binary table.
	FormatBinary DictionaryFormat = "binary"

	// FormatText is the line-oriented source format.
	FormatText DictionaryFormat = "text"

	// FormatSQLite stores rules and entries in an SQLite database.
	FormatSQLite DictionaryFormat = "sqlite"
)

// AllDictionaryFormats returns every supported format.
func AllDictionaryFormats() []DictionaryFormat {
	return []DictionaryFormat{FormatBinary, FormatText, FormatSQLite}
}

// FormatForExtension maps a file extension such as ".dict" to its format.
func FormatForExtension(ext string) (DictionaryFormat, bool) {
	ext = strings.ToLower(ext)
	for _, f := range AllDictionaryFormats() {
		if f.Extension() == ext {
			return f, true
		}
	}
	return "", false
}

// IsValid returns true if the format is recognised.
func (f DictionaryFormat) IsValid() bool {
	switch f {
	case FormatBinary, FormatText, FormatSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f DictionaryFormat) String() string {
	return string(f)
}

// Extension returns the conventional file extension, including the dot.
func (f DictionaryFormat) Extension() string {
	switch f {
	case FormatBinary:
		return ".dict"
	case FormatText:
		return ".txt"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}

// Description returns a human-readable description of the format.
func (f DictionaryFormat) Description() string {
	switch f {
	case FormatBinary:
		return "Binary (prefix-compressed table)"
	case FormatText:
		return "Text (editable source)"
	case FormatSQLite:
		return "SQLite (database tables)"
	default:
		return unknownDescription
	}
}

// DictionarySettings locates the dictionary to open.
type DictionarySettings struct {
	// Path is the dictionary file opened when none is given explicitly.
	Path string
}

// SuggestSettings bounds the suggestion search.
type SuggestSettings struct {
	// MaxResults is the default number of candidates returned.
	MaxResults int

	// MaxDistance is the edit-distance bound of the enumeration strategy.
	MaxDistance int

	// MaxConfusions is how many letters the confusion-set strategy may swap.
	MaxConfusions int
}

// Validate checks that the bounds are usable.
func (s SuggestSettings) Validate() error {
	if s.MaxResults < 1 || s.MaxResults > 100 {
		return fmt.Errorf("%w: max_results must be between 1 and 100", ErrInvalidInput)
	}
	if s.MaxDistance < 0 || s.MaxDistance > 2 {
		return fmt.Errorf("%w: max_distance must be between 0 and 2", ErrInvalidInput)
	}
	if s.MaxConfusions < 0 || s.MaxConfusions > 4 {
		return fmt.Errorf("%w: max_confusions must be between 0 and 4", ErrInvalidInput)
	}
	return nil
}

// AnalyzerSettings tunes the morphological analyzer.
type AnalyzerSettings struct {
	// RestoreFinals looks up the final letter form (ם ן ץ ף ך) of a stem
	// whose suffix was stripped.
	RestoreFinals bool
}

// Settings is the complete engine configuration.
type Settings struct {
	Dictionary DictionarySettings
	Suggest    SuggestSettings
	Analyzer   AnalyzerSettings
}

// DefaultSettings returns the configuration used when nothing is set.
func DefaultSettings() Settings {
	return Settings{
		Suggest: SuggestSettings{
			MaxResults:    10,
			MaxDistance:   2,
			MaxConfusions: 2,
		},
		Analyzer: AnalyzerSettings{
			RestoreFinals: true,
		},
	}
}

// Validate checks every section.
func (s Settings) Validate() error {
	return s.Suggest.Validate()
}
