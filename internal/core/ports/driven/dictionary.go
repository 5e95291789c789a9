package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/milon/internal/core/domain"
)

// DictionaryStore is a loaded dictionary. It is read-only after
// construction and safe for concurrent use without locking.
type DictionaryStore interface {
	// Lookup returns the entry registered for stem.
	Lookup(stem string) (domain.DictionaryEntry, bool)

	// Rules returns every affix rule, prefixes and suffixes alike.
	// Callers must not modify the returned slice.
	Rules() []domain.AffixRule

	// Alphabet returns the distinct runes occurring in stems, ascending.
	Alphabet() []rune

	// All yields entries in ascending stem order.
	All() iter.Seq[domain.DictionaryEntry]

	// Len returns the number of entries.
	Len() int

	// Info describes the loaded instance.
	Info() domain.DictionaryInfo

	// Close releases resources.
	Close() error
}

// DictionaryLoader opens dictionary files.
type DictionaryLoader interface {
	// Load reads the dictionary at path.
	// Every failure is a *domain.LoadError.
	Load(ctx context.Context, path string) (DictionaryStore, error)
}

// DictionaryWriter encodes a store in a single format.
type DictionaryWriter interface {
	// Format returns the format this writer produces.
	Format() domain.DictionaryFormat

	// Write encodes store to path, replacing any existing file.
	Write(ctx context.Context, store DictionaryStore, path string) error
}

// DictionaryCodec loads any supported format and hands out writers.
type DictionaryCodec interface {
	DictionaryLoader

	// Writer returns the writer for format.
	Writer(format domain.DictionaryFormat) (DictionaryWriter, error)
}
