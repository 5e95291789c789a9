// Package dictionary dispatches dictionary loading and writing to the
// format packages by sniffing file headers.
package dictionary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/packed"
	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/plain"
	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/sqlite"
	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.DictionaryCodec = (*Registry)(nil)

// sniffLen covers the longest magic.
const sniffLen = 16

type format struct {
	name   domain.DictionaryFormat
	magic  []byte
	loader driven.DictionaryLoader
	writer driven.DictionaryWriter
}

// Registry knows every built-in dictionary format.
type Registry struct {
	formats []format
}

// NewRegistry creates a registry with the binary, text and SQLite formats.
func NewRegistry() *Registry {
	r := &Registry{}
	r.registerBuiltinFormats()
	return r
}

func (r *Registry) registerBuiltinFormats() {
	r.formats = append(r.formats,
		format{
			name:   domain.FormatBinary,
			magic:  []byte(packed.Magic),
			loader: packed.NewLoader(),
			writer: packed.NewWriter(),
		},
		format{
			name:   domain.FormatText,
			magic:  []byte(plain.Magic),
			loader: plain.NewLoader(),
			writer: plain.NewWriter(),
		},
		format{
			name:   domain.FormatSQLite,
			magic:  []byte(sqlite.Magic),
			loader: sqlite.NewLoader(),
			writer: sqlite.NewWriter(),
		},
	)
}

// Formats lists the registered format names.
func (r *Registry) Formats() []domain.DictionaryFormat {
	out := make([]domain.DictionaryFormat, len(r.formats))
	for i, f := range r.formats {
		out[i] = f.name
	}
	return out
}

// Sniff reports the format of the file at path. Files without a known
// header fall back to their extension.
func (r *Registry) Sniff(path string) (domain.DictionaryFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading header: %w", err)
	}
	head = bytes.TrimPrefix(head[:n], []byte("\xef\xbb\xbf"))

	for _, fm := range r.formats {
		if bytes.HasPrefix(head, fm.magic) {
			return fm.name, nil
		}
	}

	if name, ok := r.FormatForPath(path); ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: unrecognised header", domain.ErrUnsupportedFormat)
}

// Load sniffs path and hands it to the matching format loader.
func (r *Registry) Load(ctx context.Context, path string) (driven.DictionaryStore, error) {
	if path == "" {
		return nil, domain.NewLoadError(path, fmt.Errorf("%w: empty dictionary path", domain.ErrInvalidInput))
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	name, err := r.Sniff(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	logger.Debug("dictionary: %s detected as %s", path, name)

	for _, fm := range r.formats {
		if fm.name == name {
			return fm.loader.Load(ctx, path)
		}
	}
	return nil, domain.NewLoadError(path, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name))
}

// Writer returns the writer for format.
func (r *Registry) Writer(name domain.DictionaryFormat) (driven.DictionaryWriter, error) {
	for _, fm := range r.formats {
		if fm.name == name {
			return fm.writer, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, name)
}

// FormatForPath guesses an output format from a file extension.
func (r *Registry) FormatForPath(path string) (domain.DictionaryFormat, bool) {
	return domain.FormatForExtension(filepath.Ext(path))
}
