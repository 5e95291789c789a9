package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DictionaryWriter = (*Writer)(nil)

// Writer serialises a store as text.
type Writer struct{}

// NewWriter creates a text writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns FormatText.
func (w *Writer) Format() domain.DictionaryFormat {
	return domain.FormatText
}

// Write renders store to path, replacing any existing file.
func (w *Writer) Write(ctx context.Context, store driven.DictionaryStore, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Render(ctx, tmp, store); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close dictionary: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Render writes the text form of store to out.
func Render(ctx context.Context, out io.Writer, store driven.DictionaryStore) error {
	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "%s %d\n", Magic, Version)
	if info := store.Info(); info.Path != "" {
		fmt.Fprintf(bw, "# source: %s\n", filepath.Base(info.Path))
	}

	for _, r := range store.Rules() {
		fmt.Fprintf(bw, "%s %s %d %s\n", r.Kind, r.Affix, r.Priority, r.Patterns)
	}

	n := 0
	for e := range store.All() {
		n++
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if e.Frequency > 0 {
			fmt.Fprintf(bw, "word %s %s %s %d\n", e.Stem, e.POS, e.Patterns, e.Frequency)
		} else {
			fmt.Fprintf(bw, "word %s %s %s\n", e.Stem, e.POS, e.Patterns)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	return nil
}
