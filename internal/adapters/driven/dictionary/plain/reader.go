// Package plain reads and writes the line-oriented text dictionary format.
//
//	!milon 1
//	# comment
//	prefix ו 1 0,1,2
//	suffix ים 2 1
//	word שלום noun 0,1 120
//
// Pattern sets are comma-separated ids or "-" for the empty set. The
// frequency column of a word line is optional. Words may appear in any
// order.
package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/memory"
	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/logger"
)

const (
	// Magic starts the header line.
	Magic = "!milon"

	// Version is the text format version.
	Version = 1
)

// Ensure Loader implements the interface.
var _ driven.DictionaryLoader = (*Loader)(nil)

// Loader reads text dictionaries.
type Loader struct{}

// NewLoader creates a text loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load opens path and parses it.
func (l *Loader) Load(ctx context.Context, path string) (driven.DictionaryStore, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	defer f.Close()

	store, err := Parse(ctx, f, path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	logger.Debug("plain: loaded %d entries, %d rules from %s in %s",
		store.Len(), len(store.Rules()), path, time.Since(start))
	return store, nil
}

// Parse reads a text dictionary from r. path is recorded in the store's
// info only.
func Parse(ctx context.Context, r io.Reader, path string) (*memory.Store, error) {
	b := memory.NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	sawHeader := false
	for scanner.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !sawHeader {
			if err := parseHeader(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			sawHeader = true
			continue
		}

		if err := parseRecord(b, strings.Fields(line)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: missing %s header", domain.ErrUnsupportedFormat, Magic)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return b.Build(domain.DictionaryInfo{
		Path:    path,
		Format:  domain.FormatText,
		Version: Version,
	})
}

func parseHeader(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != Magic {
		return fmt.Errorf("%w: expected %q header", domain.ErrUnsupportedFormat, Magic+" "+strconv.Itoa(Version))
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: version %q", domain.ErrMalformed, fields[1])
	}
	if v != Version {
		return fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, v)
	}
	return nil
}

func parseRecord(b *memory.Builder, fields []string) error {
	switch fields[0] {
	case "prefix", "suffix":
		rule, err := parseRule(fields)
		if err != nil {
			return err
		}
		b.AddRule(rule)
		return nil
	case "word":
		entry, err := parseWord(fields)
		if err != nil {
			return err
		}
		return b.AddEntry(entry)
	default:
		return fmt.Errorf("%w: unknown record %q", domain.ErrMalformed, fields[0])
	}
}

func parseRule(fields []string) (domain.AffixRule, error) {
	if len(fields) != 4 {
		return domain.AffixRule{}, fmt.Errorf("%w: %s needs affix, priority and patterns", domain.ErrMalformed, fields[0])
	}
	kind, err := domain.ParseAffixKind(fields[0])
	if err != nil {
		return domain.AffixRule{}, malformed(err)
	}
	priority, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return domain.AffixRule{}, fmt.Errorf("%w: priority %q", domain.ErrMalformed, fields[2])
	}
	patterns, err := domain.ParsePatternSet(fields[3])
	if err != nil {
		return domain.AffixRule{}, malformed(err)
	}
	return domain.AffixRule{
		Kind:     kind,
		Affix:    fields[1],
		Patterns: patterns,
		Priority: uint16(priority),
	}, nil
}

func parseWord(fields []string) (domain.DictionaryEntry, error) {
	if len(fields) != 4 && len(fields) != 5 {
		return domain.DictionaryEntry{}, fmt.Errorf("%w: word needs stem, pos and patterns", domain.ErrMalformed)
	}
	pos, err := domain.ParsePartOfSpeech(fields[2])
	if err != nil {
		return domain.DictionaryEntry{}, malformed(err)
	}
	patterns, err := domain.ParsePatternSet(fields[3])
	if err != nil {
		return domain.DictionaryEntry{}, malformed(err)
	}
	var freq uint64
	if len(fields) == 5 {
		freq, err = strconv.ParseUint(fields[4], 10, 32)
		if err != nil {
			return domain.DictionaryEntry{}, fmt.Errorf("%w: frequency %q", domain.ErrMalformed, fields[4])
		}
	}
	return domain.DictionaryEntry{
		Stem:      fields[1],
		Patterns:  patterns,
		POS:       pos,
		Frequency: uint32(freq),
	}, nil
}

// malformed rewraps a parse error from the domain package so the load
// failure reports ErrMalformed.
func malformed(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
}
