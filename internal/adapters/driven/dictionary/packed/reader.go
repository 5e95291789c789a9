package packed

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/memory"
	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DictionaryLoader = (*Loader)(nil)

// Loader reads packed dictionaries from disk.
type Loader struct{}

// NewLoader creates a packed loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads path fully into memory and decodes it.
func (l *Loader) Load(ctx context.Context, path string) (driven.DictionaryStore, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	store, err := Decode(data, path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	logger.Debug("packed: loaded %d entries, %d rules from %s in %s",
		store.Len(), len(store.Rules()), path, time.Since(start))
	return store, nil
}

// Decode parses a packed dictionary held in data. path is recorded in the
// store's info only.
func Decode(data []byte, path string) (*memory.Store, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic", domain.ErrUnsupportedFormat)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header", domain.ErrTruncated)
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version != Version {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, version)
	}
	ruleCount := binary.LittleEndian.Uint32(data[8:12])
	entryCount := binary.LittleEndian.Uint32(data[12:16])
	if ruleCount > maxCount || entryCount > maxCount {
		return nil, fmt.Errorf("%w: implausible counts %d/%d", domain.ErrMalformed, ruleCount, entryCount)
	}

	need := uint64(ruleCount)*minRuleSize + uint64(entryCount)*minEntrySize + trailerSize
	if have := uint64(len(data) - headerSize); need > have {
		return nil, fmt.Errorf("%w: counts %d/%d need at least %d bytes, have %d",
			domain.ErrTruncated, ruleCount, entryCount, need, have)
	}

	r := &reader{buf: data, off: headerSize}

	rules := make([]domain.AffixRule, 0, ruleCount)
	for i := uint32(0); i < ruleCount; i++ {
		rule, err := r.readRule()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}

	entries := make([]domain.DictionaryEntry, 0, entryCount)
	prev := ""
	for i := uint32(0); i < entryCount; i++ {
		entry, err := r.readEntry(prev)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if i > 0 && entry.Stem <= prev {
			return nil, fmt.Errorf("%w: %q after %q", domain.ErrUnsorted, entry.Stem, prev)
		}
		entries = append(entries, entry)
		prev = entry.Stem
	}

	if len(data)-r.off != trailerSize {
		if len(data)-r.off < trailerSize {
			return nil, fmt.Errorf("%w: checksum", domain.ErrTruncated)
		}
		return nil, fmt.Errorf("%w: %d trailing bytes", domain.ErrMalformed, len(data)-r.off-trailerSize)
	}
	want := binary.LittleEndian.Uint32(data[r.off:])
	if got := crc32.ChecksumIEEE(data[:r.off]); got != want {
		return nil, fmt.Errorf("%w: got %08x, want %08x", domain.ErrChecksum, got, want)
	}

	return memory.New(domain.DictionaryInfo{
		Path:    path,
		Format:  Format,
		Version: int(version),
	}, rules, entries)
}

// reader walks the body with bounds checks. Every short read is
// ErrTruncated.
type reader struct {
	buf []byte
	off int
}

var errShort = domain.ErrTruncated

func (r *reader) readByte() (byte, error) {
	if r.off+1 > len(r.buf) {
		return 0, errShort
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *reader) readUint16() (uint16, error) {
	if r.off+2 > len(r.buf) {
		return 0, errShort
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) readUint64() (uint64, error) {
	if r.off+8 > len(r.buf) {
		return 0, errShort
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *reader) readUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.off:])
	switch {
	case n == 0:
		return 0, errShort
	case n < 0:
		return 0, fmt.Errorf("%w: varint overflow", domain.ErrMalformed)
	}
	r.off += n
	return v, nil
}

func (r *reader) readString() (string, error) {
	n, err := r.readUvarint()
	if err != nil {
		return "", err
	}
	if n > uint64(len(r.buf)-r.off) {
		return "", errShort
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

func (r *reader) readRule() (domain.AffixRule, error) {
	kind, err := r.readByte()
	if err != nil {
		return domain.AffixRule{}, err
	}
	if !domain.AffixKind(kind).IsValid() {
		return domain.AffixRule{}, fmt.Errorf("%w: affix kind %d", domain.ErrMalformed, kind)
	}
	priority, err := r.readUint16()
	if err != nil {
		return domain.AffixRule{}, err
	}
	affix, err := r.readString()
	if err != nil {
		return domain.AffixRule{}, err
	}
	patterns, err := r.readUint64()
	if err != nil {
		return domain.AffixRule{}, err
	}
	return domain.AffixRule{
		Kind:     domain.AffixKind(kind),
		Affix:    affix,
		Patterns: domain.PatternSet(patterns),
		Priority: priority,
	}, nil
}

func (r *reader) readEntry(prev string) (domain.DictionaryEntry, error) {
	shared, err := r.readUvarint()
	if err != nil {
		return domain.DictionaryEntry{}, err
	}
	if shared > uint64(len(prev)) {
		return domain.DictionaryEntry{}, fmt.Errorf("%w: shared prefix %d exceeds previous stem", domain.ErrMalformed, shared)
	}
	tail, err := r.readString()
	if err != nil {
		return domain.DictionaryEntry{}, err
	}
	patterns, err := r.readUint64()
	if err != nil {
		return domain.DictionaryEntry{}, err
	}
	pos, err := r.readByte()
	if err != nil {
		return domain.DictionaryEntry{}, err
	}
	if !domain.PartOfSpeech(pos).IsValid() {
		return domain.DictionaryEntry{}, fmt.Errorf("%w: part of speech %d", domain.ErrMalformed, pos)
	}
	freq, err := r.readUvarint()
	if err != nil {
		return domain.DictionaryEntry{}, err
	}
	if freq > 1<<32-1 {
		return domain.DictionaryEntry{}, fmt.Errorf("%w: frequency %d", domain.ErrMalformed, freq)
	}

	stem := prev[:shared] + tail
	if stem == "" {
		return domain.DictionaryEntry{}, fmt.Errorf("%w: empty stem", domain.ErrMalformed)
	}
	return domain.DictionaryEntry{
		Stem:      stem,
		Patterns:  domain.PatternSet(patterns),
		POS:       domain.PartOfSpeech(pos),
		Frequency: uint32(freq),
	}, nil
}
