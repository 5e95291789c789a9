package domain

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxPatternID is the largest affix-pattern id a PatternSet can hold.
const MaxPatternID = 63

// PatternSet is a bitset of affix-pattern ids.
// Stems declare the patterns they belong to; affix rules declare the
// patterns they may attach to.
type PatternSet uint64

// NewPatternSet returns a set holding the given ids.
// Ids outside 0..MaxPatternID are ignored.
func NewPatternSet(ids ...int) PatternSet {
	var p PatternSet
	for _, id := range ids {
		p = p.With(id)
	}
	return p
}

// ParsePatternSet parses a comma-separated id list. "-" and "" mean empty.
func ParsePatternSet(s string) (PatternSet, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	var p PatternSet
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id < 0 || id > MaxPatternID {
			return 0, fmt.Errorf("%w: pattern id %q", ErrInvalidInput, part)
		}
		p = p.With(id)
	}
	return p, nil
}

// With returns p with id added.
func (p PatternSet) With(id int) PatternSet {
	if id < 0 || id > MaxPatternID {
		return p
	}
	return p | 1<<uint(id)
}

// Has reports whether id is in the set.
func (p PatternSet) Has(id int) bool {
	if id < 0 || id > MaxPatternID {
		return false
	}
	return p&(1<<uint(id)) != 0
}

// Intersects reports whether p and o share at least one id.
func (p PatternSet) Intersects(o PatternSet) bool {
	return p&o != 0
}

// IsEmpty reports whether the set holds no ids.
func (p PatternSet) IsEmpty() bool {
	return p == 0
}

// Len returns the number of ids in the set.
func (p PatternSet) Len() int {
	return bits.OnesCount64(uint64(p))
}

// IDs returns the ids in ascending order.
func (p PatternSet) IDs() []int {
	ids := make([]int, 0, p.Len())
	for v := uint64(p); v != 0; v &= v - 1 {
		ids = append(ids, bits.TrailingZeros64(v))
	}
	return ids
}

// String renders the set in the form accepted by ParsePatternSet.
func (p PatternSet) String() string {
	if p.IsEmpty() {
		return "-"
	}
	ids := p.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// PartOfSpeech tags a dictionary entry.
type PartOfSpeech uint8

// Known parts of speech. The numeric values are part of the binary format.
const (
	POSUnknown PartOfSpeech = iota
	POSNoun
	POSVerb
	POSAdjective
	POSAdverb
	POSPronoun
	POSPreposition
	POSConjunction
	POSName
	POSOther
)

var posNames = [...]string{
	POSUnknown:     "unknown",
	POSNoun:        "noun",
	POSVerb:        "verb",
	POSAdjective:   "adjective",
	POSAdverb:      "adverb",
	POSPronoun:     "pronoun",
	POSPreposition: "preposition",
	POSConjunction: "conjunction",
	POSName:        "name",
	POSOther:       "other",
}

// ParsePartOfSpeech maps a tag name to its PartOfSpeech.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range posNames {
		if name == s {
			return PartOfSpeech(i), nil
		}
	}
	return POSUnknown, fmt.Errorf("%w: part of speech %q", ErrInvalidInput, s)
}

// IsValid returns true if the tag is recognised.
func (p PartOfSpeech) IsValid() bool {
	return int(p) < len(posNames)
}

// String returns the tag name.
func (p PartOfSpeech) String() string {
	if !p.IsValid() {
		return unknownDescription
	}
	return posNames[p]
}

// DictionaryEntry is a registered stem. Immutable once loaded.
type DictionaryEntry struct {
	// Stem is the base form before affixation.
	Stem string

	// Patterns are the affix-pattern ids this stem accepts.
	Patterns PatternSet

	// POS is the part-of-speech tag.
	POS PartOfSpeech

	// Frequency is a relative usage weight; 0 means unknown.
	Frequency uint32
}

// AffixKind distinguishes prefixes from suffixes.
type AffixKind uint8

// Affix kinds. The numeric values are part of the binary format.
const (
	AffixPrefix AffixKind = iota
	AffixSuffix
)

// ParseAffixKind maps "prefix" or "suffix" to an AffixKind.
func ParseAffixKind(s string) (AffixKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix":
		return AffixPrefix, nil
	case "suffix":
		return AffixSuffix, nil
	default:
		return 0, fmt.Errorf("%w: affix kind %q", ErrInvalidInput, s)
	}
}

// IsValid returns true if the kind is recognised.
func (k AffixKind) IsValid() bool {
	return k == AffixPrefix || k == AffixSuffix
}

// String returns the kind name.
func (k AffixKind) String() string {
	switch k {
	case AffixPrefix:
		return "prefix"
	case AffixSuffix:
		return "suffix"
	default:
		return unknownDescription
	}
}

// AffixRule is a prefix or suffix and the stem patterns it may attach to.
// The zero value with an empty Affix stands for "no affix" and attaches
// to every stem.
type AffixRule struct {
	Kind     AffixKind
	Affix    string
	Patterns PatternSet

	// Priority orders rules when several decompositions tie; lower wins.
	Priority uint16
}

// IsEmpty reports whether the rule is the empty affix.
func (r AffixRule) IsEmpty() bool {
	return r.Affix == ""
}

// Len returns the affix length in runes.
func (r AffixRule) Len() int {
	return utf8.RuneCountInString(r.Affix)
}

// Permits reports whether the rule may attach to entry.
func (r AffixRule) Permits(entry DictionaryEntry) bool {
	return r.IsEmpty() || r.Patterns.Intersects(entry.Patterns)
}

// DictionaryInfo describes a loaded dictionary instance.
type DictionaryInfo struct {
	// ID identifies this loaded instance; a reload yields a new ID.
	ID string `json:"id"`

	Path     string           `json:"path"`
	Format   DictionaryFormat `json:"format"`
	Version  int              `json:"version"`
	Entries  int              `json:"entries"`
	Rules    int              `json:"rules"`
	LoadedAt time.Time        `json:"loaded_at"`
}
