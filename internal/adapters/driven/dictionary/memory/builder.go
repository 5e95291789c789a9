package memory

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/hebrew"
)

// Builder accumulates rules and entries in any order and produces a Store.
// A Builder is not safe for concurrent use.
type Builder struct {
	rules   []domain.AffixRule
	entries map[string]domain.DictionaryEntry
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		entries: make(map[string]domain.DictionaryEntry),
	}
}

// AddRule registers an affix rule. The affix is normalised.
func (b *Builder) AddRule(rule domain.AffixRule) *Builder {
	rule.Affix = hebrew.Normalize(rule.Affix)
	b.rules = append(b.rules, rule)
	return b
}

// AddEntry registers a stem. The stem is normalised first, so pointed
// and unpointed spellings of one word collide. A stem may be added only once.
func (b *Builder) AddEntry(entry domain.DictionaryEntry) error {
	entry.Stem = hebrew.Normalize(entry.Stem)
	if entry.Stem == "" {
		return fmt.Errorf("%w: empty stem", domain.ErrMalformed)
	}
	if _, dup := b.entries[entry.Stem]; dup {
		return fmt.Errorf("%w: duplicate stem %q", domain.ErrMalformed, entry.Stem)
	}
	b.entries[entry.Stem] = entry
	return nil
}

// MustAddEntry is AddEntry for fixtures; it panics on error.
func (b *Builder) MustAddEntry(entry domain.DictionaryEntry) *Builder {
	if err := b.AddEntry(entry); err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Build sorts the entries and creates the store.
func (b *Builder) Build(info domain.DictionaryInfo) (*Store, error) {
	entries := make([]domain.DictionaryEntry, 0, len(b.entries))
	for _, e := range b.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Stem < entries[j].Stem })
	return New(info, b.rules, entries)
}
