// Package memory provides the in-memory DictionaryStore every loader
// produces: a sorted array of entries searched by binary search.
package memory

import (
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/hebrew"
)

// Ensure Store implements the interface.
var _ driven.DictionaryStore = (*Store)(nil)

// Store is a read-only dictionary held in memory.
type Store struct {
	entries  []domain.DictionaryEntry
	rules    []domain.AffixRule
	alphabet []rune
	info     domain.DictionaryInfo
}

// New builds a store from entries that are already strictly ascending by
// stem. Stems and affixes must already be in hebrew.Normalize form, the
// form every query is looked up in. Rules are kept in the given order after a stable sort by kind and
// priority. An empty info.ID is filled with a fresh id and a zero LoadedAt
// with the current time.
func New(info domain.DictionaryInfo, rules []domain.AffixRule, entries []domain.DictionaryEntry) (*Store, error) {
	for i := range entries {
		if entries[i].Stem == "" {
			return nil, fmt.Errorf("%w: empty stem at entry %d", domain.ErrMalformed, i)
		}
		if hebrew.Normalize(entries[i].Stem) != entries[i].Stem {
			return nil, fmt.Errorf("%w: stem %q is not normalised", domain.ErrMalformed, entries[i].Stem)
		}
		if i > 0 && entries[i-1].Stem >= entries[i].Stem {
			return nil, fmt.Errorf("%w: %q after %q", domain.ErrUnsorted, entries[i].Stem, entries[i-1].Stem)
		}
	}
	for i, r := range rules {
		if !r.Kind.IsValid() {
			return nil, fmt.Errorf("%w: rule %d has kind %d", domain.ErrMalformed, i, r.Kind)
		}
		if r.IsEmpty() {
			return nil, fmt.Errorf("%w: rule %d has an empty affix", domain.ErrMalformed, i)
		}
		if hebrew.Normalize(r.Affix) != r.Affix {
			return nil, fmt.Errorf("%w: rule %d affix %q is not normalised", domain.ErrMalformed, i, r.Affix)
		}
	}

	sorted := make([]domain.AffixRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind < sorted[j].Kind
		}
		return sorted[i].Priority < sorted[j].Priority
	})

	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	if info.LoadedAt.IsZero() {
		info.LoadedAt = time.Now()
	}
	info.Entries = len(entries)
	info.Rules = len(sorted)

	return &Store{
		entries:  entries,
		rules:    sorted,
		alphabet: alphabetOf(entries),
		info:     info,
	}, nil
}

func alphabetOf(entries []domain.DictionaryEntry) []rune {
	seen := make(map[rune]struct{})
	for _, e := range entries {
		for _, r := range e.Stem {
			seen[r] = struct{}{}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup returns the entry registered for stem.
func (s *Store) Lookup(stem string) (domain.DictionaryEntry, bool) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Stem >= stem
	})
	if i < len(s.entries) && s.entries[i].Stem == stem {
		return s.entries[i], true
	}
	return domain.DictionaryEntry{}, false
}

// Rules returns every affix rule, prefixes first, each kind by priority.
func (s *Store) Rules() []domain.AffixRule {
	return s.rules
}

// Alphabet returns the distinct runes occurring in stems.
func (s *Store) Alphabet() []rune {
	return s.alphabet
}

// All yields entries in ascending stem order.
func (s *Store) All() iter.Seq[domain.DictionaryEntry] {
	return func(yield func(domain.DictionaryEntry) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Info describes the loaded instance.
func (s *Store) Info() domain.DictionaryInfo {
	return s.info
}

// Close is a no-op; the entries are reclaimed once the store is unreachable.
// Queries still holding the store keep working.
func (s *Store) Close() error {
	return nil
}
