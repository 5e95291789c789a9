package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	dictmem "github.com/custodia-labs/milon/internal/adapters/driven/dictionary/memory"
	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
)

// --- Fixtures ---

func prefix(affix string, priority uint16, ids ...int) domain.AffixRule {
	return domain.AffixRule{Kind: domain.AffixPrefix, Affix: affix, Priority: priority, Patterns: domain.NewPatternSet(ids...)}
}

func suffix(affix string, priority uint16, ids ...int) domain.AffixRule {
	return domain.AffixRule{Kind: domain.AffixSuffix, Affix: affix, Priority: priority, Patterns: domain.NewPatternSet(ids...)}
}

func entry(stem string, freq uint32, ids ...int) domain.DictionaryEntry {
	return domain.DictionaryEntry{Stem: stem, POS: domain.POSNoun, Frequency: freq, Patterns: domain.NewPatternSet(ids...)}
}

// newToyStore builds the dictionary most tests share.
func newToyStore(t *testing.T) *dictmem.Store {
	t.Helper()
	store, err := dictmem.NewBuilder().
		AddRule(prefix("ו", 0, 0, 1, 2)).
		AddRule(prefix("ה", 1, 0)).
		AddRule(prefix("ב", 2, 0)).
		AddRule(prefix("ש", 3, 0, 2)).
		AddRule(suffix("ת", 0, 0)).
		AddRule(suffix("ה", 1, 0)).
		AddRule(suffix("ים", 1, 1)).
		MustAddEntry(entry("שלום", 100)).
		MustAddEntry(entry("ספר", 40, 0, 1)).
		MustAddEntry(entry("מלך", 30, 1)).
		MustAddEntry(entry("ילד", 50, 0, 1)).
		MustAddEntry(entry("ילדה", 20, 0)).
		MustAddEntry(entry("בית", 60, 0)).
		MustAddEntry(entry("כתב", 10, 2)).
		MustAddEntry(entry("שבי", 5, 0)).
		Build(domain.DictionaryInfo{Path: "toy.txt", Format: domain.FormatText, Version: 1})
	require.NoError(t, err)
	return store
}

// --- Mock implementations ---

// mockLoader implements driven.DictionaryLoader for testing.
type mockLoader struct {
	mu      sync.Mutex
	stores  map[string]driven.DictionaryStore
	loadErr error
	loads   int
}

func newMockLoader() *mockLoader {
	return &mockLoader{stores: make(map[string]driven.DictionaryStore)}
}

func (m *mockLoader) Load(_ context.Context, path string) (driven.DictionaryStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	store, ok := m.stores[path]
	if !ok {
		return nil, domain.NewLoadError(path, errNotFound)
	}
	return &trackingStore{DictionaryStore: store}, nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "no such dictionary" }

// trackingStore records Close calls.
type trackingStore struct {
	driven.DictionaryStore
	mu     sync.Mutex
	closed int
}

func (s *trackingStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *trackingStore) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
