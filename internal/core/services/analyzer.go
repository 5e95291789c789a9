package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/hebrew"
)

// AnalyzerOptions tunes the morphological analyzer.
type AnalyzerOptions struct {
	// RestoreFinals also tries the final form of a stem's last letter
	// after a suffix was stripped (מלכ → מלך).
	RestoreFinals bool
}

// Analyzer decomposes words into prefix, stem and suffix against one
// dictionary. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	store    driven.DictionaryStore
	prefixes []domain.AffixRule
	suffixes []domain.AffixRule
	opts     AnalyzerOptions
}

// NewAnalyzer indexes the store's affix rules. Both rule lists start with
// the empty affix.
func NewAnalyzer(store driven.DictionaryStore, opts AnalyzerOptions) *Analyzer {
	a := &Analyzer{
		store:    store,
		prefixes: []domain.AffixRule{{Kind: domain.AffixPrefix}},
		suffixes: []domain.AffixRule{{Kind: domain.AffixSuffix}},
		opts:     opts,
	}
	for _, r := range store.Rules() {
		if r.IsEmpty() {
			continue
		}
		switch r.Kind {
		case domain.AffixPrefix:
			a.prefixes = append(a.prefixes, r)
		case domain.AffixSuffix:
			a.suffixes = append(a.suffixes, r)
		}
	}
	byPriority := func(x, y domain.AffixRule) int {
		return cmp.Or(cmp.Compare(x.Priority, y.Priority), strings.Compare(x.Affix, y.Affix))
	}
	slices.SortStableFunc(a.prefixes[1:], byPriority)
	slices.SortStableFunc(a.suffixes[1:], byPriority)
	return a
}

// Analyze normalises word and returns every decomposition that resolves to
// a dictionary stem, best first.
func (a *Analyzer) Analyze(word string) domain.AnalysisResult {
	return a.analyze(hebrew.Normalize(word))
}

// Accepts reports whether word has at least one decomposition.
func (a *Analyzer) Accepts(word string) bool {
	return a.accepts(hebrew.Normalize(word))
}

func (a *Analyzer) analyze(word string) domain.AnalysisResult {
	result := domain.AnalysisResult{Word: word}
	if word == "" {
		return result
	}

	a.walk(word, func(d domain.Decomposition) bool {
		result.Decompositions = append(result.Decompositions, d)
		return true
	})
	slices.SortStableFunc(result.Decompositions, compareDecompositions)
	result.Valid = len(result.Decompositions) > 0
	return result
}

func (a *Analyzer) accepts(word string) bool {
	if word == "" {
		return false
	}
	found := false
	a.walk(word, func(domain.Decomposition) bool {
		found = true
		return false
	})
	return found
}

// weight is the highest frequency among the word's decompositions.
func (a *Analyzer) weight(word string) uint32 {
	var w uint32
	a.walk(word, func(d domain.Decomposition) bool {
		w = max(w, d.Entry.Frequency)
		return true
	})
	return w
}

// walk calls yield for each successful decomposition of an already
// normalised word until yield returns false.
func (a *Analyzer) walk(word string, yield func(domain.Decomposition) bool) {
	for _, p := range a.prefixes {
		if !strings.HasPrefix(word, p.Affix) {
			continue
		}
		rest := word[len(p.Affix):]
		for _, s := range a.suffixes {
			if !strings.HasSuffix(rest, s.Affix) {
				continue
			}
			stem := rest[:len(rest)-len(s.Affix)]
			if stem == "" {
				continue
			}
			if !a.try(p, stem, s, yield) {
				return
			}
			if s.IsEmpty() || !a.opts.RestoreFinals {
				continue
			}
			if restored, ok := hebrew.RestoreFinal(stem); ok {
				if !a.try(p, restored, s, yield) {
					return
				}
			}
		}
	}
}

func (a *Analyzer) try(p domain.AffixRule, stem string, s domain.AffixRule, yield func(domain.Decomposition) bool) bool {
	entry, ok := a.store.Lookup(stem)
	if !ok || !p.Permits(entry) || !s.Permits(entry) {
		return true
	}
	return yield(domain.Decomposition{Prefix: p, Stem: stem, Suffix: s, Entry: entry})
}

// compareDecompositions orders by total affix length, then summed rule
// priority, then prefix priority, then stem.
func compareDecompositions(x, y domain.Decomposition) int {
	return cmp.Or(
		cmp.Compare(x.AffixLen(), y.AffixLen()),
		cmp.Compare(int(x.Prefix.Priority)+int(x.Suffix.Priority), int(y.Prefix.Priority)+int(y.Suffix.Priority)),
		cmp.Compare(x.Prefix.Priority, y.Prefix.Priority),
		strings.Compare(x.Stem, y.Stem),
		strings.Compare(x.Prefix.Affix, y.Prefix.Affix),
		strings.Compare(x.Suffix.Affix, y.Suffix.Affix),
	)
}
