package services

import (
	"cmp"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/hebrew"
	"github.com/custodia-labs/milon/internal/logger"
)

// Suggestion defaults.
const (
	DefaultMaxDistance   = 2
	DefaultMaxConfusions = 2
)

// SuggesterOptions bounds the candidate search.
type SuggesterOptions struct {
	// MaxDistance is the number of edit rounds (0 disables edits).
	MaxDistance int
	// MaxConfusions is how many positions may be swapped within a
	// confusion group at once (0 disables).
	MaxConfusions int
}

// Suggester generates ranked corrections for a word using edit-distance
// enumeration over the dictionary alphabet and Hebrew confusion sets.
// Every candidate is accepted by the analyzer.
type Suggester struct {
	analyzer *Analyzer
	alphabet []rune
	opts     SuggesterOptions
}

// NewSuggester creates a suggester over the analyzer's dictionary.
func NewSuggester(analyzer *Analyzer, opts SuggesterOptions) *Suggester {
	alphabet := analyzer.store.Alphabet()
	if len(alphabet) == 0 {
		alphabet = hebrew.Alphabet
	}
	return &Suggester{
		analyzer: analyzer,
		alphabet: alphabet,
		opts:     opts,
	}
}

// Suggest returns at most maxResults candidates for word, best first.
// The word itself is never returned.
func (s *Suggester) Suggest(word string, maxResults int) []domain.Candidate {
	word = hebrew.Normalize(word)
	if word == "" || maxResults <= 0 {
		return []domain.Candidate{}
	}

	found := mapset.NewThreadUnsafeSet[string]()
	s.editCandidates(word, found)
	s.confusionCandidates(word, found)
	found.Remove(word)

	candidates := make([]domain.Candidate, 0, found.Cardinality())
	for _, c := range found.ToSlice() {
		candidates = append(candidates, domain.Candidate{
			Word:     c,
			Distance: edlib.OSADamerauLevenshteinDistance(word, c),
			Weight:   s.analyzer.weight(c),
		})
	}
	slices.SortFunc(candidates, compareCandidates)

	logger.Debug("suggest %q: %d candidates", word, len(candidates))
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates
}

func compareCandidates(x, y domain.Candidate) int {
	return cmp.Or(
		cmp.Compare(x.Distance, y.Distance),
		cmp.Compare(y.Weight, x.Weight),
		strings.Compare(x.Word, y.Word),
	)
}

// editCandidates expands word one edit at a time, breadth first, adding
// every accepted string to found.
func (s *Suggester) editCandidates(word string, found mapset.Set[string]) {
	seen := mapset.NewThreadUnsafeSet(word)
	frontier := []string{word}
	for d := 0; d < s.opts.MaxDistance && len(frontier) > 0; d++ {
		var next []string
		for _, w := range frontier {
			s.edits([]rune(w), func(e string) {
				if !seen.Add(e) {
					return
				}
				next = append(next, e)
				if s.analyzer.accepts(e) {
					found.Add(e)
				}
			})
		}
		frontier = next
	}
}

// edits emits every string one deletion, adjacent transposition,
// substitution or insertion away from w.
func (s *Suggester) edits(w []rune, emit func(string)) {
	buf := make([]rune, 0, len(w)+1)

	for i := range w {
		buf = append(buf[:0], w[:i]...)
		emit(string(append(buf, w[i+1:]...)))
	}
	for i := 0; i+1 < len(w); i++ {
		if w[i] == w[i+1] {
			continue
		}
		buf = append(buf[:0], w...)
		buf[i], buf[i+1] = buf[i+1], buf[i]
		emit(string(buf))
	}
	for i := range w {
		for _, r := range s.alphabet {
			if r == w[i] {
				continue
			}
			buf = append(buf[:0], w...)
			buf[i] = r
			emit(string(buf))
		}
	}
	for i := 0; i <= len(w); i++ {
		for _, r := range s.alphabet {
			buf = append(buf[:0], w[:i]...)
			buf = append(buf, r)
			emit(string(append(buf, w[i:]...)))
		}
	}
}

// confusionCandidates substitutes letters within their confusion group at
// up to MaxConfusions positions.
func (s *Suggester) confusionCandidates(word string, found mapset.Set[string]) {
	if s.opts.MaxConfusions <= 0 {
		return
	}
	w := []rune(word)
	var positions []int
	for i, r := range w {
		if len(hebrew.Confusables(r)) > 0 {
			positions = append(positions, i)
		}
	}

	var swap func(start, depth int)
	swap = func(start, depth int) {
		for pi := start; pi < len(positions); pi++ {
			i := positions[pi]
			orig := w[i]
			for _, r := range hebrew.Confusables(orig) {
				w[i] = r
				c := string(w)
				if s.analyzer.accepts(c) {
					found.Add(c)
				}
				if depth+1 < s.opts.MaxConfusions {
					swap(pi+1, depth+1)
				}
			}
			w[i] = orig
		}
	}
	swap(0, 0)
}
