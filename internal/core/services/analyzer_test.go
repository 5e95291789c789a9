package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dictmem "github.com/custodia-labs/milon/internal/adapters/driven/dictionary/memory"
	"github.com/custodia-labs/milon/internal/core/domain"
)

func newToyAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return NewAnalyzer(newToyStore(t), AnalyzerOptions{RestoreFinals: true})
}

func TestAnalyzer_Accepts(t *testing.T) {
	a := newToyAnalyzer(t)

	tests := []struct {
		word string
		want bool
	}{
		{"שלום", true},
		{"ספר", true},
		{"הספר", true},   // ה {0} and ספר {0,1}
		{"ספרים", true},  // ים {1}
		{"וכתב", true},   // ו covers pattern 2
		{"שכתב", true},   // ש covers pattern 2
		{"הכתב", false},  // ה does not cover pattern 2
		{"השלום", false}, // empty pattern set admits no affix
		{"שלומם", false}, // no ם suffix
		{"מלכים", true},  // final restored: מלכ -> מלך
		{"בבית", true},
		{"", false},
		{"ים", false}, // suffix alone leaves an empty stem
		{"hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Accepts(tt.word))
			assert.Equal(t, tt.want, a.Analyze(tt.word).Valid)
		})
	}
}

func TestAnalyzer_RestoreFinalsDisabled(t *testing.T) {
	a := NewAnalyzer(newToyStore(t), AnalyzerOptions{})

	assert.False(t, a.Accepts("מלכים"))
	assert.True(t, a.Accepts("מלך"))
}

func TestAnalyzer_MatchingSuffixRule(t *testing.T) {
	store, err := dictmem.NewBuilder().
		AddRule(suffix("ם", 0, 4)).
		MustAddEntry(entry("שלום", 1, 4)).
		Build(domain.DictionaryInfo{})
	require.NoError(t, err)
	a := NewAnalyzer(store, AnalyzerOptions{RestoreFinals: true})

	result := a.Analyze("שלומם")
	require.True(t, result.Valid)
	best, ok := result.Best()
	require.True(t, ok)
	assert.Equal(t, "שלום", best.Stem)
	assert.Equal(t, "ם", best.Suffix.Affix)
	assert.True(t, best.Prefix.IsEmpty())
}

func TestAnalyzer_NonIntersectingRuleRejects(t *testing.T) {
	store, err := dictmem.NewBuilder().
		AddRule(suffix("ם", 0, 4)).
		MustAddEntry(entry("שלום", 1, 5)).
		Build(domain.DictionaryInfo{})
	require.NoError(t, err)

	assert.False(t, NewAnalyzer(store, AnalyzerOptions{RestoreFinals: true}).Accepts("שלומם"))
}

func TestAnalyzer_ShortestAffixFirst(t *testing.T) {
	a := newToyAnalyzer(t)

	result := a.Analyze("ילדה")
	require.Len(t, result.Decompositions, 2)
	assert.Equal(t, "ילדה", result.Decompositions[0].Stem)
	assert.Equal(t, 0, result.Decompositions[0].AffixLen())
	assert.Equal(t, "ילד", result.Decompositions[1].Stem)
	assert.Equal(t, "ה", result.Decompositions[1].Suffix.Affix)
}

func TestAnalyzer_PriorityBreaksTies(t *testing.T) {
	a := newToyAnalyzer(t)

	// ש+בית (priority 3) and שבי+ת (priority 0) both strip one letter.
	result := a.Analyze("שבית")
	require.Len(t, result.Decompositions, 2)
	assert.Equal(t, "שבי", result.Decompositions[0].Stem)
	assert.Equal(t, "בית", result.Decompositions[1].Stem)
	assert.Equal(t, "ש", result.Decompositions[1].Prefix.Affix)
}

func TestAnalyzer_DecompositionsResolveToStore(t *testing.T) {
	store := newToyStore(t)
	a := NewAnalyzer(store, AnalyzerOptions{RestoreFinals: true})

	for _, w := range []string{"הספר", "וספרים", "ילדה", "מלכים", "שבית", "בבית"} {
		result := a.Analyze(w)
		require.True(t, result.Valid, w)
		for _, d := range result.Decompositions {
			e, ok := store.Lookup(d.Stem)
			require.True(t, ok)
			assert.Equal(t, e, d.Entry)
			assert.True(t, d.Prefix.Permits(e))
			assert.True(t, d.Suffix.Permits(e))
		}
	}
}

func TestAnalyzer_NormalisesInput(t *testing.T) {
	a := newToyAnalyzer(t)

	result := a.Analyze("  שָׁלוֹם ")
	assert.Equal(t, "שלום", result.Word)
	assert.True(t, result.Valid)
	assert.True(t, a.Accepts("סֵפֶר"))
}

func TestAnalyzer_EmptyDictionary(t *testing.T) {
	store, err := dictmem.NewBuilder().Build(domain.DictionaryInfo{})
	require.NoError(t, err)
	a := NewAnalyzer(store, AnalyzerOptions{})

	result := a.Analyze("שלום")
	assert.False(t, result.Valid)
	assert.Empty(t, result.Decompositions)
	_, ok := result.Best()
	assert.False(t, ok)
}

func TestAnalyzer_Weight(t *testing.T) {
	a := newToyAnalyzer(t)

	// ילדה itself is 20 but ילד+ה resolves to 50.
	assert.Equal(t, uint32(50), a.weight("ילדה"))
	assert.Equal(t, uint32(0), a.weight("לא"))
}
