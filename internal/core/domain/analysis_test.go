package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposition_SurfaceAndAffixLen(t *testing.T) {
	d := Decomposition{
		Prefix: AffixRule{Kind: AffixPrefix, Affix: "ו"},
		Stem:   "ספר",
		Suffix: AffixRule{Kind: AffixSuffix, Affix: "ים"},
	}

	assert.Equal(t, "וספרים", d.Surface())
	assert.Equal(t, 3, d.AffixLen())
}

func TestAnalysisResult_Best(t *testing.T) {
	_, ok := AnalysisResult{}.Best()
	assert.False(t, ok)

	r := AnalysisResult{
		Valid:          true,
		Decompositions: []Decomposition{{Stem: "a"}, {Stem: "b"}},
	}
	best, ok := r.Best()
	assert.True(t, ok)
	assert.Equal(t, "a", best.Stem)
}

func TestStrings(t *testing.T) {
	got := Strings([]Candidate{{Word: "שלום"}, {Word: "שלוש"}})
	assert.Equal(t, []string{"שלום", "שלוש"}, got)
	assert.Empty(t, Strings(nil))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "Unknown", State(9).String())
}
