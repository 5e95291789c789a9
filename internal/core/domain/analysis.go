package domain

// Decomposition is a (prefix, stem, suffix) split explaining a surface word.
// Prefix and Suffix are zero-value rules when no affix was stripped.
type Decomposition struct {
	Prefix AffixRule
	Stem   string
	Suffix AffixRule

	// Entry is the dictionary entry the stem resolved to.
	Entry DictionaryEntry
}

// AffixLen returns the combined prefix and suffix length in runes.
func (d Decomposition) AffixLen() int {
	return d.Prefix.Len() + d.Suffix.Len()
}

// Surface reassembles the word the decomposition was taken from,
// using the stem as looked up.
func (d Decomposition) Surface() string {
	return d.Prefix.Affix + d.Stem + d.Suffix.Affix
}

// AnalysisResult holds every decomposition found for a queried word.
// Created per query and owned by the caller.
type AnalysisResult struct {
	// Word is the normalised word that was analysed.
	Word string

	// Valid is true when at least one decomposition succeeded.
	Valid bool

	// Decompositions are ordered best first.
	Decompositions []Decomposition
}

// Best returns the preferred decomposition, if any.
func (r AnalysisResult) Best() (Decomposition, bool) {
	if len(r.Decompositions) == 0 {
		return Decomposition{}, false
	}
	return r.Decompositions[0], true
}

// Candidate is a suggested correction.
type Candidate struct {
	// Word is the corrected surface form.
	Word string `json:"word"`

	// Distance is the edit distance from the input; the primary rank key.
	Distance int `json:"distance"`

	// Weight is the dictionary frequency of the best matching stem.
	Weight uint32 `json:"weight"`
}

// Strings returns the surface forms of candidates in order.
func Strings(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Word
	}
	return out
}
