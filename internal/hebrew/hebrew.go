// Package hebrew holds the script-specific knowledge the engine needs:
// the alphabet, final letter forms, niqqud stripping, word tokenisation
// and the letter confusion groups used to bias suggestions.
package hebrew

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Punctuation that may appear inside a Hebrew word.
const (
	Geresh    = '׳'
	Gershayim = '״'
	Maqaf     = '־'
)

// Alphabet is the 27 Hebrew letters including final forms, in code point order.
var Alphabet = func() []rune {
	out := make([]rune, 0, 27)
	for r := 'א'; r <= 'ת'; r++ {
		out = append(out, r)
	}
	return out
}()

var finals = map[rune]rune{
	'כ': 'ך',
	'מ': 'ם',
	'נ': 'ן',
	'פ': 'ף',
	'צ': 'ץ',
}

var regulars = func() map[rune]rune {
	m := make(map[rune]rune, len(finals))
	for reg, fin := range finals {
		m[fin] = reg
	}
	return m
}()

// IsLetter reports whether r is one of the 27 Hebrew letters.
func IsLetter(r rune) bool {
	return r >= 'א' && r <= 'ת'
}

// FinalForm returns the final form of r, if r has one.
func FinalForm(r rune) (rune, bool) {
	f, ok := finals[r]
	return f, ok
}

// RegularForm returns the regular form of a final letter.
func RegularForm(r rune) (rune, bool) {
	reg, ok := regulars[r]
	return reg, ok
}

// IsFinal reports whether r is a final letter form.
func IsFinal(r rune) bool {
	_, ok := regulars[r]
	return ok
}

// RestoreFinal replaces a trailing regular letter with its final form.
// Used when a suffix was stripped: שלומ (from שלומות) becomes שלום.
func RestoreFinal(stem string) (string, bool) {
	last, size := utf8.DecodeLastRuneInString(stem)
	if size == 0 {
		return stem, false
	}
	fin, ok := finals[last]
	if !ok {
		return stem, false
	}
	return stem[:len(stem)-size] + string(fin), true
}

// Normalize strips niqqud and cantillation marks, recomposes to NFC and
// trims surrounding space.
func Normalize(word string) string {
	word = strings.TrimSpace(word)
	// Chains carry state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, word)
	if err != nil {
		return word
	}
	return out
}

// Words splits text into candidate words. Letters, combining marks and
// geresh/gershayim between letters belong to a word; everything else
// separates words. A maqaf joins nothing and splits compounds.
func Words(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		if inWord(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, trimQuotes(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, trimQuotes(text[start:]))
	}
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func inWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) || r == Geresh || r == Gershayim || r == '\'' || r == '"'
}

// trimQuotes drops leading quote marks; a trailing geresh is kept since
// it is part of words like ג׳ but ASCII quotes are dropped.
func trimQuotes(w string) string {
	w = strings.TrimLeft(w, "'\"׳״")
	return strings.TrimRight(w, "'\"״")
}

var confusionGroups = [][]rune{
	{'א', 'ע', 'ה'},
	{'ב', 'ו'},
	{'כ', 'ח', 'ק'},
	{'ט', 'ת'},
	{'ס', 'ש'},
	{'ד', 'ר'},
	{'ו', 'י', 'ן'},
	{'ם', 'ס'},
	{'ה', 'ח', 'ת'},
}

var confusables = func() map[rune][]rune {
	sets := make(map[rune]map[rune]struct{})
	for _, group := range confusionGroups {
		for _, a := range group {
			if sets[a] == nil {
				sets[a] = make(map[rune]struct{})
			}
			for _, b := range group {
				if a != b {
					sets[a][b] = struct{}{}
				}
			}
		}
	}
	out := make(map[rune][]rune, len(sets))
	for r, set := range sets {
		list := make([]rune, 0, len(set))
		for c := range set {
			list = append(list, c)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		out[r] = list
	}
	return out
}()

// Confusables returns the letters commonly mistaken for r, ascending.
// Callers must not modify the returned slice.
func Confusables(r rune) []rune {
	return confusables[r]
}
