// Package packed reads and writes the versioned binary dictionary format.
//
// Layout, all integers little-endian:
//
//	magic    "MILN"
//	version  uint16
//	flags    uint16 (reserved)
//	rules    uint32
//	entries  uint32
//	rule*    kind byte, priority uint16, affix string, patterns uint64
//	entry*   shared uvarint, tail string, patterns uint64, pos byte, frequency uvarint
//	crc32    uint32 IEEE over every preceding byte
//
// Strings are a uvarint byte length followed by UTF-8. Each stem shares
// its first `shared` bytes with the previous stem.
package packed

import "github.com/custodia-labs/milon/internal/core/domain"

const (
	// Magic identifies a packed dictionary.
	Magic = "MILN"

	// Version is the only format version this package reads and writes.
	Version uint16 = 1

	headerSize  = 4 + 2 + 2 + 4 + 4
	trailerSize = 4

	// Smallest encodings: a one-byte affix length, and a one-byte shared,
	// tail length and frequency.
	minRuleSize  = 1 + 2 + 1 + 8
	minEntrySize = 1 + 1 + 8 + 1 + 1

	// maxCount bounds header counts so a corrupt header cannot force a
	// huge allocation.
	maxCount = 1 << 24
)

// Format is the format name reported in DictionaryInfo.
const Format = domain.FormatBinary

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
