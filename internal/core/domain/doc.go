// Package domain defines the core entities of the milon spelling engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DictionaryEntry: A registered stem with its permitted affix patterns
//   - AffixRule: A prefix or suffix and the stem patterns it attaches to
//   - AnalysisResult: The decompositions explaining a surface word
//   - Candidate: A ranked spelling correction
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
