package driving

import (
	"context"

	"github.com/custodia-labs/milon/internal/core/domain"
)

// SpellService is a handle on one open dictionary.
//
// Open and Close must not run concurrently with each other; queries may run
// concurrently with everything once Open has returned.
type SpellService interface {
	// Open loads the dictionary at path and moves the handle to Ready.
	// Fails with a *domain.LoadError.
	Open(ctx context.Context, path string) error

	// Close releases the dictionary and returns to Uninitialized. Idempotent.
	Close() error

	// State reports the lifecycle state.
	State() domain.State

	// Check reports whether word is correctly spelled.
	Check(word string) (bool, error)

	// Analyze returns every decomposition of word.
	Analyze(word string) (domain.AnalysisResult, error)

	// Suggest returns at most maxResults ranked corrections for word.
	Suggest(word string, maxResults int) ([]domain.Candidate, error)

	// Info describes the open dictionary.
	Info() (domain.DictionaryInfo, error)
}
