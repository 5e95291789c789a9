package driving

import (
	"context"

	"github.com/custodia-labs/milon/internal/core/domain"
)

// CompileService converts dictionaries between formats.
type CompileService interface {
	// Compile loads src and writes it to dst in format, then verifies dst
	// loads back with the same content. Returns the info of dst.
	Compile(ctx context.Context, src, dst string, format domain.DictionaryFormat) (domain.DictionaryInfo, error)
}
