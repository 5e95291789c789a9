package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/core/ports/driving"
	"github.com/custodia-labs/milon/internal/logger"
)

// Ensure CompileService implements the interface.
var _ driving.CompileService = (*CompileService)(nil)

// CompileService converts dictionaries between formats.
type CompileService struct {
	codec driven.DictionaryCodec
}

// NewCompileService creates a compile service.
func NewCompileService(codec driven.DictionaryCodec) *CompileService {
	return &CompileService{codec: codec}
}

// Compile loads src in any supported format and writes it to dst. An empty
// format is inferred from dst's extension. The written file is loaded back
// and its info returned.
func (s *CompileService) Compile(ctx context.Context, src, dst string, format domain.DictionaryFormat) (domain.DictionaryInfo, error) {
	logger.Section("Compile Dictionary")

	if src == "" || dst == "" {
		return domain.DictionaryInfo{}, fmt.Errorf("%w: source and destination are required", domain.ErrInvalidInput)
	}
	if samePath(src, dst) {
		return domain.DictionaryInfo{}, fmt.Errorf("%w: source and destination are the same file", domain.ErrInvalidInput)
	}
	if format == "" {
		f, ok := domain.FormatForExtension(filepath.Ext(dst))
		if !ok {
			return domain.DictionaryInfo{}, fmt.Errorf("%w: cannot infer format from %q", domain.ErrInvalidInput, dst)
		}
		format = f
	}

	writer, err := s.codec.Writer(format)
	if err != nil {
		return domain.DictionaryInfo{}, err
	}

	store, err := s.codec.Load(ctx, src)
	if err != nil {
		return domain.DictionaryInfo{}, err
	}
	defer store.Close()
	logger.Debug("compile: read %d entries from %s", store.Len(), src)

	if err := writer.Write(ctx, store, dst); err != nil {
		return domain.DictionaryInfo{}, fmt.Errorf("write %s: %w", dst, err)
	}

	written, err := s.codec.Load(ctx, dst)
	if err != nil {
		return domain.DictionaryInfo{}, fmt.Errorf("verify %s: %w", dst, err)
	}
	defer written.Close()

	if written.Len() != store.Len() || len(written.Rules()) != len(store.Rules()) {
		return domain.DictionaryInfo{}, fmt.Errorf("verify %s: wrote %d entries, read back %d",
			dst, store.Len(), written.Len())
	}
	logger.Info("compiled %s -> %s (%s)", src, dst, format)
	return written.Info(), nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
