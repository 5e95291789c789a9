package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/core/ports/driving"
	"github.com/custodia-labs/milon/internal/logger"
)

// Ensure Speller implements the interface.
var _ driving.SpellService = (*Speller)(nil)

// SpellerOptions configures every session a Speller opens.
type SpellerOptions struct {
	Analyzer  AnalyzerOptions
	Suggester SuggesterOptions
}

// DefaultSpellerOptions mirrors domain.DefaultSettings.
func DefaultSpellerOptions() SpellerOptions {
	return SpellerOptionsFrom(domain.DefaultSettings())
}

// SpellerOptionsFrom maps user settings to speller options.
func SpellerOptionsFrom(settings domain.Settings) SpellerOptions {
	return SpellerOptions{
		Analyzer: AnalyzerOptions{
			RestoreFinals: settings.Analyzer.RestoreFinals,
		},
		Suggester: SuggesterOptions{
			MaxDistance:   settings.Suggest.MaxDistance,
			MaxConfusions: settings.Suggest.MaxConfusions,
		},
	}
}

// session is one loaded dictionary with its analyzer and suggester.
// It is never modified after creation.
type session struct {
	store     driven.DictionaryStore
	analyzer  *Analyzer
	suggester *Suggester
}

// Speller is the query façade. It is Uninitialized until Open succeeds.
// Queries are lock-free and may run concurrently with each other and with
// Open or Close; a query that started before a swap finishes against the
// dictionary it started with.
type Speller struct {
	loader driven.DictionaryLoader
	opts   SpellerOptions

	mu      sync.Mutex // serialises Open and Close
	current atomic.Pointer[session]
}

// NewSpeller creates an Uninitialized speller that loads through loader.
func NewSpeller(loader driven.DictionaryLoader, opts SpellerOptions) *Speller {
	return &Speller{
		loader: loader,
		opts:   opts,
	}
}

// Open loads the dictionary at path. When a dictionary is already open the
// new one replaces it only if it loads; otherwise the old one stays in use.
func (s *Speller) Open(ctx context.Context, path string) error {
	if path == "" {
		return domain.NewLoadError(path, fmt.Errorf("%w: empty dictionary path", domain.ErrInvalidInput))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Open Dictionary")
	defer logger.Timed("open " + path)()

	store, err := s.loader.Load(ctx, path)
	if err != nil {
		return domain.NewLoadError(path, err)
	}
	if err := ctx.Err(); err != nil {
		_ = store.Close()
		return domain.NewLoadError(path, err)
	}

	analyzer := NewAnalyzer(store, s.opts.Analyzer)
	next := &session{
		store:     store,
		analyzer:  analyzer,
		suggester: NewSuggester(analyzer, s.opts.Suggester),
	}

	if prev := s.current.Swap(next); prev != nil {
		logger.Debug("replacing dictionary %s", prev.store.Info().ID)
		if err := prev.store.Close(); err != nil {
			logger.Warn("closing previous dictionary: %v", err)
		}
	}

	info := store.Info()
	logger.Info("dictionary %s ready: %d entries, %d rules (%s v%d)",
		info.ID, info.Entries, info.Rules, info.Format, info.Version)
	return nil
}

// Close releases the dictionary. Closing an Uninitialized speller is a
// no-op.
func (s *Speller) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Swap(nil)
	if prev == nil {
		return nil
	}
	logger.Debug("closing dictionary %s", prev.store.Info().ID)
	return prev.store.Close()
}

// State reports whether a dictionary is open.
func (s *Speller) State() domain.State {
	if s.current.Load() == nil {
		return domain.StateUninitialized
	}
	return domain.StateReady
}

func (s *Speller) session() (*session, error) {
	sess := s.current.Load()
	if sess == nil {
		return nil, domain.ErrNotReady
	}
	return sess, nil
}

// Check reports whether word is valid.
func (s *Speller) Check(word string) (bool, error) {
	sess, err := s.session()
	if err != nil {
		return false, err
	}
	return sess.analyzer.Accepts(word), nil
}

// Analyze returns every decomposition of word, best first.
func (s *Speller) Analyze(word string) (domain.AnalysisResult, error) {
	sess, err := s.session()
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return sess.analyzer.Analyze(word), nil
}

// Suggest returns up to maxResults ranked corrections for word.
func (s *Speller) Suggest(word string, maxResults int) ([]domain.Candidate, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return sess.suggester.Suggest(word, maxResults), nil
}

// Info describes the open dictionary.
func (s *Speller) Info() (domain.DictionaryInfo, error) {
	sess, err := s.session()
	if err != nil {
		return domain.DictionaryInfo{}, err
	}
	return sess.store.Info(), nil
}
