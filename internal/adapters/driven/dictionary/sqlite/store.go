// Package sqlite stores dictionaries as SQLite databases. Loading copies the
// tables into a memory store and closes the database, so lookups never touch
// SQL.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/memory"
	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary/sqlite/migrations"
	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/logger"
)

// Magic is the SQLite database header.
const Magic = "SQLite format 3\x00"

// Version is the dictionary schema version stored in meta.format_version.
const Version = 1

// Ensure interface compliance.
var (
	_ driven.DictionaryLoader = (*Loader)(nil)
	_ driven.DictionaryWriter = (*Writer)(nil)
)

// Loader reads SQLite dictionaries.
type Loader struct{}

// NewLoader creates a SQLite loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load opens path read-only and copies its tables into memory.
func (l *Loader) Load(ctx context.Context, path string) (driven.DictionaryStore, error) {
	start := time.Now()

	// The driver creates missing files, so check first.
	if err := checkHeader(path); err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, domain.NewLoadError(path, fmt.Errorf("opening database: %w", err))
	}
	defer db.Close()

	store, err := read(ctx, db, path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	logger.Debug("sqlite: loaded %d entries, %d rules from %s in %s",
		store.Len(), len(store.Rules()), path, time.Since(start))
	return store, nil
}

func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("%w: not a database", domain.ErrUnsupportedFormat)
	}
	if !bytes.Equal(header, []byte(Magic)) {
		return fmt.Errorf("%w: not a database", domain.ErrUnsupportedFormat)
	}
	return nil
}

func read(ctx context.Context, db *sql.DB, path string) (*memory.Store, error) {
	var raw string
	err := db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'format_version'").Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || strings.Contains(err.Error(), "no such table") {
			return nil, fmt.Errorf("%w: no dictionary metadata", domain.ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: format_version %q", domain.ErrMalformed, raw)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, version)
	}

	rules, err := readRules(ctx, db)
	if err != nil {
		return nil, err
	}
	entries, err := readEntries(ctx, db)
	if err != nil {
		return nil, err
	}

	return memory.New(domain.DictionaryInfo{
		Path:    path,
		Format:  domain.FormatSQLite,
		Version: version,
	}, rules, entries)
}

func readRules(ctx context.Context, db *sql.DB) ([]domain.AffixRule, error) {
	rows, err := db.QueryContext(ctx, "SELECT kind, affix, priority, patterns FROM rules ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.AffixRule
	for rows.Next() {
		var kind, priority, patterns int64
		var affix string
		if err := rows.Scan(&kind, &affix, &priority, &patterns); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		if priority < 0 || priority > 1<<16-1 {
			return nil, fmt.Errorf("%w: rule priority %d", domain.ErrMalformed, priority)
		}
		rules = append(rules, domain.AffixRule{
			Kind:     domain.AffixKind(kind),
			Affix:    affix,
			Patterns: domain.PatternSet(uint64(patterns)),
			Priority: uint16(priority),
		})
	}
	return rules, rows.Err()
}

func readEntries(ctx context.Context, db *sql.DB) ([]domain.DictionaryEntry, error) {
	// BINARY collation orders UTF-8 bytewise, matching Go string order.
	rows, err := db.QueryContext(ctx, "SELECT stem, patterns, pos, frequency FROM entries ORDER BY stem")
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.DictionaryEntry
	for rows.Next() {
		var stem string
		var patterns, pos, freq int64
		if err := rows.Scan(&stem, &patterns, &pos, &freq); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if pos < 0 || pos > 255 || !domain.PartOfSpeech(pos).IsValid() || freq < 0 || freq > 1<<32-1 {
			return nil, fmt.Errorf("%w: entry %q", domain.ErrMalformed, stem)
		}
		entries = append(entries, domain.DictionaryEntry{
			Stem:      stem,
			Patterns:  domain.PatternSet(uint64(patterns)),
			POS:       domain.PartOfSpeech(pos),
			Frequency: uint32(freq),
		})
	}
	return entries, rows.Err()
}

// Writer creates SQLite dictionaries.
type Writer struct{}

// NewWriter creates a SQLite writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns FormatSQLite.
func (w *Writer) Format() domain.DictionaryFormat {
	return domain.FormatSQLite
}

// Write builds a fresh database next to path and renames it into place.
func (w *Writer) Write(ctx context.Context, store driven.DictionaryStore, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := writeDB(ctx, tmpPath, store); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename dictionary: %w", err)
	}
	return nil
}

func writeDB(ctx context.Context, path string, store driven.DictionaryStore) error {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(DELETE)&_pragma=synchronous(OFF)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := migrate(db, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, r := range store.Rules() {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO rules (kind, affix, priority, patterns) VALUES (?, ?, ?, ?)",
			int64(r.Kind), r.Affix, int64(r.Priority), int64(uint64(r.Patterns)))
		if err != nil {
			return fmt.Errorf("inserting rule %q: %w", r.Affix, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO entries (stem, patterns, pos, frequency) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for e := range store.All() {
		_, err := stmt.ExecContext(ctx, e.Stem, int64(uint64(e.Patterns)), int64(e.POS), int64(e.Frequency))
		if err != nil {
			return fmt.Errorf("inserting entry %q: %w", e.Stem, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// migrate applies every embedded *.up.sql newer than the recorded schema
// version, in file-name order.
func migrate(db *sql.DB, fsys fs.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".up.sql") {
			upFiles = append(upFiles, f.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}
