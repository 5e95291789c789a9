package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary"
	"github.com/custodia-labs/milon/internal/core/domain"
)

const compileSource = `!milon 1
prefix ה 1 0
suffix ים 1 1
word ספר noun 0,1 40
word שלום noun - 100
word מלך noun 1 30
`

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.txt")
	require.NoError(t, os.WriteFile(path, []byte(compileSource), 0o600))
	return path
}

func TestCompileService_EveryFormat(t *testing.T) {
	src := writeSource(t)
	svc := NewCompileService(dictionary.NewRegistry())

	for _, f := range domain.AllDictionaryFormats() {
		t.Run(string(f), func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "he"+f.Extension())

			info, err := svc.Compile(context.Background(), src, dst, f)
			require.NoError(t, err)
			assert.Equal(t, f, info.Format)
			assert.Equal(t, 3, info.Entries)
			assert.Equal(t, 2, info.Rules)
			assert.Equal(t, dst, info.Path)
		})
	}
}

func TestCompileService_RoundTripPreservesAnswers(t *testing.T) {
	src := writeSource(t)
	dir := t.TempDir()
	svc := NewCompileService(dictionary.NewRegistry())

	bin := filepath.Join(dir, "he.dict")
	_, err := svc.Compile(context.Background(), src, bin, domain.FormatBinary)
	require.NoError(t, err)
	db := filepath.Join(dir, "he.db")
	_, err = svc.Compile(context.Background(), bin, db, "")
	require.NoError(t, err)

	words := []string{"הספר", "ספרים", "מלכים", "השלום", "שלום", "ספק"}
	var want []bool
	for i, path := range []string{src, bin, db} {
		s := NewSpeller(dictionary.NewRegistry(), DefaultSpellerOptions())
		require.NoError(t, s.Open(context.Background(), path))
		for j, w := range words {
			ok, err := s.Check(w)
			require.NoError(t, err)
			if i == 0 {
				want = append(want, ok)
			} else {
				assert.Equal(t, want[j], ok, "%s in %s", w, path)
			}
		}
		require.NoError(t, s.Close())
	}
	assert.Equal(t, []bool{true, true, true, false, true, false}, want)
}

func TestCompileService_InfersFormat(t *testing.T) {
	src := writeSource(t)
	dst := filepath.Join(t.TempDir(), "he.dict")

	info, err := NewCompileService(dictionary.NewRegistry()).Compile(context.Background(), src, dst, "")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatBinary, info.Format)
}

func TestCompileService_Errors(t *testing.T) {
	src := writeSource(t)
	dir := t.TempDir()
	svc := NewCompileService(dictionary.NewRegistry())

	_, err := svc.Compile(context.Background(), src, filepath.Join(dir, "he.json"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Compile(context.Background(), src, filepath.Join(dir, "he.out"), "xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Compile(context.Background(), src, src, domain.FormatText)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Compile(context.Background(), "", filepath.Join(dir, "he.dict"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Compile(context.Background(), filepath.Join(dir, "missing.txt"), filepath.Join(dir, "he.dict"), "")
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
