package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/milon/internal/core/domain"
)

func TestCompileCommand(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	dst := filepath.Join(env.dir, "toy.dict")
	out, err := execute(t, "", "compile", env.dictPath, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "binary, 4 entries, 3 rules")

	// The compiled dictionary answers through --dict.
	out, err = execute(t, "", "check", "--dict", dst, "וספרים")
	require.NoError(t, err)
	assert.Contains(t, out, "וספרים")
}

func TestCompileCommand_FormatFlag(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	dst := filepath.Join(env.dir, "toy.out")
	out, err := execute(t, "", "compile", "--format", "sqlite", env.dictPath, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
}

func TestCompileCommand_UnknownFormat(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "", "compile", "--format", "xml", env.dictPath, filepath.Join(env.dir, "toy.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompileCommand_NotConfigured(t *testing.T) {
	SetServices(nil, nil, nil)

	_, err := execute(t, "", "compile", "a.txt", "b.dict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile service not configured")
}
