package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCommand(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "info")
	require.NoError(t, err)
	assert.Contains(t, out, env.dictPath)
	assert.Contains(t, out, "Format:   text")
	assert.Contains(t, out, "Entries:  4")
	assert.Contains(t, out, "Rules:    3")
}

func TestInfoCommand_ReusesOpenDictionary(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "", "info")
	require.NoError(t, err)
	first, err := env.speller.Info()
	require.NoError(t, err)

	_, err = execute(t, "", "info")
	require.NoError(t, err)
	second, err := env.speller.Info()
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
