package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellCommand(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "שלום ספר\nהילד שלוס\n\nספד\n", "shell")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, markValid, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], markInvalid+" שלוס: שלום"), lines[1])
	// Input after the empty line is never read.
	assert.NotContains(t, out, "ספד")
}

func TestShellCommand_NoPromptWithoutTerminal(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "שלום\n", "shell")
	require.NoError(t, err)
	assert.NotContains(t, out, "milon>")
}

func TestShellCommand_Watch(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "שלום\n", "shell", "--watch")
	require.NoError(t, err)
	assert.Contains(t, out, markValid)
}
