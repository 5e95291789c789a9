package cli

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/milon/internal/core/domain"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestSuggestCommand(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "suggest", "ספד")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] ספר")
}

func TestSuggestCommand_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "suggest", "--json", "שלוס")
	require.NoError(t, err)

	var candidates []domain.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	require.NotEmpty(t, candidates)
	assert.Equal(t, "שלום", candidates[0].Word)
	assert.Equal(t, 1, candidates[0].Distance)
	assert.Equal(t, uint32(100), candidates[0].Weight)
}

func TestSuggestCommand_Limit(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "suggest", "--json", "-n", "1", "ילדא")
	require.NoError(t, err)

	var candidates []domain.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	assert.Len(t, candidates, 1)
}

func TestSuggestCommand_LimitFromSettings(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	require.NoError(t, env.settings.Set("suggest.max_results", "1"))

	out, err := execute(t, "", "suggest", "--json", "ילדא")
	require.NoError(t, err)

	var candidates []domain.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	assert.Len(t, candidates, 1)
}

func TestSuggestCommand_NoSuggestions(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "suggest", "אבגדהוזח")
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions.")
}

func TestSuggestCommand_RequiresWord(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "", "suggest")
	assert.Error(t, err)
}
