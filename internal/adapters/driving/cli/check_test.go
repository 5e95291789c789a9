package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/milon/internal/core/domain"
)

func TestCheckCommand_AllValid(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "check", "שלום", "וספרים", "הילדים")
	require.NoError(t, err)
	assert.Contains(t, out, "שלום")
	assert.Contains(t, out, "וספרים")
	assert.NotContains(t, out, markInvalid)
}

func TestCheckCommand_Misspelled(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "check", "שלום", "שלוס")
	require.Error(t, err)

	var miss errMisspelled
	require.True(t, errors.As(err, &miss))
	assert.Equal(t, 1, miss.count)
	assert.Contains(t, out, markInvalid+" שלוס")
}

func TestCheckCommand_Stdin(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "שלום, ספר.\nילד שלוס\n", "check", "--misspelled")
	require.Error(t, err)
	assert.Contains(t, out, "שלוס")
	assert.NotContains(t, out, "ספר")
}

func TestCheckCommand_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "", "check", "--json", "ילדה")
	require.NoError(t, err)

	var results []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, []checkResult{{Word: "ילדה", Valid: true}}, results)
}

func TestCheckCommand_DictFlagOverridesSettings(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "", "check", "--dict", "/nonexistent/milon.dict", "שלום")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestCheckCommand_NoDictionary(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	require.NoError(t, env.settings.Reset("dictionary.path"))

	_, err := execute(t, "", "check", "שלום")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dictionary configured")
}

func TestCheckCommand_NotConfigured(t *testing.T) {
	SetServices(nil, nil, nil)

	_, err := execute(t, "", "check", "שלום")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spell service not configured")
}

func TestReadWords(t *testing.T) {
	words, err := readWords(stringsReader("שלום עולם\n\nצה״ל, ג׳ירפה"))
	require.NoError(t, err)
	assert.Equal(t, []string{"שלום", "עולם", "צה״ל", "ג׳ירפה"}, words)
}
