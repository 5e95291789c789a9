package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary"
	"github.com/custodia-labs/milon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/milon/internal/core/services"
	"github.com/custodia-labs/milon/internal/logger"
)

const testDictionary = `!milon 1
prefix ו 1 0
prefix ה 2 0
suffix ים 1 0

word שלום noun 0 100
word ספר noun 0 40
word ילד noun 0 50
word ילדה noun - 20
`

type testEnv struct {
	dir      string
	dictPath string
	speller  *services.Speller
	settings *services.SettingsService
}

// setupTestServices wires real services over a temp text dictionary and an
// in-memory config store. The returned func restores package state.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	dir := t.TempDir()
	dictPath := filepath.Join(dir, "toy.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte(testDictionary), 0o600))

	registry := dictionary.NewRegistry()
	settings := services.NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.Set(services.KeyDictionaryPath, dictPath))

	speller := services.NewSpeller(registry, services.DefaultSpellerOptions())
	SetServices(speller, settings, services.NewCompileService(registry))

	env := &testEnv{dir: dir, dictPath: dictPath, speller: speller, settings: settings}
	return env, func() {
		_ = speller.Close()
		SetServices(nil, nil, nil)
		resetFlags(rootCmd)
		logger.SetVerbose(false)
	}
}

// resetFlags restores every flag in the command tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}
