// Package cli provides the cobra commands of the milon binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driving"
	"github.com/custodia-labs/milon/internal/logger"
)

var version = "dev"

// EnvDictionary names the dictionary when --dict is not given.
const EnvDictionary = "MILON_DICTIONARY"

var (
	spellService    driving.SpellService
	settingsService driving.SettingsService
	compileService  driving.CompileService
)

var (
	dictFlag    string
	verboseFlag bool

	// openedPath is the dictionary spellService currently holds.
	openedPath string
)

var rootCmd = &cobra.Command{
	Use:   "milon",
	Short: "Hebrew spell checker",
	Long: `milon checks Hebrew spelling against a prefix-compressed dictionary
of stems and affix rules, and suggests corrections for unknown words.

The dictionary comes from --dict, $MILON_DICTIONARY or the
dictionary.path setting, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dictFlag, "dict", "", "dictionary file (.dict, .txt or .db)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log to stderr")
}

// SetServices wires the services the commands use.
func SetServices(spell driving.SpellService, settings driving.SettingsService, compile driving.CompileService) {
	spellService = spell
	settingsService = settings
	compileService = compile
	openedPath = ""
}

// SetVersion sets the version reported by `milon version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// dictionaryPath resolves the dictionary to open.
func dictionaryPath() (string, error) {
	if dictFlag != "" {
		return dictFlag, nil
	}
	if path := os.Getenv(EnvDictionary); path != "" {
		return path, nil
	}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return "", fmt.Errorf("failed to get settings: %w", err)
		}
		if settings.Dictionary.Path != "" {
			return settings.Dictionary.Path, nil
		}
	}
	return "", errors.New("no dictionary configured: pass --dict or run 'milon settings set dictionary.path <file>'")
}

// ensureOpen opens the configured dictionary unless it is already open.
func ensureOpen(ctx context.Context) (string, error) {
	if spellService == nil {
		return "", errors.New("spell service not configured")
	}
	path, err := dictionaryPath()
	if err != nil {
		return "", err
	}
	if spellService.State() == domain.StateReady && path == openedPath {
		return path, nil
	}
	if err := spellService.Open(ctx, path); err != nil {
		return "", err
	}
	openedPath = path
	return path, nil
}

// suggestLimit is the configured number of suggestions.
func suggestLimit() int {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			return settings.Suggest.MaxResults
		}
	}
	return domain.DefaultSettings().Suggest.MaxResults
}
