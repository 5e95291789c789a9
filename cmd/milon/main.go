// Command milon checks Hebrew spelling from the command line.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/milon/internal/adapters/driven/config/file"
	"github.com/custodia-labs/milon/internal/adapters/driven/dictionary"
	"github.com/custodia-labs/milon/internal/adapters/driving/cli"
	"github.com/custodia-labs/milon/internal/core/services"
)

// Set by -ldflags at release time.
var version = "dev"

const envConfigDir = "MILON_CONFIG_DIR"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	configStore, err := file.NewConfigStore(os.Getenv(envConfigDir))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	registry := dictionary.NewRegistry()
	speller := services.NewSpeller(registry, services.SpellerOptionsFrom(*settings))
	defer speller.Close()

	cli.SetVersion(version)
	cli.SetServices(speller, settingsService, services.NewCompileService(registry))

	return cli.Execute()
}
