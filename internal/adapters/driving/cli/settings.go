package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change settings",
	Long: `Shows or changes the settings stored in the config file
($MILON_CONFIG_DIR or ~/.milon/config.toml).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	path := settings.Dictionary.Path
	if path == "" {
		path = styles.Muted.Render("(not set)")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Title.Render("Settings"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dictionary:")
	fmt.Fprintf(out, "  path:            %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Suggest:")
	fmt.Fprintf(out, "  max_results:     %d\n", settings.Suggest.MaxResults)
	fmt.Fprintf(out, "  max_distance:    %d\n", settings.Suggest.MaxDistance)
	fmt.Fprintf(out, "  max_confusions:  %d\n", settings.Suggest.MaxConfusions)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Analyzer:")
	fmt.Fprintf(out, "  restore_finals:  %t\n", settings.Analyzer.RestoreFinals)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Keys: %s\n", styles.Muted.Render(strings.Join(settingsService.Keys(), ", ")))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", styles.Valid.Render(markValid), args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s reset to default\n", styles.Valid.Render(markValid), args[0])
	return nil
}
