package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the configured dictionary",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	if _, err := ensureOpen(cmd.Context()); err != nil {
		return err
	}

	info, err := spellService.Info()
	if err != nil {
		return fmt.Errorf("failed to get dictionary info: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Title.Render("Dictionary"))
	fmt.Fprintf(out, "  Path:     %s\n", info.Path)
	fmt.Fprintf(out, "  Format:   %s (%s)\n", info.Format, info.Format.Description())
	fmt.Fprintf(out, "  Version:  %d\n", info.Version)
	fmt.Fprintf(out, "  Entries:  %d\n", info.Entries)
	fmt.Fprintf(out, "  Rules:    %d\n", info.Rules)
	fmt.Fprintf(out, "  Loaded:   %s\n", info.LoadedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "  Instance: %s\n", styles.Muted.Render(info.ID))
	return nil
}
