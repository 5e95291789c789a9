package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/milon/internal/core/domain"
)

var compileFormat string

var compileCmd = &cobra.Command{
	Use:   "compile <src> <dst>",
	Short: "Convert a dictionary to another format",
	Long: `Loads a dictionary in any supported format and writes it to dst.
The output format is taken from --format, or else from dst's extension:
  .dict  binary
  .txt   text
  .db    sqlite`,
	Args: cobra.ExactArgs(2),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&compileFormat, "format", "", "output format (binary, text, sqlite)")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	if compileService == nil {
		return errors.New("compile service not configured")
	}

	format := domain.DictionaryFormat(compileFormat)
	if format != "" && !format.IsValid() {
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, compileFormat)
	}

	info, err := compileService.Compile(cmd.Context(), args[0], args[1], format)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s (%s, %d entries, %d rules)\n",
		styles.Valid.Render(markValid), info.Path, info.Format, info.Entries, info.Rules)
	return nil
}
