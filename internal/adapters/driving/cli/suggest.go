package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/milon/internal/core/domain"
)

var (
	suggestLimitFlag int
	suggestJSON      bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <word>",
	Short: "Suggest corrections for a word",
	Long: `Suggests dictionary words close to the given word, ranked by edit
distance and then by frequency. The word itself is never suggested.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimitFlag, "limit", "n", 10, "maximum number of suggestions (default from suggest.max_results)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if _, err := ensureOpen(cmd.Context()); err != nil {
		return err
	}

	limit := suggestLimitFlag
	if !cmd.Flags().Changed("limit") {
		limit = suggestLimit()
	}

	candidates, err := spellService.Suggest(args[0], limit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if suggestJSON {
		data, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suggestions: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	outputSuggestions(cmd, candidates)
	return nil
}

func outputSuggestions(cmd *cobra.Command, candidates []domain.Candidate) {
	out := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintln(out, "No suggestions.")
		return
	}
	for i, c := range candidates {
		fmt.Fprintf(out, "  [%d] %s %s\n", i+1, styles.Suggestion.Render(c.Word),
			styles.Muted.Render(fmt.Sprintf("(distance %d, weight %d)", c.Distance, c.Weight)))
	}
}
