package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/milon/internal/core/domain"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <word>",
	Short: "Show how a word decomposes into prefix, stem and suffix",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output decompositions as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

type decompositionView struct {
	Prefix    string `json:"prefix"`
	Stem      string `json:"stem"`
	Suffix    string `json:"suffix"`
	Frequency uint32 `json:"frequency"`
}

type analysisView struct {
	Word           string              `json:"word"`
	Valid          bool                `json:"valid"`
	Decompositions []decompositionView `json:"decompositions"`
}

func newAnalysisView(r domain.AnalysisResult) analysisView {
	v := analysisView{
		Word:           r.Word,
		Valid:          r.Valid,
		Decompositions: make([]decompositionView, 0, len(r.Decompositions)),
	}
	for _, d := range r.Decompositions {
		v.Decompositions = append(v.Decompositions, decompositionView{
			Prefix:    d.Prefix.Affix,
			Stem:      d.Stem,
			Suffix:    d.Suffix.Affix,
			Frequency: d.Entry.Frequency,
		})
	}
	return v
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if _, err := ensureOpen(cmd.Context()); err != nil {
		return err
	}

	result, err := spellService.Analyze(args[0])
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}
	view := newAnalysisView(result)

	out := cmd.OutOrStdout()
	if analyzeJSON {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if !view.Valid {
		fmt.Fprintf(out, "%s %s: no decomposition found\n", styles.Invalid.Render(markInvalid), view.Word)
		return nil
	}
	fmt.Fprintf(out, "%s %s\n", styles.Valid.Render(markValid), view.Word)
	for _, d := range view.Decompositions {
		fmt.Fprintf(out, "  %s + %s + %s %s\n", orDash(d.Prefix), d.Stem, orDash(d.Suffix),
			styles.Muted.Render(fmt.Sprintf("(frequency %d)", d.Frequency)))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
