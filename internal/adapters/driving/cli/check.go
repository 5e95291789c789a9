package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/milon/internal/hebrew"
)

var (
	checkJSON    bool
	checkOnlyBad bool
)

var checkCmd = &cobra.Command{
	Use:   "check [words...]",
	Short: "Check the spelling of words",
	Long: `Checks each word against the dictionary. With no arguments, words are
read from standard input one line at a time.

Exits with an error when any word is misspelled.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output results as JSON")
	checkCmd.Flags().BoolVar(&checkOnlyBad, "misspelled", false, "only print misspelled words")
	rootCmd.AddCommand(checkCmd)
}

type checkResult struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

// errMisspelled is returned when check found unknown words.
type errMisspelled struct {
	count int
}

func (e errMisspelled) Error() string {
	return fmt.Sprintf("%d misspelled word(s)", e.count)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if _, err := ensureOpen(cmd.Context()); err != nil {
		return err
	}

	words := args
	if len(words) == 0 {
		var err error
		words, err = readWords(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	results := make([]checkResult, 0, len(words))
	bad := 0
	for _, w := range words {
		ok, err := spellService.Check(w)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if !ok {
			bad++
		}
		if checkOnlyBad && ok {
			continue
		}
		results = append(results, checkResult{Word: w, Valid: ok})
	}

	if checkJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		out := cmd.OutOrStdout()
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "%s %s\n", styles.Valid.Render(markValid), r.Word)
			} else {
				fmt.Fprintf(out, "%s %s\n", styles.Invalid.Render(markInvalid), r.Word)
			}
		}
	}

	if bad > 0 {
		return errMisspelled{count: bad}
	}
	return nil
}

// readWords tokenises r a line at a time.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, hebrew.Words(scanner.Text())...)
	}
	return words, scanner.Err()
}
