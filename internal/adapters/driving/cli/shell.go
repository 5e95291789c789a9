package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/milon/internal/adapters/driving/watch"
	"github.com/custodia-labs/milon/internal/hebrew"
)

const shellSuggestions = 5

var shellWatch bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Check lines of text interactively",
	Long: `Reads lines of text and reports each misspelled word with its top
suggestions. Enter an empty line or press Ctrl-D to quit.

With --watch the dictionary is reloaded whenever its file changes.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&shellWatch, "watch", false, "reload the dictionary when its file changes")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	path, err := ensureOpen(ctx)
	if err != nil {
		return err
	}

	if shellWatch {
		w, err := watch.New(spellService, path, watch.Options{
			OnReload: func(err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s reload failed: %v\n", styles.Warning.Render("!"), err)
					return
				}
				fmt.Fprintln(cmd.ErrOrStderr(), styles.Muted.Render("dictionary reloaded"))
			},
		})
		if err != nil {
			return fmt.Errorf("failed to watch dictionary: %w", err)
		}
		defer w.Close()
		go func() { _ = w.Run(ctx) }()
	}

	in := cmd.InOrStdin()
	prompt := isTerminal(in)
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, styles.Title.Render("milon> "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if err := checkLine(out, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func checkLine(out io.Writer, line string) error {
	bad := 0
	for _, w := range hebrew.Words(line) {
		ok, err := spellService.Check(w)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if ok {
			continue
		}
		bad++
		candidates, err := spellService.Suggest(w, shellSuggestions)
		if err != nil {
			return fmt.Errorf("suggest failed: %w", err)
		}
		words := make([]string, len(candidates))
		for i, c := range candidates {
			words[i] = styles.Suggestion.Render(c.Word)
		}
		fmt.Fprintf(out, "%s %s: %s\n", styles.Invalid.Render(markInvalid), w, strings.Join(words, ", "))
	}
	if bad == 0 {
		fmt.Fprintln(out, styles.Valid.Render(markValid))
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
