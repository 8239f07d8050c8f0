package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-script/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script and print the resulting tokens",
	Long: `Tokenize a script and print the resulting tokens, one per line.

If no file is given, source is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	source, _, err := readSource(args)
	if err != nil {
		return err
	}

	lines := strings.Split(source, "\n")
	total := 0
	for i, line := range lines {
		lineNo := i + 1
		toks, err := lexer.Lex(line, lineNo)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, tok := range toks {
			printToken(tok)
			total++
		}
	}
	verbosef("total tokens: %d\n", total)
	return nil
}

func printToken(tok lexer.Token) {
	switch tok.Kind {
	case lexer.Operator:
		fmt.Printf("[%-10s] %q @%d:%d\n", tok.Kind, tok.Text, tok.Start.Line, tok.Start.Column)
	case lexer.Keyword:
		fmt.Printf("[%-10s] %s @%d:%d\n", tok.Kind, tok.Kw, tok.Start.Line, tok.Start.Column)
	default:
		fmt.Printf("[%-10s] %q @%d:%d\n", tok.Kind, tok.Text, tok.Start.Line, tok.Start.Column)
	}
}

// readSource resolves the "[file]" command-line convention shared by
// lex/parse/run: a path argument reads a file, no argument reads stdin.
// It returns the source text and a display name for diagnostics.
func readSource(args []string) (string, string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
