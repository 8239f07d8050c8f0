package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its syntax tree",
	Long: `Parse a script and print the resulting syntax tree.

If no file is given, source is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, name, err := readSource(args)
	if err != nil {
		return err
	}

	p, _, err := newParser(source, cfg)
	if err != nil {
		return fmt.Errorf("lexing %s: %w", name, err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	fmt.Println(prog.String())
	return nil
}
