package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <code>",
	Short: "Evaluate an inline code snippet",
	Long: `Evaluate a single snippet of source code given directly on the
command line, the CLI equivalent of the original REPL's "-e" switch.
Arguments configured via --config's "args" field are available to the
snippet the same way they are to a script run with "run".`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Args) > 0 {
		verbosef("args: %v\n", cfg.Args)
	}
	return runSource(args[0], fmt.Sprintf("%q", args[0]), cfg)
}
