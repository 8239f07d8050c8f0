package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-script/internal/config"
)

var (
	// Version is set at build time via -ldflags.
	Version = "0.1.0-dev"

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "goscript",
	Short: "A tree-walking interpreter for a small dynamically-typed scripting language",
	Long: `goscript lexes, parses, and evaluates scripts written in a small
dynamically-typed language with copy-on-write arrays, dictionaries, pure
and impure functions, and exception-based error handling.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
}

// loadConfig reads --config if given, returning a zero-value Config
// otherwise so callers never need a nil check.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return &config.Config{}, nil
	}
	return config.Load(configPath)
}

func verbosef(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
