// Command goscript is the reference driver for the scripting language
// implemented by internal/lexer, internal/parser, and internal/interp:
// a thin cobra CLI wrapping the library the way the teacher's dwscript
// command wraps its own lexer/parser/interp packages.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-script/cmd/goscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
