// Command sagctl is the SAG command-line surface: one-shot parse, minify
// and sanitize commands plus an interactive REPL over a single agent's
// knowledge engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "sagctl",
		Short: "Inspect, validate, and replay SAG wire messages",
	}

	root.AddCommand(newParseCmd())
	root.AddCommand(newMinifyCmd())
	root.AddCommand(newSanitizeCmd())
	root.AddCommand(newReplCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
