package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	sag "github.com/sagproto/sag"
)

const replHelpText = `sagctl REPL

Commands:
  parse <text>     Parse a one-line message (a literal \n between header and body)
                   and print its header/statement count
  minify <text>    Parse then re-render <text> to canonical wire form
  know <id> <v>    Assert a fact on topic <id> with float value <v>, print its version
  fact <id>        Print the currently stored value/version for topic <id>
  help             Show this help message
  exit / quit      Exit the REPL
`

func newReplCmd() *cobra.Command {
	var agentID string
	var budget int
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive REPL over a single agent's knowledge engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(agentID, budget)
			return nil
		},
	}
	cmd.Flags().StringVar(&agentID, "agent", "sagctl", "agent id backing this REPL's knowledge engine")
	cmd.Flags().IntVar(&budget, "budget", 0, "knowledge engine fact budget (0 = unbounded)")
	return cmd
}

func runRepl(agentID string, budget int) {
	kengine := sag.NewKnowledgeEngine(agentID, budget)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("sagctl — SAG wire protocol REPL")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Printf("[%s]> ", agentID)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		cmd := strings.ToLower(parts[0])
		rest := ""
		if len(parts) > 1 {
			rest = parts[1]
		}
		// A one-line message marks the header/body boundary with a literal
		// \n; a header-only message needs none.
		text := strings.Replace(rest, `\n`, "\n", 1)
		if !strings.Contains(text, "\n") {
			text += "\n"
		}

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(replHelpText)

		case "parse":
			msg, err := sag.Parse(text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
				continue
			}
			fmt.Printf("header: v%d id=%s src=%s dst=%s ts=%d\n",
				msg.Header.Version, msg.Header.MessageID, msg.Header.Source, msg.Header.Destination, msg.Header.Timestamp)
			fmt.Printf("statements: %d\n", len(msg.Statements))

		case "minify":
			msg, err := sag.Parse(text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
				continue
			}
			fmt.Println(sag.Minify(msg))

		case "know":
			fields := strings.Fields(rest)
			if len(fields) != 2 {
				fmt.Fprintln(os.Stderr, "usage: know <topic> <float-value>")
				continue
			}
			var v float64
			if _, err := fmt.Sscanf(fields[1], "%g", &v); err != nil {
				fmt.Fprintf(os.Stderr, "invalid value %q: %v\n", fields[1], err)
				continue
			}
			version, folded := kengine.AssertFact(fields[0], sag.Float(v))
			fmt.Printf("asserted %s = %g @ %d\n", fields[0], v, version)
			if folded != nil {
				fmt.Printf("auto-folded over budget into %s\n", folded.FoldID)
			}

		case "fact":
			if rest == "" {
				fmt.Fprintln(os.Stderr, "usage: fact <topic>")
				continue
			}
			value, version, ok := kengine.Fact(rest)
			if !ok {
				fmt.Printf("no fact stored for %s\n", rest)
				continue
			}
			fmt.Printf("%s = %g @ %d\n", rest, value.AsFloat(), version)

		default:
			fmt.Fprintf(os.Stderr, "unknown command %q; type \"help\" for usage\n", cmd)
		}
	}
}
