package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	sag "github.com/sagproto/sag"
)

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

func newParseCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a SAG wire message and print its statement count and header",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(file)
			if err != nil {
				return err
			}
			msg, err := sag.Parse(text)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "header: v%d id=%s src=%s dst=%s ts=%d\n",
				msg.Header.Version, msg.Header.MessageID, msg.Header.Source, msg.Header.Destination, msg.Header.Timestamp)
			fmt.Fprintf(cmd.OutOrStdout(), "statements: %d\n", len(msg.Statements))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to wire text (default: stdin)")
	return cmd
}

func newMinifyCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "minify",
		Short: "Parse then re-render a SAG message to its canonical wire form",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(file)
			if err != nil {
				return err
			}
			msg, err := sag.Parse(text)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			wire := sag.Minify(msg)
			fmt.Fprintln(cmd.OutOrStdout(), wire)
			fmt.Fprintf(cmd.ErrOrStderr(), "tokens: %d\n", sag.TokenCount(wire))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to wire text (default: stdin)")
	return cmd
}
