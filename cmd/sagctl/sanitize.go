package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sag "github.com/sagproto/sag"
)

func newSanitizeCmd() *cobra.Command {
	var file, agentRegistryPath, fromAgent string
	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Run a SAG message through the four-layer inbound firewall",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(file)
			if err != nil {
				return err
			}

			var agentReg *sag.MapAgentRegistry
			if agentRegistryPath != "" {
				agentReg, err = sag.LoadAgentRegistryYAML(agentRegistryPath)
				if err != nil {
					return err
				}
			} else {
				agentReg = sag.NewMapAgentRegistry(nil)
			}

			sanitizer := sag.NewSanitizer(sag.NewRegistry(), agentReg, sag.NewMapContext())
			result := sanitizer.Sanitize(text, fromAgent)

			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintln(out, "valid")
				return nil
			}
			fmt.Fprintln(out, "invalid")
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  [%s] %s (%s): %s\n", e.Layer, e.Code, e.Field, e.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to wire text (default: stdin)")
	cmd.Flags().StringVar(&agentRegistryPath, "agent-registry", "", "path to a YAML agent allow-list file")
	cmd.Flags().StringVar(&fromAgent, "from-agent", "", "override the routing guard's source agent")
	return cmd
}
