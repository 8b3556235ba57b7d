// Package main provides the entry point for the queryscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for queryscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queryscan",
		Short: "Generate jq query templates from Ansible module documentation",
		Long: `queryscan inspects the RETURN documentation blocks of an Ansible
collection's modules, discovers identifier fields, and generates a
query file (event_query.yml) of jq templates for indirect inventory.

Point it at a collection on GitHub or at a local checkout with the
standard plugins/modules layout.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
