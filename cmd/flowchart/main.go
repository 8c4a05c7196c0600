// Package main provides the flowchart developer CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var envFiles []string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flowchart",
		Short:         "Drive the flowchart graph state engine from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env", nil, ".env files to load before reading FLOWCHART_* variables")

	root.AddCommand(newVersionCmd(), newReplayCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Process Flowchart %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
