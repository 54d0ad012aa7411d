// Package main provides the CLI entry point for the log viewer operator tool.
// It offers three commands against the remote log store:
// 1. query  - Retrieve and print logs matching a set of filters
// 2. export - Serialize matching logs to a JSON, CSV, or TXT file
// 3. delete - Remove a record or subtree by store path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/megagames/logview/internal/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "logctl",
		Short: "Operator CLI for the hierarchical log store",
		Long: `logctl queries the same remote key-value tree the viewer service reads.
It picks the most specific index the filters allow, resolves the matching
records, and prints, exports, or deletes them.`,
	}

	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
