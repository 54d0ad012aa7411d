package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the 'delete' subcommand. Deletion is irreversible,
// so it refuses to run without --yes.
func NewDeleteCommand() *cobra.Command {
	var path string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a log record or subtree by store path",
		Long: `Remove a node and everything beneath it from the store. The path must lie
under the configured base path.

Example:
  logctl delete --path StreamersMegagames/entries/1727272800000_0001 --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %q without --yes", path)
			}

			env, err := newCLIEnv()
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.records.DeleteByPath(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "deleted %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "store path to delete")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
