package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/export"
	"github.com/megagames/logview/internal/usecase"
)

// NewExportCommand creates the 'export' subcommand: retrieve logs and write
// them to a file in JSON, CSV, or TXT.
func NewExportCommand() *cobra.Command {
	var flags filterFlags
	var format, out, groupBy string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export logs matching the filters to a file",
		Long: `Retrieve logs and serialize them to a file. The grouped variants carry the
group key, per-group count, and a representative sample message.

Examples:
  logctl export --date 2024-09-25 --format csv --out logs.csv
  logctl export --months-back 1 --format json --group-by similar-errors --out errors.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			env, err := newCLIEnv()
			if err != nil {
				return err
			}
			defer env.close()

			recs, err := env.retriever.Retrieve(cmd.Context(), flags.spec())
			if err != nil {
				return err
			}
			recs = usecase.Dedupe(recs, domain.ParseDedupeMode(flags.dedupe))

			var payload []byte
			switch groupBy {
			case "":
				payload, err = export.Records(recs, f)
			case "similar-errors":
				payload, err = export.Groups(export.FlattenErrors(usecase.GroupBySimilarErrors(recs)), f)
			case "user-errors":
				payload, err = export.Groups(export.FlattenUserErrors(usecase.GroupByUserThenErrors(recs)), f)
			default:
				field, ok := domain.ParseGroupField(groupBy)
				if !ok {
					return fmt.Errorf("unknown group-by %q", groupBy)
				}
				payload, err = export.Groups(export.FlattenExact(usecase.GroupByField(recs, field)), f)
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(os.Stderr, "wrote %d logs to %s\n", len(recs), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "export format: json, csv, or txt")
	cmd.Flags().StringVar(&out, "out", "", "output file path")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "group output: a field name, similar-errors, or user-errors")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
