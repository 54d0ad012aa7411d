package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/export"
	"github.com/megagames/logview/internal/usecase"
)

// NewQueryCommand creates the 'query' subcommand: retrieve logs matching the
// filters and print them to stdout.
func NewQueryCommand() *cobra.Command {
	var flags filterFlags
	var groupBy string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Retrieve and print logs matching the filters",
		Long: `Retrieve logs from the remote store using the most specific index the
filters allow, apply the residual text filters client-side, and print the
result to stdout.

Examples:
  logctl query --date 2024-09-25 --server PRODSERVER
  logctl query --user user-abc --months-back 1
  logctl query --date 2024-09-25 --group-by similar-errors`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			payload, err := renderForTerminal(recs, groupBy)
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			fmt.Fprintf(os.Stderr, "%d logs\n", len(recs))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&groupBy, "group-by", "", "group output: a field name, similar-errors, or user-errors")
	return cmd
}

func renderForTerminal(recs []domain.LogRecord, groupBy string) ([]byte, error) {
	switch groupBy {
	case "":
		return export.Records(recs, export.FormatTXT)
	case "similar-errors":
		return export.Groups(export.FlattenErrors(usecase.GroupBySimilarErrors(recs)), export.FormatTXT)
	case "user-errors":
		g := usecase.GroupByUserThenErrors(recs)
		var out []byte
		for _, user := range g.Users {
			header := fmt.Sprintf("##### User %s #####\n", user)
			payload, err := export.Groups(export.FlattenErrors(g.Groups[user]), export.FormatTXT)
			if err != nil {
				return nil, err
			}
			out = append(out, header...)
			out = append(out, payload...)
			out = append(out, '\n')
		}
		return out, nil
	default:
		field, ok := domain.ParseGroupField(groupBy)
		if !ok {
			return nil, fmt.Errorf("unknown group-by %q", groupBy)
		}
		return export.Groups(export.FlattenExact(usecase.GroupByField(recs, field)), export.FormatTXT)
	}
}
