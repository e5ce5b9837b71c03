package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/stdthread/internal/report"
)

// NewHistoryCmd returns the history subcommand.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded stress runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			path, err := cc.Flags().GetString("report")
			if err != nil {
				return fmt.Errorf("invalid argument: %w", err)
			}

			ctx := cc.Context()
			store, err := report.Open(ctx, path, slog.Default())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck // read-only

			runs, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cc.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPLATFORM\tWORKERS\tITERATIONS\tROUNDS\tFAILURES\tSTARTED\tDURATION")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					r.ID, r.Platform, r.Workers, r.Iterations, r.Rounds, r.Failures,
					r.StartedAt.UTC().Format(time.RFC3339), r.Duration.Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}
