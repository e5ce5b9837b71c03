package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/giantswarm/stdthread"
	"github.com/giantswarm/stdthread/internal/report"
	"github.com/giantswarm/stdthread/internal/sentinel"
	"github.com/giantswarm/stdthread/internal/stress"
)

// ErrStressFailed is returned by the run command when any round fails.
const ErrStressFailed = sentinel.Error("stress run failed")

// NewRunCmd returns the run subcommand.
func NewRunCmd() *cobra.Command {
	var (
		platformName string
		params       stress.Params
		noRecord     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the counter and blocking workloads",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			p, err := stdthread.ParsePlatform(platformName)
			if err != nil {
				return fmt.Errorf("invalid --platform: %w", err)
			}
			params.Platform = p

			ctx := cc.Context()
			res, err := stress.Run(ctx, params)
			if err != nil {
				return err
			}

			out := cc.OutOrStdout()
			for _, r := range res.Rounds {
				status := "ok"
				if !r.Passed() {
					status = "FAIL"
				}
				fmt.Fprintf(out, "round %d: counter=%d/%d blocked=%t %s (%s)\n",
					r.Index, r.Counter, r.Expected, r.Blocked, status, r.Duration)
			}
			fmt.Fprintf(out, "run %s on %s: %d/%d rounds passed in %s\n",
				res.ID, res.Platform, len(res.Rounds)-res.Failures(), len(res.Rounds), res.Duration)

			if !noRecord {
				path, err := cc.Flags().GetString("report")
				if err != nil {
					return fmt.Errorf("invalid argument: %w", err)
				}
				store, err := report.Open(ctx, path, slog.Default())
				if err != nil {
					return err
				}
				defer store.Close() //nolint:errcheck // read-only after Record; nothing to flush

				if err := store.Record(ctx, res); err != nil {
					return err
				}
			}

			if !res.Passed() {
				return fmt.Errorf("%w: %d of %d rounds", ErrStressFailed, res.Failures(), len(res.Rounds))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&platformName, "platform", stdthread.DefaultPlatform.String(), "Platform to run on (pinned, scheduled)")
	flags.IntVar(&params.Workers, "workers", stress.DefaultWorkers, "Threads incrementing the shared counter")
	flags.IntVar(&params.Iterations, "iterations", stress.DefaultIterations, "Increments per thread")
	flags.IntVar(&params.Rounds, "rounds", stress.DefaultRounds, "Independent rounds, each on its own runtime")
	flags.IntVar(&params.Parallelism, "parallelism", 0, "Rounds run at once (0 = all)")
	flags.BoolVar(&noRecord, "no-record", false, "Do not store the result in the history database")

	return cmd
}
