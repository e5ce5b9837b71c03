// Package cli implements the stdthread-stress command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/giantswarm/stdthread"
)

// DefaultReportPath is the history database used when --report is not set.
const DefaultReportPath = "stdthread-stress.db"

// NewRootCmd returns the stdthread-stress root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stdthread-stress",
		Short: "Stress the stdthread thread and lock abstraction.",
		Long: `Stress the stdthread thread and lock abstraction.

Runs the shared-counter and blocking workloads on a chosen platform and keeps
a history of the results in a SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, json)")
	cmd.PersistentFlags().String("report", DefaultReportPath, "Path of the SQLite history database")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		logLevel, levelErr := flags.GetString("log_level")
		logFormat, formatErr := flags.GetString("log_format")
		if err := errors.Join(levelErr, formatErr); err != nil {
			return fmt.Errorf("invalid argument: %w", err)
		}

		h, err := CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		logger := slog.New(h)
		slog.SetDefault(logger)
		stdthread.SetLogger(logger.With("component", "stdthread"))

		return nil
	}

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())

	return cmd
}
