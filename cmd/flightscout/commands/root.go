package commands

import (
	"context"
	"log/slog"

	"flightscout/internal/telemetry"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "flightscout",
	Short:         "flightscout collects flight search results into csv files.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			telemetry.InitSlog(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information.")
}

// ExecuteContext runs the command line, the returned error decides the
// exit code.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}
