package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"flightscout/internal/chrono"
	"flightscout/internal/collector"
	"flightscout/internal/plan"
	"flightscout/internal/scrapers/gflights"
	"flightscout/internal/sink"
	"flightscout/internal/store"
	"flightscout/internal/telemetry"
	"flightscout/lib/util/dumputil"
	"flightscout/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var collectArgs collectFlags

func init() {
	collectArgs.register(collectCmd)
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect --url <search url> [date selection] [--csv-output <file>]",
	Short: "Collects the flight results of every planned date.",
	Long: `Collects the flight results of every planned date.

Dates are picked by the first of these that is given:
  --dates           explicit ISO dates
  --range-start/end every date of an inclusive range
  --target-date     with --year-offsets, the same day in other years
  --target-date     a single date

Exits with 2 when at least one date could not be collected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, explicit := configPath(collectArgs.config, cmd.Flags().Changed("config"))
		cfg, err := loadConfig(path, explicit)
		if err != nil {
			return err
		}
		err = collectArgs.apply(cmd, &cfg)
		if err != nil {
			return err
		}
		return runCollect(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func runCollect(ctx context.Context, out io.Writer, cfg Config) error {
	err := cfg.validate()
	if err != nil {
		return err
	}

	// the plan is resolved before chrome starts so bad input fails fast
	datePlan, warnings, err := plan.Resolve(cfg.planOptions(), chrono.NewStandardTime())
	for _, warning := range warnings {
		slog.Warn(warning)
	}
	if err != nil {
		return err
	}
	slog.Info("resolved date plan", "dates", datePlan.String())

	var runs *store.Store
	if !cfg.Db.Empty() {
		database, err := cfg.Db.OpenDB()
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer database.Close()
		s := store.NewStore(database)
		err = s.Init(ctx)
		if err != nil {
			return fmt.Errorf("init db: %w", err)
		}
		runs = &s
	}

	opts := cfg.collectorOptions()
	if cfg.DumpDir != "" {
		dumps, err := dumputil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return fmt.Errorf("dump dir: %w", err)
		}
		opts.Snapshots = dumps
	}

	session, err := gflights.NewChromeSession(ctx, gflights.ChromeOptions{
		Headless: boolOr(cfg.Headless, true),
		ExecPath: cfg.ChromePath,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	started := time.Now()
	tel := telemetry.NewScopedAPI("collect", telemetry.SlogAPI{})
	result := collector.New(session, tel, opts).Run(ctx, datePlan)
	slog.Info(
		"collection finished",
		"records", len(result.Records),
		"failed_dates", result.Failed(),
		"seconds", time.Since(started).Seconds(),
	)

	if cfg.CsvOutput != "" {
		err = sink.WriteCSVFile(cfg.CsvOutput, result.Records)
		if err != nil {
			return err
		}
		slog.Info("wrote csv", "path", cfg.CsvOutput, "rows", len(result.Records))
	}
	if runs != nil {
		runID, err := runs.Push(ctx, store.PushRequest{
			Time:     started,
			QueryURL: cfg.Url,
			Records:  result.Records,
		})
		if err != nil {
			return fmt.Errorf("store run: %w", err)
		}
		slog.Info("stored run", "run", runID)
	}

	if boolOr(cfg.ShowTable, true) {
		sink.RenderTable(out, result.Records)
	}
	renderSummary(out, result)

	if failed := result.Failed(); failed > 0 {
		return serviceutil.Exit(2, fmt.Errorf("%d of %d dates failed", failed, len(result.Dates)))
	}
	return nil
}
