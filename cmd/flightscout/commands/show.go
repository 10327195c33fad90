package commands

import (
	"fmt"

	"flightscout/internal/sink"
	"flightscout/internal/store"
	configlibsql "flightscout/lib/configutil/libsql"

	"github.com/spf13/cobra"
)

var (
	showDb     string
	showRun    int64
	showOutput string
)

func init() {
	showCmd.Flags().StringVar(&showDb, "db", "flightscout.db", "The sqlite database collect stored runs in.")
	showCmd.Flags().Int64Var(&showRun, "run", 0, "The run to show, defaults to the latest.")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "Export the run to this csv file instead of printing it.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--db flightscout.db] [--run <id>] [-o out.csv]",
	Short: "Prints a stored run.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := configlibsql.Struct{File: showDb}.OpenDB()
		if err != nil {
			return err
		}
		defer database.Close()
		runs := store.NewStore(database)
		err = runs.Init(ctx)
		if err != nil {
			return err
		}

		runID := showRun
		if runID == 0 {
			latest, err := runs.LatestRun(ctx)
			if err != nil {
				return err
			}
			runID = latest.ID
		}

		records, err := runs.Pull(ctx, runID)
		if err != nil {
			return fmt.Errorf("read run %d: %w", runID, err)
		}
		if showOutput != "" {
			return sink.WriteCSVFile(showOutput, records)
		}
		sink.RenderTable(cmd.OutOrStdout(), records)
		return nil
	},
}
