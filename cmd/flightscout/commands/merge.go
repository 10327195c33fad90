package commands

import (
	"log/slog"

	"flightscout/internal/sink"

	"github.com/spf13/cobra"
)

var mergeOutput string

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.csv", "The file to write the merged csv to.")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge [-o merged.csv] <a.csv> <b.csv> ...",
	Short: "Concatenates the csv files of several collect runs under one header.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := sink.MergeFiles(mergeOutput, args)
		if err != nil {
			return err
		}
		slog.Info("merged csv files", "inputs", len(args), "rows", rows, "output", mergeOutput)
		return nil
	},
}
