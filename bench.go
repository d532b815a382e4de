package main

import (
	"mcsat/experiments"
	"mcsat/meta"
	"mcsat/searcher"

	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		runs       int
		goroutines int
		output     string
		textfile   string
	)
	cmd := &cobra.Command{
		Use:   "bench DIR",
		Short: "Run every .cnf and .wcnf instance of a directory",
		Args:  cobra.ExactArgs(1),
	}
	settings := addSettingsFlags(cmd.Flags())
	engineOpts := addEngineFlags(cmd.Flags())
	cmd.Flags().IntVar(&runs, "runs", 1, "runs per instance, seeded seed, seed+1, ...")
	cmd.Flags().IntVar(&goroutines, "goroutines", meta.GO_ROUTINES, "runs in flight")
	cmd.Flags().StringVar(&output, "output", "results", "directory receiving bench/<timestamp>/run_records.csv")
	cmd.Flags().StringVar(&textfile, "textfile", "", "Prometheus textfile receiving the run metrics")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		options, err := settings.options(cmd.Flags())
		if err != nil {
			return err
		}
		e, algorithm, err := engineOpts.engine()
		if err != nil {
			return err
		}
		_, err = experiments.Run(cmd.Context(), experiments.Config{
			Dir:        args[0],
			Algorithm:  algorithm,
			Runs:       runs,
			Seed:       searcher.NewSettings(options...).Seed,
			Goroutines: goroutines,
			OutputDir:  output,
			Textfile:   textfile,
			Engine:     e,
			Options:    options,
		})
		return err
	}
	return cmd
}
