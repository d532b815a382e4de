package main

import (
	"fmt"
	"strconv"
	"strings"

	"mcsat/dimacs"
	"mcsat/experiments/metrics"
	"mcsat/searcher"

	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Search one instance and print the best assignment",
		Long: `Search one instance and print the best assignment found.
Files ending in .wcnf are read as weighted instances.

The result is printed as an "o <score>" line followed by a
"v <literals> 0" line.`,
		Args: cobra.ExactArgs(1),
	}
	settings := addSettingsFlags(cmd.Flags())
	engineOpts := addEngineFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		options, err := settings.options(cmd.Flags())
		if err != nil {
			return err
		}
		e, algorithm, err := engineOpts.engine()
		if err != nil {
			return err
		}
		inst, err := dimacs.ReadFile(args[0])
		if err != nil {
			return err
		}

		options = append(options, searcher.WithMetrics(metrics.NewCollector()))
		outcome, err := e.Solve(cmd.Context(), inst, algorithm, options...)
		if err != nil {
			return err
		}

		lits := make([]string, 0, inst.NVars+1)
		for _, m := range outcome.Assignment.Dimacs() {
			lits = append(lits, strconv.Itoa(m))
		}
		lits = append(lits, "0")
		fmt.Fprintf(cmd.OutOrStdout(), "o %s\n", strconv.FormatFloat(outcome.Score, 'g', -1, 64))
		fmt.Fprintf(cmd.OutOrStdout(), "v %s\n", strings.Join(lits, " "))
		return nil
	}
	return cmd
}
