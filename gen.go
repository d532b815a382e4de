package main

import (
	"fmt"
	"os"

	"mcsat/dimacs"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

func newGenCmd() *cobra.Command {
	var (
		vars    int
		clauses int
		seed    int64
		weights string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random 3-CNF instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if vars < 3 || clauses < 0 {
				return fmt.Errorf("need at least 3 variables and no negative clause count, got %d and %d", vars, clauses)
			}
			inst := dimacs.Generate(vars, clauses, seed)
			if weights != "" {
				mode, err := dimacs.ParseWeighting(weights)
				if err != nil {
					return err
				}
				inst = dimacs.Weighten(inst, mode, rand.New(rand.NewSource(uint64(seed))))
			}

			write := dimacs.Write
			if weights != "" || dimacs.IsWeighted(output) {
				write = dimacs.WriteWeighted
			}
			if output == "" {
				return write(cmd.OutOrStdout(), inst)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			return write(f, inst)
		},
	}
	cmd.Flags().IntVar(&vars, "vars", 50, "number of variables")
	cmd.Flags().IntVar(&clauses, "clauses", 200, "number of clauses")
	cmd.Flags().Int64Var(&seed, "seed", 1, "generator seed")
	cmd.Flags().StringVar(&weights, "weights", "", "re-weight clauses (rand, equal, desc)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; empty writes to stdout")
	return cmd
}
