package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leengari/crackdb/internal/crack"
	"github.com/leengari/crackdb/internal/engine"
	"github.com/leengari/crackdb/internal/graph"
)

func newCompareCommand() *cobra.Command {
	var (
		nodes int64
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the same workload under every strategy and check the results agree",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			src, dst := randomTree(nodes, seed)
			out := cmd.OutOrStdout()

			var reference [][]int64
			for _, s := range crack.Strategies() {
				opts := append([]engine.Option{engine.WithStrategy(s)}, rt.options...)
				adj, err := graph.BuildAdjacency(src, dst, graph.Src, opts...)
				if err != nil {
					return err
				}

				var results [][]int64
				for node := int64(1); node <= nodes; node++ {
					nbrs, err := adj.Neighbors(node)
					if err != nil {
						return err
					}
					slices.Sort(nbrs)
					results = append(results, nbrs)
				}
				if reference == nil {
					reference = results
				} else {
					for i := range results {
						if !slices.Equal(results[i], reference[i]) {
							return fmt.Errorf("%s disagrees on node %d: %v vs %v", s.Name(), i+1, results[i], reference[i])
						}
					}
				}

				st := adj.Table().Cracker().Stats()
				fmt.Fprintf(out, "%-10s selects=%d index_hits=%d moves=%d pivots=%d\n",
					s.Name(), st.Queries, st.IndexHits, st.Moves, adj.Table().Cracker().Pivots().Len())
			}
			fmt.Fprintln(out, "all strategies agree")
			return rt.finish(out)
		},
	}
	cmd.Flags().Int64VarP(&nodes, "nodes", "n", 1000, "Number of nodes in the random tree")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
