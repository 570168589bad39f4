package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/leengari/crackdb/internal/engine"
	"github.com/leengari/crackdb/internal/graph"
)

func newBFSCommand() *cobra.Command {
	var (
		nodes  int64
		seed   int64
		start  int64
		repeat int
	)
	cmd := &cobra.Command{
		Use:   "bfs",
		Short: "Traverse a random tree through a cracked adjacency table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if nodes < 1 {
				return fmt.Errorf("--nodes must be positive")
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			src, dst := randomTree(nodes, seed)
			opts := append([]engine.Option{engine.WithStrategy(rt.cfg.Strategy())}, rt.options...)
			adj, err := graph.BuildAdjacency(src, dst, graph.Src, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for run := 1; run <= repeat; run++ {
				began := time.Now()
				before := adj.Table().Cracker().Stats()
				visited, err := adj.BFS(cmd.Context(), start)
				if err != nil {
					return err
				}
				after := adj.Table().Cracker().Stats()
				fmt.Fprintf(out, "run %d: visited=%d selects=%d index_hits=%d moves=%d elapsed=%s\n",
					run, len(visited),
					after.Queries-before.Queries,
					after.IndexHits-before.IndexHits,
					after.Moves-before.Moves,
					time.Since(began))
			}

			rt.logger.Info("bfs finished",
				slog.String("strategy", adj.Table().Strategy().Name()),
				slog.Int64("nodes", nodes),
				slog.Int("edges", adj.Table().RowCount),
				slog.Int("pivots", adj.Table().Cracker().Pivots().Len()))
			return rt.finish(out)
		},
	}
	cmd.Flags().Int64VarP(&nodes, "nodes", "n", 1000, "Number of nodes in the random tree")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().Int64Var(&start, "start", 1, "Start node")
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 2, "Number of traversals")
	return cmd
}
