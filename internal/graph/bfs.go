package graph

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("crackdb.graph")

// BFS visits every node reachable from start and returns them in visit
// order. Neighbours of one node are visited in ascending order so the result
// does not depend on how cracking arranged the column.
func (a *Adjacency) BFS(ctx context.Context, start int64) ([]int64, error) {
	ctx, span := tracer.Start(ctx, "graph.BFS")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("start", start),
		attribute.String("strategy", a.table.Strategy().Name()),
		attribute.Int("edges", a.table.RowCount),
	)

	visited := map[int64]bool{start: true}
	order := []int64{start}
	frontier := []int64{start}

	for depth := 0; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return order, err
		}
		var next []int64
		for _, node := range frontier {
			nbrs, err := a.Neighbors(node)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "neighbour lookup failed")
				return order, err
			}
			slices.Sort(nbrs)
			for _, n := range nbrs {
				if visited[n] {
					continue
				}
				visited[n] = true
				order = append(order, n)
				next = append(next, n)
			}
		}
		span.AddEvent("level", trace.WithAttributes(
			attribute.Int("depth", depth),
			attribute.Int("discovered", len(next)),
		))
		frontier = next
	}

	span.SetAttributes(attribute.Int("visited", len(order)))
	return order, nil
}
