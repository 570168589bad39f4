// Package graph exposes a cracked two-column table as an adjacency list.
//
// Edges are stored as (src, dst) rows. Cracking on one side turns
// "neighbours of n" into an equality selection on that side, so repeated
// traversals get cheaper as the column organises itself.
package graph

import (
	"fmt"

	"github.com/leengari/crackdb/internal/engine"
)

// Side names one of the two edge columns.
type Side string

const (
	Src Side = "src"
	Dst Side = "dst"
)

func (s Side) other() Side {
	if s == Src {
		return Dst
	}
	return Src
}

// Adjacency is an edge table cracked on one side.
type Adjacency struct {
	table  *engine.Table
	from   Side
	target engine.ColumnRef
}

// BuildAdjacency constructs a two-column ("src", "dst") table from
// equal-length edge slices and cracks it on the given side.
func BuildAdjacency(src, dst []int64, cracked Side, opts ...engine.Option) (*Adjacency, error) {
	if cracked != Src && cracked != Dst {
		return nil, fmt.Errorf("unknown edge side %q", cracked)
	}
	schema := engine.NewSchema("edges", string(cracked), string(cracked.other()))
	table, err := engine.NewTable(schema, opts...)
	if err != nil {
		return nil, err
	}
	if err := table.Insert(engine.Batch{string(Src): src, string(Dst): dst}); err != nil {
		return nil, err
	}
	if err := table.Crack(); err != nil {
		return nil, err
	}
	return &Adjacency{
		table:  table,
		from:   cracked,
		target: schema.MustResolve(string(cracked.other())),
	}, nil
}

// Table exposes the underlying edge table.
func (a *Adjacency) Table() *engine.Table { return a.table }

// Neighbors returns the nodes reached by one edge from node, following the
// cracked side. Order is unspecified.
func (a *Adjacency) Neighbors(node int64) ([]int64, error) {
	return a.table.SelectEqRef(node, a.target)
}

// Degree counts edges leaving node without cracking.
func (a *Adjacency) Degree(node int64) (int64, error) {
	return a.table.CountEq(string(a.from), node)
}
