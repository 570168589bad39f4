// Package crack implements equality selection by run-length cracking.
//
// A Cracker owns the pivot index of one cracked column and reorganises the
// column's working array a little more on every query. Each SelectEq runs in
// four phases: seed the search interval from the pivot index, tighten it by
// whole runs, three-way partition what is left, and record the new
// boundaries. The run-merge step for values above the target is delegated to
// a RunMergeStrategy.
package crack

import (
	"context"
	"log/slog"
	"math"

	"github.com/leengari/crackdb/internal/column"
	dberrors "github.com/leengari/crackdb/internal/domain/errors"
	"github.com/leengari/crackdb/internal/pivot"
)

// Interval is an inclusive range of working positions. It is empty when
// High < Low.
type Interval struct {
	Low  int
	High int
}

// Empty reports whether the interval holds no positions.
func (iv Interval) Empty() bool { return iv.High < iv.Low }

// Len is the number of positions, zero when empty.
func (iv Interval) Len() int {
	if iv.Empty() {
		return 0
	}
	return iv.High - iv.Low + 1
}

// Stats are cumulative counters for one Cracker.
type Stats struct {
	Queries   uint64 // SelectEq calls
	IndexHits uint64 // calls answered from the pivot index without scanning
	Moves     uint64 // element slots moved by this cracker's swaps
}

// Cracker runs equality selections against a cracked column.
// It is not safe for concurrent use.
type Cracker struct {
	col      *column.Column
	pivots   *pivot.Index
	strategy RunMergeStrategy
	logger   *slog.Logger
	stats    Stats
}

// Option configures a Cracker.
type Option func(*Cracker)

// WithStrategy selects the run-merge policy. Underswap is the default.
func WithStrategy(s RunMergeStrategy) Option {
	return func(k *Cracker) {
		if s != nil {
			k.strategy = s
		}
	}
}

// WithLogger routes per-query debug records to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Cracker) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// New wraps a column whose working arrays are already initialised.
func New(col *column.Column, opts ...Option) (*Cracker, error) {
	if !col.Cracked() {
		return nil, &dberrors.PreconditionError{Op: "crack", Column: col.Name, Err: dberrors.ErrNotCracked}
	}
	k := &Cracker{
		col:      col,
		pivots:   pivot.New(),
		strategy: Underswap{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Column returns the column being cracked.
func (k *Cracker) Column() *column.Column { return k.col }

// Pivots exposes the boundary index, mostly for inspection in tests.
func (k *Cracker) Pivots() *pivot.Index { return k.pivots }

// Strategy returns the run-merge policy in use.
func (k *Cracker) Strategy() RunMergeStrategy { return k.strategy }

// Stats returns a snapshot of the cumulative counters.
func (k *Cracker) Stats() Stats { return k.stats }

// Reset forgets every pivot. The owner calls it after the column has been
// re-initialised.
func (k *Cracker) Reset() {
	k.pivots.Reset()
}

// SelectEq partitions the working array so that every slot holding x forms
// one contiguous run, and returns that run. An absent x yields an empty
// interval whose Low is where x would sit.
func (k *Cracker) SelectEq(x int64) (Interval, error) {
	c := k.col
	if !c.Cracked() {
		return Interval{}, &dberrors.PreconditionError{Op: "select", Column: c.Name, Err: dberrors.ErrNotCracked}
	}
	k.stats.Queries++
	before := c.Moves()

	// Seed.
	lo, _ := k.pivots.LowerBound(x)
	end := c.Len()
	if x < math.MaxInt64 {
		if p, ok := k.pivots.UpperBound(x + 1); ok {
			end = p
		}
	}
	hi := end - 1
	if lo > hi {
		k.stats.IndexHits++
		return Interval{Low: lo, High: lo - 1}, nil
	}
	if c.Working(lo) == x && c.RunLength(lo) == hi-lo+1 {
		k.stats.IndexHits++
		return Interval{Low: lo, High: hi}, nil
	}

	// Tighten.
	lo = k.advanceLow(lo, hi, x)
	hi = k.retreatHigh(lo, hi, x)

	// Scan. Invariant: [lo, itr) holds x, (hi, end) holds values above x,
	// and [itr, hi] is tiled by whole runs still to be classified.
	if lo < hi {
		var err error
		if lo, hi, err = k.scan(lo, hi, x); err != nil {
			return Interval{}, err
		}
	}

	// Finalize.
	if lo <= hi {
		c.Tag(lo, hi-lo+1)
	}
	k.pivots.Set(x, lo)
	if x < math.MaxInt64 {
		k.pivots.Set(x+1, hi+1)
	}

	moved := c.Moves() - before
	k.stats.Moves += moved
	if k.logger.Enabled(context.Background(), slog.LevelDebug) {
		k.logger.Debug("select_eq",
			slog.String("column", c.Name),
			slog.String("strategy", k.strategy.Name()),
			slog.Int64("value", x),
			slog.Int("low", lo),
			slog.Int("high", hi),
			slog.Uint64("moves", moved),
			slog.Int("pivots", k.pivots.Len()))
	}
	return Interval{Low: lo, High: hi}, nil
}

func (k *Cracker) scan(lo, hi int, x int64) (int, int, error) {
	c := k.col
	itr := lo
	for itr <= hi {
		v, l := c.Working(itr), c.RunLength(itr)
		switch {
		case v == x:
			itr += l

		case v < x:
			// Move the run below the x region accumulated in [lo, itr).
			eq := itr - lo
			switch {
			case eq == 0:
			case l <= eq:
				if err := c.SwapRuns(l, lo, itr); err != nil {
					return 0, 0, internalSwapError(err)
				}
			default:
				if err := c.SwapRuns(eq, lo, itr+l-eq); err != nil {
					return 0, 0, internalSwapError(err)
				}
				c.Tag(lo, l)
			}
			lo += l
			itr += l

		default:
			hi = k.retreatHigh(itr, hi, x)
			if hi < itr {
				return lo, hi, nil
			}
			next, err := k.strategy.SwapHigh(c, itr, hi)
			if err != nil {
				return 0, 0, internalSwapError(err)
			}
			if next >= hi || next < itr-1 {
				return 0, 0, dberrors.AssertionFailedf("%s: high moved from %d to %d with cursor %d",
					k.strategy.Name(), hi, next, itr)
			}
			hi = next
		}
	}
	return lo, hi, nil
}

// advanceLow skips whole runs below x starting at lo, fusing equal
// neighbours on the way. It never reads past hi.
func (k *Cracker) advanceLow(lo, hi int, x int64) int {
	c := k.col
	for lo <= hi && c.Working(lo) < x {
		lo += k.fuseForward(lo, hi)
	}
	return lo
}

// retreatHigh skips whole runs above x ending at hi, fusing equal neighbours
// on the way. It never reads below lo.
func (k *Cracker) retreatHigh(lo, hi int, x int64) int {
	c := k.col
	for hi >= lo && c.Working(hi) > x {
		hi -= k.fuseBackward(hi, lo)
	}
	return hi
}

func (k *Cracker) fuseForward(start, limit int) int {
	c := k.col
	v, l := c.Working(start), c.RunLength(start)
	n := l
	for start+n <= limit && c.Working(start+n) == v {
		n += c.RunLength(start + n)
	}
	if n != l {
		c.Tag(start, n)
	}
	return n
}

func (k *Cracker) fuseBackward(end, limit int) int {
	c := k.col
	v, l := c.Working(end), c.RunLength(end)
	n := l
	for end-n >= limit && c.Working(end-n) == v {
		n += c.RunLength(end - n)
	}
	if n != l {
		c.Tag(end-n+1, n)
	}
	return n
}

func internalSwapError(err error) error {
	return dberrors.AssertionFailedf("cracking produced an invalid swap: %v", err)
}
