package crack

import "github.com/leengari/crackdb/internal/column"

// Overswap relocates the longer of the two runs whole. It first classifies
// whether the longer run's target range overlaps the other side:
//
//   - overlapping ranges are resolved by one combined swap sized to the
//     region between the runs;
//   - disjoint ranges are padded out with the runs adjacent to the shorter
//     run (splitting the straddling run at the target edge) and moved with a
//     main swap plus, when the high run is longer, a padding swap.
//
// It costs more bookkeeping per swap than Underswap but never leaves either
// run split.
type Overswap struct{}

// Name implements RunMergeStrategy.
func (Overswap) Name() string { return OverswapName }

// SwapHigh implements RunMergeStrategy.
func (Overswap) SwapHigh(c *column.Column, itr, hi int) (int, error) {
	g, h := c.RunLength(itr), c.RunLength(hi)
	hs := hi - h + 1

	switch {
	case g == h:
		if err := c.SwapRuns(g, itr, hs); err != nil {
			return 0, err
		}
		return hi - g, nil

	case g > h:
		target := hi - g + 1
		if target < itr+g {
			// [itr+g, hi] is shorter than G: rotate it in front of G.
			r := hi - itr - g + 1
			if err := c.SwapRuns(r, itr, itr+g); err != nil {
				return 0, err
			}
			c.Tag(itr+r, g)
			return itr + r - 1, nil
		}
		splitBefore(c, target, hi+1)
		if err := c.SwapRuns(g, itr, target); err != nil {
			return 0, err
		}
		return hi - g, nil

	default:
		if itr+h > hs {
			// The gap [itr+g, hs) is shorter than H minus G: swap G with
			// the tail of H, then the gap with the slots just before it.
			q := hs - itr - g
			if err := c.SwapRuns(g, itr, hi-g+1); err != nil {
				return 0, err
			}
			if err := c.SwapRuns(q, itr+g, hi-g-q+1); err != nil {
				return 0, err
			}
			c.Tag(itr, h)
			return hi - g, nil
		}
		splitAfter(c, itr+g, itr+h)
		if err := c.SwapRuns(g, itr, hi-g+1); err != nil {
			return 0, err
		}
		if err := c.SwapRuns(h-g, itr+g, hs); err != nil {
			return 0, err
		}
		c.Tag(itr, h)
		return hi - g, nil
	}
}

// splitBefore makes target a run boundary, walking runs backwards from end
// (itself a boundary).
func splitBefore(c *column.Column, target, end int) {
	s := end
	for s > target {
		s -= c.RunLength(s - 1)
	}
	if s < target {
		e := s + c.RunLength(s)
		c.Tag(s, target-s)
		c.Tag(target, e-target)
	}
}

// splitAfter makes target a run boundary, walking runs forwards from start
// (itself a boundary).
func splitAfter(c *column.Column, start, target int) {
	s := start
	for s+c.RunLength(s) <= target {
		s += c.RunLength(s)
	}
	if s < target {
		e := s + c.RunLength(s)
		c.Tag(s, target-s)
		c.Tag(target, e-target)
	}
}
