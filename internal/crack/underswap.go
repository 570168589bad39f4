package crack

import "github.com/leengari/crackdb/internal/column"

// Underswap exchanges min(g, h) slots between the cursor run (length g) and
// the high run (length h) in a single swap. The shorter run relocates
// completely; the longer one is split and its remainder is revisited later.
type Underswap struct{}

// Name implements RunMergeStrategy.
func (Underswap) Name() string { return UnderswapName }

// SwapHigh implements RunMergeStrategy.
func (Underswap) SwapHigh(c *column.Column, itr, hi int) (int, error) {
	g, h := c.RunLength(itr), c.RunLength(hi)
	hs := hi - h + 1

	switch {
	case g == h:
		if err := c.SwapRuns(g, itr, hs); err != nil {
			return 0, err
		}
		return hi - g, nil

	case g < h:
		// |G|..|  H  | -> |g-tail of H|..|H head|G|
		if err := c.SwapRuns(g, itr, hi-g+1); err != nil {
			return 0, err
		}
		c.Tag(itr, g)
		c.Tag(hs, h-g)
		return hi - g, nil

	default:
		// |  G  |..|H| -> |H|G rest|..|G head|
		if err := c.SwapRuns(h, itr, hs); err != nil {
			return 0, err
		}
		c.Tag(hs, h)
		c.Tag(itr+h, g-h)
		return hi - h, nil
	}
}
