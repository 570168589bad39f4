package crack

import (
	"fmt"
	"strings"

	"github.com/leengari/crackdb/internal/column"
	dberrors "github.com/leengari/crackdb/internal/domain/errors"
)

// RunMergeStrategy moves a run of values above the target to the high end of
// the unclassified region.
//
// SwapHigh is called with the run [itr, itr+g) holding values above the
// target and hi closing a run of values at or below the target that starts
// at or after itr+g. [itr, hi] is tiled by whole runs. It returns the new
// high bound: every slot in (result, hi] must hold values from the moved
// run, [itr, result] must still be tiled, and result must be below hi.
type RunMergeStrategy interface {
	Name() string
	SwapHigh(c *column.Column, itr, hi int) (int, error)
}

const (
	UnderswapName = "underswap"
	OverswapName  = "overswap"
)

// StrategyByName resolves a configured strategy name. Unknown names wrap
// ErrUnknownStrategy.
func StrategyByName(name string) (RunMergeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", UnderswapName:
		return Underswap{}, nil
	case OverswapName:
		return Overswap{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want %q or %q)", dberrors.ErrUnknownStrategy, name, UnderswapName, OverswapName)
	}
}

// Strategies returns every available strategy, in a stable order.
func Strategies() []RunMergeStrategy {
	return []RunMergeStrategy{Underswap{}, Overswap{}}
}
