package column

import (
	"fmt"

	dberrors "github.com/leengari/crackdb/internal/domain/errors"
)

// Column is an int64 column that can be cracked.
//
// The original slice keeps insertion order. Once cracked, working holds the
// same values reordered in place, rowOf maps each working slot back to its
// original row, and runLength tags segments of equal values:
//
//	working[i] == original[rowOf[i]]                 for every i
//	runLength[a] == runLength[b] == b-a+1            for every tagged segment [a,b]
//
// Segments tile working. Interior tags are stale until a pass touches them.
type Column struct {
	Name string

	original  []int64
	working   []int64
	rowOf     []int
	runLength []int
	cracked   bool

	moves uint64
}

// New returns an empty, uncracked column.
func New(name string) *Column {
	return &Column{Name: name}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.original) }

// Cracked reports whether the working arrays are live.
func (c *Column) Cracked() bool { return c.cracked }

// Moves returns the number of element slots exchanged by SwapRuns since the
// column was created.
func (c *Column) Moves() uint64 { return c.moves }

// Original returns the value of a row in insertion order.
func (c *Column) Original(row int) int64 { return c.original[row] }

// Working returns the value at working position i.
func (c *Column) Working(i int) int64 { return c.working[i] }

// RowOf maps working position i to its original row.
func (c *Column) RowOf(i int) int { return c.rowOf[i] }

// RunLength returns the tag at i. Only segment ends carry a meaningful tag.
func (c *Column) RunLength(i int) int { return c.runLength[i] }

// SetRunLength overwrites the tag at position i.
func (c *Column) SetRunLength(i, n int) { c.runLength[i] = n }

// Tag marks [start, start+n) as one segment.
func (c *Column) Tag(start, n int) {
	c.runLength[start] = n
	c.runLength[start+n-1] = n
}

// Append adds values to the end of the column. A cracked column drops its
// working arrays because row membership changed; the owner re-initialises it.
func (c *Column) Append(values []int64) {
	c.original = append(c.original, values...)
	if c.cracked {
		c.clearCracked()
	}
}

// InitializeCracked snapshots original into the working arrays.
func (c *Column) InitializeCracked() error {
	if c.cracked {
		return dberrors.NewAlreadyCracked(c.Name)
	}

	n := len(c.original)
	c.working = make([]int64, n)
	copy(c.working, c.original)
	c.rowOf = make([]int, n)
	c.runLength = make([]int, n)
	for i := range n {
		c.rowOf[i] = i
		c.runLength[i] = 1
	}
	c.cracked = true
	return nil
}

// SwapRuns exchanges length slots starting at a with length slots starting at
// b across working, rowOf and runLength. The ranges must be in bounds and
// disjoint; otherwise nothing moves and a precondition error is returned.
func (c *Column) SwapRuns(length, a, b int) error {
	if !c.cracked {
		return &dberrors.PreconditionError{Op: "swap", Column: c.Name, Err: dberrors.ErrNotCracked}
	}
	n := len(c.working)
	if length < 0 || a < 0 || b < 0 || a+length > n || b+length > n {
		return dberrors.NewOutOfBoundsSwap(length, a, b, n)
	}
	if length == 0 {
		return nil
	}
	if a < b+length && b < a+length {
		return dberrors.NewOverlappingSwap(length, a, b)
	}

	// Disjoint sub-slices of equal length; swapping element-wise keeps the
	// three arrays under the same permutation.
	wa, wb := c.working[a:a+length], c.working[b:b+length]
	ra, rb := c.rowOf[a:a+length], c.rowOf[b:b+length]
	la, lb := c.runLength[a:a+length], c.runLength[b:b+length]
	for i := range length {
		wa[i], wb[i] = wb[i], wa[i]
		ra[i], rb[i] = rb[i], ra[i]
		la[i], lb[i] = lb[i], la[i]
	}
	c.moves += uint64(2 * length)
	return nil
}

// Reorder rebuilds original so that new row i is old row perm[i], and clears
// any cracked state.
func (c *Column) Reorder(perm []int) error {
	if err := ValidatePermutation(perm, len(c.original)); err != nil {
		return err
	}
	c.original = Permute(c.original, perm)
	c.clearCracked()
	return nil
}

// RowsIn returns the original row numbers of working[lo..hi].
func (c *Column) RowsIn(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	rows := make([]int, hi-lo+1)
	copy(rows, c.rowOf[lo:hi+1])
	return rows
}

// Count is a linear scan over original.
func (c *Column) Count(value int64) int64 {
	var n int64
	for _, v := range c.original {
		if v == value {
			n++
		}
	}
	return n
}

// Values returns a copy of the original values.
func (c *Column) Values() []int64 {
	out := make([]int64, len(c.original))
	copy(out, c.original)
	return out
}

func (c *Column) clearCracked() {
	c.working = nil
	c.rowOf = nil
	c.runLength = nil
	c.cracked = false
}

// ValidatePermutation checks that perm is a permutation of [0, n).
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return dberrors.NewInvalidPermutation(fmt.Sprintf("expected %d indices, got %d", n, len(perm)))
	}
	seen := make([]bool, n)
	for i, p := range perm {
		if p < 0 || p >= n {
			return dberrors.NewInvalidPermutation(fmt.Sprintf("index %d at position %d out of range", p, i))
		}
		if seen[p] {
			return dberrors.NewInvalidPermutation(fmt.Sprintf("index %d repeated at position %d", p, i))
		}
		seen[p] = true
	}
	return nil
}

// Permute returns values rearranged so that out[i] == values[perm[i]].
func Permute(values []int64, perm []int) []int64 {
	out := make([]int64, len(perm))
	for i, p := range perm {
		out[i] = values[p]
	}
	return out
}
