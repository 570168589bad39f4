// Package pivot caches the partition boundaries produced by cracking.
//
// A boundary (k, p) states that every working slot before p holds a value
// below k and every slot from p onward holds a value at or above k.
package pivot

import "github.com/google/btree"

const degree = 16

type boundary struct {
	key int64
	pos int
}

func less(a, b boundary) bool { return a.key < b.key }

// Index is an ordered map from pivot value to working-array position.
type Index struct {
	tree *btree.BTreeG[boundary]
}

// New returns an empty index.
func New() *Index {
	return &Index{tree: btree.NewG(degree, less)}
}

// Set records or overwrites the boundary for key.
func (x *Index) Set(key int64, pos int) {
	x.tree.ReplaceOrInsert(boundary{key: key, pos: pos})
}

// LowerBound returns the boundary of the greatest stored key <= key.
func (x *Index) LowerBound(key int64) (int, bool) {
	var (
		pos   int
		found bool
	)
	x.tree.DescendLessOrEqual(boundary{key: key}, func(b boundary) bool {
		pos, found = b.pos, true
		return false
	})
	return pos, found
}

// UpperBound returns the boundary of the smallest stored key >= key.
func (x *Index) UpperBound(key int64) (int, bool) {
	var (
		pos   int
		found bool
	)
	x.tree.AscendGreaterOrEqual(boundary{key: key}, func(b boundary) bool {
		pos, found = b.pos, true
		return false
	})
	return pos, found
}

// Get returns the boundary stored for exactly key.
func (x *Index) Get(key int64) (int, bool) {
	b, ok := x.tree.Get(boundary{key: key})
	return b.pos, ok
}

// Len returns the number of stored boundaries.
func (x *Index) Len() int { return x.tree.Len() }

// Reset drops every boundary.
func (x *Index) Reset() {
	x.tree.Clear(false)
}

// Ascend calls fn for every boundary in key order until fn returns false.
func (x *Index) Ascend(fn func(key int64, pos int) bool) {
	x.tree.Ascend(func(b boundary) bool {
		return fn(b.key, b.pos)
	})
}
