package column

import "fmt"

// CheckInvariants verifies row alignment and the segment tiling of a cracked
// column. It is a full O(n) pass meant for tests and debugging.
func (c *Column) CheckInvariants() error {
	if !c.cracked {
		return nil
	}
	n := len(c.working)
	if len(c.rowOf) != n || len(c.runLength) != n || len(c.original) != n {
		return fmt.Errorf("array lengths diverge: original=%d working=%d rowOf=%d runLength=%d",
			len(c.original), n, len(c.rowOf), len(c.runLength))
	}
	for i := range n {
		if c.working[i] != c.original[c.rowOf[i]] {
			return fmt.Errorf("row alignment broken at %d: working=%d original[%d]=%d",
				i, c.working[i], c.rowOf[i], c.original[c.rowOf[i]])
		}
	}
	for start := 0; start < n; {
		l := c.runLength[start]
		if l < 1 || start+l > n {
			return fmt.Errorf("bad run tag %d at %d", l, start)
		}
		end := start + l - 1
		if c.runLength[end] != l {
			return fmt.Errorf("run [%d,%d] closes with tag %d, want %d", start, end, c.runLength[end], l)
		}
		for i := start + 1; i <= end; i++ {
			if c.working[i] != c.working[start] {
				return fmt.Errorf("run [%d,%d] mixes %d and %d", start, end, c.working[start], c.working[i])
			}
		}
		start = end + 1
	}
	return nil
}

// Segment is one tagged run of the working array.
type Segment struct {
	Start int
	Len   int
	Value int64
}

// Segments walks the tiling from left to right. It assumes CheckInvariants
// holds.
func (c *Column) Segments() []Segment {
	var out []Segment
	for start := 0; start < len(c.working); start += c.runLength[start] {
		out = append(out, Segment{Start: start, Len: c.runLength[start], Value: c.working[start]})
	}
	return out
}
