package engine

import (
	"github.com/google/uuid"

	"github.com/leengari/crackdb/internal/column"
)

// Reorder rearranges every column so that new row i is old row perm[i]. The
// cracked state and pivots are rebuilt from scratch when the table was
// cracked. An invalid permutation leaves the table untouched.
func (t *Table) Reorder(perm []int) error {
	if err := column.ValidatePermutation(perm, t.RowCount); err != nil {
		return err
	}

	wasCracked := t.cracked.Cracked()
	if err := t.cracked.Reorder(perm); err != nil {
		return err
	}
	for i, sib := range t.siblings {
		if ColumnRef(i) == t.crackedRef {
			continue
		}
		t.siblings[i] = column.Permute(sib, perm)
	}

	t.notify(Event{Type: EventReorder, QueryID: uuid.New().String(), Data: ReorderInfo{
		Rows:    len(perm),
		Recrack: wasCracked,
	}})

	if wasCracked {
		return t.Crack()
	}
	return nil
}
