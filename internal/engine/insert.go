package engine

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	dberrors "github.com/leengari/crackdb/internal/domain/errors"
)

// Batch supplies one slice of values per column name.
type Batch map[string][]int64

// Insert appends a batch to every column in lock-step. Every schema column
// must be present, no unknown column may appear, and all slices must have the
// same length. On any violation the table is left untouched.
//
// Inserting into a cracked table changes row membership, so the cracked
// state and every pivot are discarded; the next selection re-cracks.
func (t *Table) Insert(batch Batch) error {
	// 1. Reject unknown columns (sorted for a deterministic error)
	names := make([]string, 0, len(batch))
	for name := range batch {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := t.Schema.Resolve(name); err != nil {
			return err
		}
	}

	// 2. Every column present, all the same length
	n := -1
	for _, col := range t.Schema.Columns {
		values, ok := batch[col.Name]
		if !ok {
			return &dberrors.PreconditionError{
				Op:     "insert",
				Table:  t.Name,
				Column: col.Name,
				Reason: "column missing from batch",
				Err:    dberrors.ErrBatchMismatch,
			}
		}
		if n == -1 {
			n = len(values)
			continue
		}
		if len(values) != n {
			return dberrors.NewBatchMismatch(t.Name, col.Name, n, len(values))
		}
	}

	// 3. Everything passed → safe to append
	wasCracked := t.cracked.Cracked()
	for i, col := range t.Schema.Columns {
		values := batch[col.Name]
		if ColumnRef(i) == t.crackedRef {
			t.cracked.Append(values)
			continue
		}
		t.siblings[i] = append(t.siblings[i], values...)
	}
	t.RowCount += n

	if wasCracked && t.cracker != nil {
		t.cracker.Reset()
		t.logger.Debug("cracked state discarded after insert",
			slog.String("table", t.Name),
			slog.Int("rows", t.RowCount))
	}

	t.notify(Event{Type: EventInsert, QueryID: uuid.New().String(), Data: InsertInfo{
		Rows:     n,
		RowCount: t.RowCount,
		Recrack:  wasCracked,
	}})
	return nil
}
