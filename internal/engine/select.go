package engine

import (
	"github.com/google/uuid"

	"github.com/leengari/crackdb/internal/crack"
)

// SelectEqSibling cracks on x and returns the named column's values for the
// matching rows, in the order the partition left them. Callers needing a
// canonical order must sort.
func (t *Table) SelectEqSibling(x int64, name string) ([]int64, error) {
	ref, err := t.Schema.Resolve(name)
	if err != nil {
		return nil, err
	}
	return t.SelectEqRef(x, ref)
}

// SelectEqRef is SelectEqSibling with a pre-resolved column.
func (t *Table) SelectEqRef(x int64, ref ColumnRef) ([]int64, error) {
	rows, info, err := t.selectRows(x)
	if err != nil {
		return nil, err
	}

	out := make([]int64, len(rows))
	if ref == t.crackedRef {
		for i, r := range rows {
			out[i] = t.cracked.Original(r)
		}
	} else {
		sib := t.siblings[ref]
		for i, r := range rows {
			out[i] = sib[r]
		}
	}

	info.Column = t.Schema.Name(ref)
	t.notify(Event{Type: EventSelect, QueryID: uuid.New().String(), Data: info})
	return out, nil
}

// SelectRows cracks on x and returns the original row numbers that match.
func (t *Table) SelectRows(x int64) ([]int, error) {
	rows, info, err := t.selectRows(x)
	if err != nil {
		return nil, err
	}
	t.notify(Event{Type: EventSelect, QueryID: uuid.New().String(), Data: info})
	return rows, nil
}

func (t *Table) selectRows(x int64) ([]int, SelectInfo, error) {
	if err := t.ensureCracked(); err != nil {
		return nil, SelectInfo{}, err
	}
	before := t.cracker.Stats()
	iv, err := t.cracker.SelectEq(x)
	if err != nil {
		return nil, SelectInfo{}, err
	}
	after := t.cracker.Stats()

	rows := t.cracked.RowsIn(iv.Low, iv.High)
	return rows, SelectInfo{
		Value:    x,
		Matches:  len(rows),
		Moves:    after.Moves - before.Moves,
		IndexHit: after.IndexHits > before.IndexHits,
		Strategy: t.strategy.Name(),
	}, nil
}

// SelectInterval exposes the raw working-array interval for x.
func (t *Table) SelectInterval(x int64) (crack.Interval, error) {
	if err := t.ensureCracked(); err != nil {
		return crack.Interval{}, err
	}
	return t.cracker.SelectEq(x)
}

// CountEq counts rows whose named column equals value with a linear scan.
// It never cracks.
func (t *Table) CountEq(name string, value int64) (int64, error) {
	ref, err := t.Schema.Resolve(name)
	if err != nil {
		return 0, err
	}
	if ref == t.crackedRef {
		return t.cracked.Count(value), nil
	}
	var n int64
	for _, v := range t.siblings[ref] {
		if v == value {
			n++
		}
	}
	return n, nil
}

// Values returns a copy of the named column in original row order.
func (t *Table) Values(name string) ([]int64, error) {
	ref, err := t.Schema.Resolve(name)
	if err != nil {
		return nil, err
	}
	if ref == t.crackedRef {
		return t.cracked.Values(), nil
	}
	out := make([]int64, len(t.siblings[ref]))
	copy(out, t.siblings[ref])
	return out, nil
}
