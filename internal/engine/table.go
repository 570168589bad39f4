package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/crackdb/internal/column"
	"github.com/leengari/crackdb/internal/crack"
)

// Table holds one cracked column and any number of plain sibling columns,
// all aligned by original row index. Selections reorder the cracked column's
// working array only; siblings are never moved and are reached through the
// cracked column's row indirection.
//
// A Table is not safe for concurrent use. Callers sharing one must serialise
// whole calls.
type Table struct {
	ID       string
	Name     string
	Schema   *TableSchema
	RowCount int

	crackedRef ColumnRef
	cracked    *column.Column
	siblings   [][]int64 // by ColumnRef; nil at crackedRef
	cracker    *crack.Cracker

	strategy  crack.RunMergeStrategy
	logger    *slog.Logger
	observers []Observer
}

// Option configures a Table.
type Option func(*Table)

// WithStrategy picks the run-merge strategy used when cracking.
func WithStrategy(s crack.RunMergeStrategy) Option {
	return func(t *Table) {
		if s != nil {
			t.strategy = s
		}
	}
}

// WithLogger sets the logger for the table and its cracker.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(t *Table) {
		if o != nil {
			t.observers = append(t.observers, o)
		}
	}
}

// NewTable creates an empty table for schema.
func NewTable(schema *TableSchema, opts ...Option) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	t := &Table{
		ID:         uuid.New().String(),
		Name:       schema.TableName,
		Schema:     schema,
		crackedRef: schema.CrackedRef(),
		siblings:   make([][]int64, len(schema.Columns)),
		strategy:   crack.Underswap{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.cracked = column.New(schema.Name(t.crackedRef))
	for i := range schema.Columns {
		if ColumnRef(i) != t.crackedRef {
			t.siblings[i] = []int64{}
		}
	}
	return t, nil
}

// CrackedColumn exposes the cracked column for inspection.
func (t *Table) CrackedColumn() *column.Column { return t.cracked }

// Cracker returns the table's cracker, or nil before the first Crack.
func (t *Table) Cracker() *crack.Cracker { return t.cracker }

// Strategy returns the run-merge strategy the table cracks with.
func (t *Table) Strategy() crack.RunMergeStrategy { return t.strategy }

// Crack initialises the cracked column's working arrays. Selections call it
// on demand; calling it on an already cracked table is a precondition error.
func (t *Table) Crack() error {
	if err := t.cracked.InitializeCracked(); err != nil {
		return err
	}
	if t.cracker == nil {
		k, err := crack.New(t.cracked, crack.WithStrategy(t.strategy), crack.WithLogger(t.logger))
		if err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		t.cracker = k
	} else {
		t.cracker.Reset()
	}

	t.notify(Event{Type: EventCrack, QueryID: uuid.New().String(), Data: CrackInfo{
		Column:   t.cracked.Name,
		Rows:     t.RowCount,
		Strategy: t.strategy.Name(),
	}})
	return nil
}

func (t *Table) ensureCracked() error {
	if t.cracked.Cracked() {
		return nil
	}
	return t.Crack()
}

// AddObserver registers an observer to receive lifecycle events
func (t *Table) AddObserver(observer Observer) {
	t.observers = append(t.observers, observer)
}

// RemoveObserver unregisters an observer
func (t *Table) RemoveObserver(observer Observer) {
	for i, o := range t.observers {
		if o == observer {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (t *Table) notify(event Event) {
	if len(t.observers) == 0 {
		return
	}
	event.Table = t.Name
	event.Timestamp = time.Now()
	for _, observer := range t.observers {
		observer.OnEvent(event)
	}
}
