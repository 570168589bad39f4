package engine

import (
	"fmt"

	dberrors "github.com/leengari/crackdb/internal/domain/errors"
)

// TableSchema represents table metadata: the column list and which of them
// is cracked. Exactly one column must be cracked.
type TableSchema struct {
	TableName string
	Columns   []Column
}

// NewSchema builds a schema with the cracked column first, followed by the
// plain sibling columns in the given order.
func NewSchema(table, cracked string, siblings ...string) *TableSchema {
	cols := make([]Column, 0, len(siblings)+1)
	cols = append(cols, Column{Name: cracked, Cracked: true})
	for _, name := range siblings {
		cols = append(cols, Column{Name: name})
	}
	return &TableSchema{TableName: table, Columns: cols}
}

// Validate checks for duplicate names and a single cracked column.
func (s *TableSchema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("table %s: schema has no columns", s.TableName)
	}
	seen := make(map[string]bool, len(s.Columns))
	cracked := 0
	for _, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %s: empty column name", s.TableName)
		}
		if seen[col.Name] {
			return fmt.Errorf("table %s: duplicate column %q", s.TableName, col.Name)
		}
		seen[col.Name] = true
		if col.Cracked {
			cracked++
		}
	}
	if cracked != 1 {
		return fmt.Errorf("table %s: want exactly one cracked column, got %d", s.TableName, cracked)
	}
	return nil
}

// Resolve maps a column name to its ref.
func (s *TableSchema) Resolve(name string) (ColumnRef, error) {
	for i, col := range s.Columns {
		if col.Name == name {
			return ColumnRef(i), nil
		}
	}
	return -1, &dberrors.LookupError{Table: s.TableName, Column: name}
}

// MustResolve is Resolve for names known to be in the schema.
func (s *TableSchema) MustResolve(name string) ColumnRef {
	ref, err := s.Resolve(name)
	if err != nil {
		panic(err)
	}
	return ref
}

// CrackedRef returns the ref of the cracked column.
func (s *TableSchema) CrackedRef() ColumnRef {
	for i, col := range s.Columns {
		if col.Cracked {
			return ColumnRef(i)
		}
	}
	return -1
}

// Name returns the column name behind ref.
func (s *TableSchema) Name(ref ColumnRef) string {
	return s.Columns[ref].Name
}
