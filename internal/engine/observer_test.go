package engine

import (
	"testing"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func newEdgeTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	tbl, err := NewTable(NewSchema("edges", "src", "dst"), opts...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestAddObserver(t *testing.T) {
	tbl := newEdgeTable(t)
	observer := &MockObserver{}

	tbl.AddObserver(observer)

	if len(tbl.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(tbl.observers))
	}
}

func TestRemoveObserver(t *testing.T) {
	tbl := newEdgeTable(t)
	observer := &MockObserver{}

	tbl.AddObserver(observer)
	tbl.RemoveObserver(observer)

	if len(tbl.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(tbl.observers))
	}
}

func TestNotifyWithNoObservers(t *testing.T) {
	tbl := newEdgeTable(t)

	// Should not panic
	tbl.notify(Event{Type: EventCrack, QueryID: "test-query"})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}
	tbl := newEdgeTable(t, WithObserver(observer1))
	tbl.AddObserver(observer2)

	tbl.notify(Event{Type: EventSelect, QueryID: "test-query", Data: SelectInfo{Value: 3}})

	if len(observer1.Events) != 1 {
		t.Fatalf("Observer1: Expected 1 event, got %d", len(observer1.Events))
	}
	if len(observer2.Events) != 1 {
		t.Fatalf("Observer2: Expected 1 event, got %d", len(observer2.Events))
	}
	if observer1.Events[0].Type != EventSelect {
		t.Errorf("Observer1: Expected EventSelect, got %v", observer1.Events[0].Type)
	}
	if observer2.Events[0].Table != "edges" {
		t.Errorf("Observer2: Expected table edges, got %q", observer2.Events[0].Table)
	}
}

func TestEventTimestamp(t *testing.T) {
	tbl := newEdgeTable(t)
	observer := &MockObserver{}
	tbl.AddObserver(observer)

	tbl.notify(Event{Type: EventInsert, QueryID: "test-query"})

	if observer.Events[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be set, got zero value")
	}
}

func TestLifecycleEvents(t *testing.T) {
	observer := &MockObserver{}
	tbl := newEdgeTable(t, WithObserver(observer))

	if err := tbl.Insert(Batch{"src": {1, 2, 1}, "dst": {10, 20, 30}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := tbl.SelectEqSibling(1, "dst"); err != nil {
		t.Fatalf("SelectEqSibling: %v", err)
	}

	want := []EventType{EventInsert, EventCrack, EventSelect}
	if len(observer.Events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(observer.Events))
	}
	for i, typ := range want {
		if observer.Events[i].Type != typ {
			t.Errorf("event %d: expected %s, got %s", i, typ, observer.Events[i].Type)
		}
		if observer.Events[i].QueryID == "" {
			t.Errorf("event %d: missing query id", i)
		}
	}

	ins := observer.Events[0].Data.(InsertInfo)
	if ins.Rows != 3 || ins.RowCount != 3 || ins.Recrack {
		t.Errorf("unexpected insert payload %+v", ins)
	}
	sel := observer.Events[2].Data.(SelectInfo)
	if sel.Matches != 2 || sel.Column != "dst" || sel.Strategy != "underswap" {
		t.Errorf("unexpected select payload %+v", sel)
	}
}
