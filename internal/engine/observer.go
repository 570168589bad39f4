package engine

import "time"

// EventType represents the lifecycle events a table emits
type EventType string

const (
	EventInsert  EventType = "insert"
	EventCrack   EventType = "crack"
	EventSelect  EventType = "select"
	EventReorder EventType = "reorder"
)

// Event represents a lifecycle event on a table
type Event struct {
	Type      EventType   // Type of event
	QueryID   string      // Per-call ID for tracing
	Table     string      // Table name
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific payload (InsertInfo, SelectInfo, ...)
}

// InsertInfo is the payload of EventInsert.
type InsertInfo struct {
	Rows     int // rows appended by this call
	RowCount int // rows in the table afterwards
	Recrack  bool
}

// SelectInfo is the payload of EventSelect.
type SelectInfo struct {
	Value    int64
	Column   string // sibling column gathered
	Matches  int
	Moves    uint64 // element slots moved by this select
	IndexHit bool   // answered from the pivot index alone
	Strategy string
}

// CrackInfo is the payload of EventCrack.
type CrackInfo struct {
	Column   string
	Rows     int
	Strategy string
}

// ReorderInfo is the payload of EventReorder.
type ReorderInfo struct {
	Rows    int  // rows permuted
	Recrack bool // the table was cracked and has been rebuilt
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}
