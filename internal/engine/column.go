package engine

// ColumnRef is a column ordinal resolved against a TableSchema. Refs handed
// out by a schema always resolve, so lookups through them cannot miss.
type ColumnRef int

// Column describes one int64 column of a table.
type Column struct {
	Name    string `json:"name" yaml:"name"`
	Cracked bool   `json:"cracked" yaml:"cracked"`
}
