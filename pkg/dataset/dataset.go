package dataset

import "errors"

// Kind classifies a dataset's shape. Algorithms declare the kind they
// accept; KindAny accepts every dataset.
type Kind string

const (
	KindTabular Kind = "tabular"
	KindGraph   Kind = "graph"
	KindAny     Kind = "any"
)

// ColumnType classifies a tabular column.
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnString  ColumnType = "string"
)

var (
	// ErrColumnNotFound is returned when a referenced column does not exist.
	ErrColumnNotFound = errors.New("dataset: column not found")

	// ErrDuplicateColumn is returned when a column name is added twice.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")

	// ErrRowCountMismatch is returned when a new column's length differs
	// from the table's fixed row count.
	ErrRowCountMismatch = errors.New("dataset: row count mismatch")

	// ErrColumnType is returned when a column is accessed as the wrong type.
	ErrColumnType = errors.New("dataset: column type mismatch")

	// ErrNodeNotFound is returned when a referenced node does not exist.
	ErrNodeNotFound = errors.New("dataset: node not found")

	// ErrDuplicateNode is returned when a node id is added twice.
	ErrDuplicateNode = errors.New("dataset: duplicate node")

	// ErrDuplicateEdge is returned when the same (from, to) edge is added twice.
	ErrDuplicateEdge = errors.New("dataset: duplicate edge")
)

// Dataset is the minimal contract shared by every dataset shape.
type Dataset interface {
	Name() string
	Kind() Kind
}

// Tabular is a columnar dataset: named typed columns over a fixed row count.
// Column names are unique across both types. Accessors return copies so a
// reader can never mutate the dataset through them.
type Tabular interface {
	Dataset
	RowCount() int
	ColumnNames() []string
	HasColumn(name string) bool
	ColumnType(name string) (ColumnType, bool)
	NumericColumn(name string) ([]float64, error)
	StringColumn(name string) ([]string, error)
}

// Edge is one directed edge with its property map.
type Edge struct {
	From       string
	To         string
	Properties map[string]any
}

// Graph is a directed property graph: named nodes with property maps,
// (from, to) edges with property maps, and adjacency lookups that are O(1)
// amortized per call.
type Graph interface {
	Dataset
	NodeCount() int
	NodeIDs() []string
	HasNode(id string) bool
	NodeProperties(id string) map[string]any
	OutNeighbors(id string) []string
	InNeighbors(id string) []string
	Neighbors(id string) []string
	Edges() []Edge
}

// cloneProps returns a shallow copy of a property map. Property values are
// scalars, so a shallow copy is enough to isolate readers from writers.
func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
