package store

import (
	"errors"

	"prism/pkg/dataset"
	"prism/pkg/engine"
)

// DefaultDBPath is the default relative path for the SQLite DB. Resolve
// against cwd; Open() creates the parent dir (.prism).
const DefaultDBPath = ".prism/prism.db"

// ErrNotFound reports a dataset or result missing from the store.
var ErrNotFound = errors.New("store: not found")

// DatasetInfo is one catalog row: the dataset's identity without its payload.
type DatasetInfo struct {
	Name      string
	Kind      dataset.Kind
	UpdatedAt string
}

// ResultRecord is one persisted execution outcome.
type ResultRecord struct {
	ID        int64
	Algorithm string
	Input     string
	Output    string
	Success   bool
	Duration  string
	Error     string
	Metrics   map[string]any
	CreatedAt string
}

// Store is the persistence facade for datasets and execution results. The
// CLI and plan runner use only this interface; implementation is SQLite or
// in-memory. It satisfies engine.Store so execution contexts can carry it.
type Store interface {
	// Datasets
	Dataset(name string) (dataset.Dataset, error)
	SaveDataset(ds dataset.Dataset) error
	DeleteDataset(name string) error
	ListDatasets() ([]DatasetInfo, error)
	// Results
	SaveResult(algorithm, input string, res engine.Result) (int64, error)
	ListResults() ([]ResultRecord, error)

	Close() error
}
