package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"prism/pkg/dataset"
	"prism/pkg/engine"
)

// MemStore implements Store in memory. Datasets round-trip through the same
// JSON codec as the SQLite store, so callers get the same copy semantics
// either way.
type MemStore struct {
	mu       sync.RWMutex
	datasets map[string][]byte
	kinds    map[string]dataset.Kind
	results  []ResultRecord
	nextID   int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		datasets: make(map[string][]byte),
		kinds:    make(map[string]dataset.Kind),
		nextID:   1,
	}
}

func (m *MemStore) Dataset(name string) (dataset.Dataset, error) {
	m.mu.RLock()
	payload, ok := m.datasets[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	return decodeDataset(name, payload)
}

func (m *MemStore) SaveDataset(ds dataset.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	payload, err := encodeDataset(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	m.mu.Lock()
	m.datasets[ds.Name()] = payload
	m.kinds[ds.Name()] = ds.Kind()
	m.mu.Unlock()
	return nil
}

func (m *MemStore) DeleteDataset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[name]; !ok {
		return fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	delete(m.datasets, name)
	delete(m.kinds, name)
	return nil
}

func (m *MemStore) ListDatasets() ([]DatasetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]DatasetInfo, 0, len(m.datasets))
	for name := range m.datasets {
		list = append(list, DatasetInfo{Name: name, Kind: m.kinds[name]})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *MemStore) SaveResult(algorithm, input string, res engine.Result) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := ResultRecord{
		ID:        m.nextID,
		Algorithm: algorithm,
		Input:     input,
		Success:   res.Success,
		Duration:  res.Duration.String(),
		Error:     res.Error,
		Metrics:   res.Metrics,
		CreatedAt: nowUTC(),
	}
	if res.Output != nil {
		rec.Output = res.Output.Name()
	}
	m.results = append(m.results, rec)
	m.nextID++
	return rec.ID, nil
}

func (m *MemStore) ListResults() ([]ResultRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ResultRecord, len(m.results))
	copy(out, m.results)
	return out, nil
}

func (m *MemStore) Close() error { return nil }
