package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"prism/pkg/dataset"
	"prism/pkg/engine"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .prism) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	if err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d (want %d)", v, currentSchemaVersion)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// Dataset loads and decodes the named dataset.
func (s *SqlStore) Dataset(name string) (dataset.Dataset, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM datasets WHERE name = ?", name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	return decodeDataset(name, payload)
}

// SaveDataset upserts the dataset under its own name.
func (s *SqlStore) SaveDataset(ds dataset.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	payload, err := encodeDataset(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	now := nowUTC()
	_, err = s.db.Exec(
		`INSERT INTO datasets(name, kind, payload, created_at, updated_at)
		 VALUES(?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET kind=excluded.kind, payload=excluded.payload, updated_at=excluded.updated_at`,
		ds.Name(), string(ds.Kind()), payload, now, now,
	)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

// DeleteDataset removes the named dataset.
func (s *SqlStore) DeleteDataset(name string) error {
	res, err := s.db.Exec("DELETE FROM datasets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	return nil
}

// ListDatasets returns the catalog ordered by name.
func (s *SqlStore) ListDatasets() ([]DatasetInfo, error) {
	rows, err := s.db.Query("SELECT name, kind, updated_at FROM datasets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()
	var list []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		var kind string
		if err := rows.Scan(&info.Name, &kind, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		info.Kind = dataset.Kind(kind)
		list = append(list, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return list, nil
}

// SaveResult appends one execution outcome and returns its row id.
func (s *SqlStore) SaveResult(algorithm, input string, res engine.Result) (int64, error) {
	metrics, err := json.Marshal(res.Metrics)
	if err != nil {
		return 0, fmt.Errorf("marshal metrics: %w", err)
	}
	outputName := ""
	if res.Output != nil {
		outputName = res.Output.Name()
	}
	row, err := s.db.Exec(
		`INSERT INTO results(algorithm, input, output, success, duration, error, metrics, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		algorithm, input, outputName, boolToInt(res.Success), res.Duration.String(), res.Error, metrics, nowUTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	id, err := row.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListResults returns all persisted results, oldest first.
func (s *SqlStore) ListResults() ([]ResultRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, algorithm, input, output, success, duration, error, metrics, created_at FROM results ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()
	var list []ResultRecord
	for rows.Next() {
		var r ResultRecord
		var success int
		var metrics []byte
		if err := rows.Scan(&r.ID, &r.Algorithm, &r.Input, &r.Output, &success, &r.Duration, &r.Error, &metrics, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Success = success == 1
		if len(metrics) > 0 {
			if err := json.Unmarshal(metrics, &r.Metrics); err != nil {
				return nil, fmt.Errorf("unmarshal metrics: %w", err)
			}
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return list, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
