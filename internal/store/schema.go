package store

// schemaVersionV1 is the initial schema.
const schemaVersionV1 = 1

// currentSchemaVersion is the target schema version for this build.
const currentSchemaVersion = schemaVersionV1

// schemaV1 holds datasets as JSON documents keyed by name and execution
// results as append-only rows.
const schemaV1 = `
CREATE TABLE schema_version (
    version INTEGER NOT NULL
);

CREATE TABLE datasets (
    name       TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    payload    BLOB NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE results (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    algorithm  TEXT NOT NULL,
    input      TEXT NOT NULL,
    output     TEXT NOT NULL DEFAULT '',
    success    INTEGER NOT NULL,
    duration   TEXT NOT NULL,
    error      TEXT NOT NULL DEFAULT '',
    metrics    BLOB,
    created_at TEXT NOT NULL
);

CREATE INDEX idx_results_algorithm ON results(algorithm);
`
