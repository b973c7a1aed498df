// Package dataset defines the capability contracts algorithms consume —
// Tabular for columnar data, Graph for node/edge property data — plus the
// reference in-memory implementations (Table, PropertyGraph) used by the
// engine, the CLI, and the store.
//
// Algorithms only ever read through these interfaces; they never mutate an
// input dataset. Outputs are always freshly constructed datasets.
package dataset
