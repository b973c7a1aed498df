// Package display provides human-readable names for machine codes and the
// table renderers the CLI prints with.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and logs. Keep raw codes for JSON
// fields, map keys, and equality comparisons.
package display

import (
	"fmt"
	"strings"
	"time"
)

// --- Dataset Kinds ---

var kinds = map[string]string{
	"tabular": "Tabular",
	"graph":   "Graph",
	"any":     "Any Kind",
}

// Kind returns the human-readable name for a dataset kind code.
// Unknown codes are returned as-is.
func Kind(code string) string {
	if name, ok := kinds[code]; ok {
		return name
	}
	return code
}

// --- Algorithms ---

var algorithmNames = map[string]string{
	"pagerank":            "PageRank",
	"connectedcomponents": "Connected Components",
	"minmaxnormalize":     "Min-Max Normalize",
}

// AlgorithmName returns the display name for a registry key.
// "pagerank" -> "PageRank".
func AlgorithmName(key string) string {
	if name, ok := algorithmNames[key]; ok {
		return name
	}
	return key
}

// AlgorithmWithKey returns "PageRank (pagerank)" format for dual-audience
// contexts.
func AlgorithmWithKey(key string) string {
	if name, ok := algorithmNames[key]; ok {
		return name + " (" + key + ")"
	}
	return key
}

// --- Statuses ---

// Status renders a success flag as a fixed-width word.
func Status(success bool) string {
	if success {
		return "OK"
	}
	return "FAILED"
}

// --- Values ---

// Duration trims a duration for table cells: sub-millisecond runs keep full
// precision, everything else rounds to the millisecond.
func Duration(d time.Duration) string {
	if d >= time.Millisecond {
		return d.Round(time.Millisecond).String()
	}
	return d.String()
}

// MetricValue formats a metric for a table cell. Floats are shortened,
// nested structures are summarized rather than dumped.
func MetricValue(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.6g", x)
	case map[string]any:
		return fmt.Sprintf("{%d entries}", len(x))
	case map[int]int:
		return fmt.Sprintf("{%d entries}", len(x))
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

// StepPath converts step algorithm keys to a readable path.
// ["pagerank", "minmaxnormalize"] -> "PageRank -> Min-Max Normalize"
func StepPath(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = AlgorithmName(k)
	}
	return strings.Join(names, " → ")
}
