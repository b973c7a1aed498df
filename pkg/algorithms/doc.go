// Package algorithms holds the built-in analytical algorithms (PageRank,
// ConnectedComponents, MinMaxNormalize) plus the pre-populated registry
// they ship in. Each algorithm embeds engine.Info for its static contract
// and implements only its kind-specific routine; the engine's base template
// owns validation, timing, cancellation, and failure translation.
package algorithms
