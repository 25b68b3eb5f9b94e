// pkg/model/counters.go
package model

// EntityCounters tracks the quality bookkeeping for one entity's transform.
//
// MissingHandled deliberately means different things per entity, matching
// the report this pipeline has always emitted: for customers it is the
// number of cells still null after defaulting, for products the number of
// zero-valued price and stock cells, and for sales the number of rows
// excluded between the raw count and the final set (so it folds duplicate
// removals in). Unifying these would silently change report meaning.
type EntityCounters struct {
	RawCount       int
	DupRemoved     int
	MissingHandled int
}
