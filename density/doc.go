// Package density implements the per-tree DensityRegion and the Tracker
// that keeps every region current as entities are inserted, removed, or
// moved, driving the adaptation engine's periodic trigger checks (spec
// §3, §4.F).
package density
