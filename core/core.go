// Package core holds the station dataset and the read-only query operations over it:
// statistics, temporal aggregates, WHO compliance, cross-station comparison and summary.
//
// Every function is pure. A Dataset is immutable once built, so callers may run any
// number of queries concurrently without locking.
package core
