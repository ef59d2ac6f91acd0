// Package dataset reads per-cell fronthaul captures from a directory.
//
// Two whitespace-separated text files exist per cell id N:
//
//	throughput-cell-N.dat   "<timestamp_sec> <kilobits>" per symbol
//	pkt-stats-cell-N.dat    one header line, then
//	                        "<slot_start_sec> <tx> <rx> <too_late_rx>" per slot
//
// Records are returned sorted by timestamp (stable). Malformed lines,
// non-finite numbers and negative counters are rejected with ErrMalformed
// and the offending line number; nothing is silently coerced.
package dataset
