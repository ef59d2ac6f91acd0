// Package fronthaul is an offline analysis engine for O-RAN fronthaul
// captures: it discovers which radio cells share an Ethernet link, sizes
// every link with and without a switch buffer, and explains congestion.
//
// 🚀 What does it do?
//
//	Given per-cell packet statistics and per-symbol throughput:
//		• Topology: correlate packet-loss bursts and cluster cells into links
//		• Demand: aggregate symbol throughput into per-slot link demand
//		• Capacity: percentile sizing and a leaky-bucket buffer model
//		• Root cause: rank the cells behind every congested slot
//		• What-if: replay sizing on scaled traffic
//
// Packages, bottom-up:
//
//	matrix/    — dense and labeled symmetric matrices + numeric validators
//	dtw/       — banded dynamic time warping similarity
//	cluster/   — average and single linkage hierarchical clustering
//	signal/    — glitch scrubbing and loss-fraction bucketing
//	topology/  — lag-tolerant correlation, anchored link inference
//	demand/    — slot demand aggregation per link
//	capacity/  — percentile and buffered capacity estimators
//	rootcause/ — congestion event attribution
//	config/    — YAML configuration with validated defaults
//	dataset/   — capture file loader
//	pipeline/  — end-to-end run, metrics, logging, what-if
//	report/    — JSON document and text summary
//	cmd/fronthaul — command-line front end
//
// Quick start:
//
//	fronthaul -data ./capture -config fronthaul.yaml -out result.json
package fronthaul
