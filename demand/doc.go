// Package demand aggregates per-cell symbol-level throughput into slot-level
// link demand, keeping every cell's own contribution alongside the total.
//
// 🚀 What does it build?
//
//	For every link of a topology, a Series on a shared slot axis:
//	  • Aggregate[k]  - total link demand in slot k (Gbps)
//	  • PerCell[c][k] - cell c's share of that demand (Gbps)
//	  • SlotTimes[k]  - slot mid-point, seconds
//
// Symbols are binned by nearest-index rounding onto a symbol axis that spans
// the union of the link's cell time ranges (optionally capped by a window),
// then summed in fixed groups of SymbolsPerSlot.
//
// ✨ Guarantees:
//   - Aggregate[k] is the sum of PerCell[c][k] in ascending cell order, so
//     conservation holds exactly, not approximately.
//   - A link with no cells, no samples, or fewer symbols than one slot yields
//     an empty Series (not an error).
//   - Inputs are never mutated.
//
// ⚙️ Usage:
//
//	series, err := demand.Aggregate(topo, throughput, demand.DefaultOptions())
//	mask := series[2].TrafficMask(demand.DefaultTrafficThreshold)
package demand
