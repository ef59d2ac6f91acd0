// Package rootcause explains congestion on a shared link by ranking the cells
// that carried the most demand in each congested slot.
//
// A slot is congested when the link's aggregate demand exceeds its buffered
// capacity. For the first maxEvents congested slots of every link, each cell's
// share 100·cell/aggregate is computed and the two largest non-zero shares are
// reported, largest first.
package rootcause
