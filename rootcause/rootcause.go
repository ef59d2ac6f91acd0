package rootcause

import (
	"sort"

	"github.com/katalvlaran/fronthaul/capacity"
	"github.com/katalvlaran/fronthaul/demand"
)

// DefaultMaxEvents bounds the number of events reported per link.
const DefaultMaxEvents = 5

// TopContributors is the number of cells reported per event.
const TopContributors = 2

// Contribution is one cell's share of a congested slot's aggregate demand.
type Contribution struct {
	CellID int
	Pct    float64 // 0..100
}

// Event is one congested slot on a link.
type Event struct {
	Link         int
	Slot         int     // slot index into the link's Series
	Time         float64 // slot mid-point, seconds
	Demand       float64 // aggregate demand in the slot, Gbps
	Contributors []Contribution
}

// Attribute returns the congestion events of every link that has any.
//
// Congested slots are those with Aggregate > WithBuffer, in slot order; the
// first maxEvents of them are examined (all of them when maxEvents <= 0) and
// slots whose aggregate is not positive are then skipped. Links with
// non-positive capacity, no estimate, or no per-cell breakdown are skipped.
// Contributors tie on share in ascending cell id order.
func Attribute(series map[int]*demand.Series, est map[int]capacity.Estimate, maxEvents int) map[int][]Event {
	out := make(map[int][]Event)
	for link, s := range series {
		e, ok := est[link]
		if !ok || e.WithBuffer <= 0 || s.Empty() || len(s.PerCell) == 0 {
			continue
		}
		cells := make([]int, 0, len(s.PerCell))
		for cid := range s.PerCell {
			cells = append(cells, cid)
		}
		sort.Ints(cells)

		var events []Event
		seen := 0
		for k, total := range s.Aggregate {
			if total <= e.WithBuffer {
				continue
			}
			if maxEvents > 0 && seen == maxEvents {
				break
			}
			seen++
			if total <= 0 {
				continue
			}
			events = append(events, Event{
				Link:         link,
				Slot:         k,
				Time:         slotTime(s, k),
				Demand:       total,
				Contributors: rank(s, cells, k, total),
			})
		}
		if len(events) > 0 {
			out[link] = events
		}
	}

	return out
}

func rank(s *demand.Series, cells []int, k int, total float64) []Contribution {
	contribs := make([]Contribution, 0, len(cells))
	for _, cid := range cells {
		p := 100 * s.PerCell[cid][k] / total
		if p > 0 {
			contribs = append(contribs, Contribution{CellID: cid, Pct: p})
		}
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].Pct > contribs[j].Pct
	})
	if len(contribs) > TopContributors {
		contribs = contribs[:TopContributors]
	}

	return contribs
}

func slotTime(s *demand.Series, k int) float64 {
	if k < len(s.SlotTimes) {
		return s.SlotTimes[k]
	}

	return 0
}
