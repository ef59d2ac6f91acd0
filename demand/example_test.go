package demand_test

import (
	"fmt"

	"github.com/katalvlaran/fronthaul/demand"
	"github.com/katalvlaran/fronthaul/signal"
)

func ExampleAggregate() {
	opts := demand.Options{SymbolDuration: 1, SymbolsPerSlot: 2, SlotDuration: 2}
	tp := map[int][]signal.ThroughputSample{
		4: {{Timestamp: 0, Kilobits: 1e6}, {Timestamp: 1, Kilobits: 1e6}, {Timestamp: 3, Kilobits: 1e6}},
		7: {{Timestamp: 2, Kilobits: 4e6}},
	}

	series, err := demand.Aggregate(map[int][]int{1: {4, 7}}, tp, opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := series[1]
	fmt.Println("slots:", s.SlotTimes)
	fmt.Println("cell 4:", s.PerCell[4])
	fmt.Println("cell 7:", s.PerCell[7])
	fmt.Println("total:", s.Aggregate)
	// Output:
	// slots: [1 3]
	// cell 4: [1 0.5]
	// cell 7: [0 2]
	// total: [1 2.5]
}
