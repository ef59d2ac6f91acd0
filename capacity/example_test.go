package capacity_test

import (
	"fmt"

	"github.com/katalvlaran/fronthaul/capacity"
)

// ExampleWithBuffer sizes a link that alternates between idle slots and
// 10 Gbps bursts: the buffer lets the idle slot drain each burst.
func ExampleWithBuffer() {
	agg := make([]float64, 100)
	mask := make([]bool, 100)
	for i := 0; i < len(agg); i += 2 {
		agg[i], mask[i] = 10, true
	}
	masks := map[int][]bool{1: mask}
	p := capacity.DefaultParams()

	nb, _ := capacity.WithoutBuffer(agg, masks, p.MaxLossPct)
	wb, _ := capacity.WithBuffer(agg, masks, p)
	fmt.Printf("no buffer: %.2f Gbps\n", nb)
	fmt.Printf("with buffer: %.2f Gbps\n", wb)
	fmt.Println("savings:", capacity.Reduction(map[int]capacity.Estimate{1: {NoBuffer: nb, WithBuffer: wb}})[1], "%")
	// Output:
	// no buffer: 10.00 Gbps
	// with buffer: 7.78 Gbps
	// savings: 22 %
}

func ExamplePercentile() {
	fmt.Println(capacity.Percentile([]float64{1, 2, 3, 4}, 50))
	// Output: 2.5
}
