package topology_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/fronthaul/topology"
)

func BenchmarkCorrelationMatrix(b *testing.B) {
	ls := threeGroups()
	for _, workers := range []int{1, 4} {
		opts := topology.DefaultOptions()
		opts.Workers = workers
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := topology.CorrelationMatrix(ls, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
