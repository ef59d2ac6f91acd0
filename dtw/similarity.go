package dtw

import "math"

// Similarity returns a length-normalized DTW similarity for two series whose
// values lie in [0,1] (loss fractions):
//
//	sim = 1 − cost(path*) / len(path*)
//
// where path* is the optimal warping path inside a Sakoe–Chiba band of
// ±window steps (window < 0 = unlimited) with no slope penalty. The result is
// clamped to [0,1]; identical series score 1, and pairs that cannot be aligned
// inside the band score 0.
//
// Among equal-cost paths the longest is used. Path lengths are tracked
// alongside costs in two rolling rows, so memory is O(m).
//
// Errors: ErrEmptyInput.
func Similarity(a, b []float64, window int) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmptyInput
	}
	if window < -1 {
		return 0, ErrBadInput
	}

	inf := math.Inf(1)
	prevCost := make([]float64, m+1)
	currCost := make([]float64, m+1)
	prevLen := make([]int, m+1)
	currLen := make([]int, m+1)
	for j := 1; j <= m; j++ {
		prevCost[j] = inf
	}
	for i := 1; i <= n; i++ {
		currCost[0], currLen[0] = inf, 0
		for j := 1; j <= m; j++ {
			if !inBand(i, j, window) {
				currCost[j], currLen[j] = inf, 0
				continue
			}
			// Lexicographic (cost, -length) so the score is independent of argument order.
			c, l := prevCost[j-1], prevLen[j-1]
			if better(prevCost[j], prevLen[j], c, l) {
				c, l = prevCost[j], prevLen[j]
			}
			if better(currCost[j-1], currLen[j-1], c, l) {
				c, l = currCost[j-1], currLen[j-1]
			}
			currCost[j] = math.Abs(a[i-1]-b[j-1]) + c
			currLen[j] = l + 1
		}
		prevCost, currCost = currCost, prevCost
		prevLen, currLen = currLen, prevLen
	}

	cost, steps := prevCost[m], prevLen[m]
	if math.IsInf(cost, 1) || steps == 0 {
		return 0, nil
	}
	sim := 1 - cost/float64(steps)

	return math.Max(0, math.Min(1, sim)), nil
}

// inBand reports whether (i, j) lies inside the Sakoe–Chiba band w (w < 0 = unlimited).
func inBand(i, j, w int) bool {
	return w < 0 || abs(i-j) <= w
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// better reports whether (c1, l1) beats (c2, l2): lower cost, then longer path.
func better(c1 float64, l1 int, c2 float64, l2 int) bool {
	return c1 < c2 || (c1 == c2 && l1 > l2)
}
