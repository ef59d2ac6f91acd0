// Package dtw defines the sentinel errors of the DTW similarity.
package dtw

import "errors"

var (
	// ErrEmptyInput indicates one or both inputs are empty.
	ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

	// ErrBadInput indicates a band width below -1.
	ErrBadInput = errors.New("dtw: invalid window")
)

// Unlimited disables the Sakoe–Chiba band.
const Unlimited = -1
