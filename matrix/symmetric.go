// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Symmetric is an n×n similarity matrix indexed by an ordered list of
//     integer ids (cell ids), with a unit diagonal.
//   - SetPair writes both (i,j) and (j,i) so symmetry holds by construction.
//   - Distance derives the clustering distance 1 − clamp(s, 0, 1).
//
// Determinism:
//   - The id ordering supplied at construction is the ordering of rows and
//     columns; it is never re-sorted.

package matrix

import "fmt"

// Symmetric is a symmetric similarity matrix over an ordered id set.
type Symmetric struct {
	ids   []int
	index map[int]int
	d     *Dense
}

// NewIdentity returns a Symmetric matrix over ids with ones on the diagonal and
// zeros elsewhere.
//
// Errors: ErrBadShape (no ids), ErrDuplicateID.
func NewIdentity(ids []int) (*Symmetric, error) {
	d, err := NewDense(len(ids), len(ids))
	if err != nil {
		return nil, err
	}
	index := make(map[int]int, len(ids))
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("NewIdentity: id %d: %w", id, ErrDuplicateID)
		}
		index[id] = i
		d.data[i*d.c+i] = 1
	}
	own := make([]int, len(ids))
	copy(own, ids)

	return &Symmetric{ids: own, index: index, d: d}, nil
}

// Size returns n.
func (s *Symmetric) Size() int {
	return len(s.ids)
}

// IDs returns a copy of the id ordering.
func (s *Symmetric) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)

	return out
}

// Index returns the row/column position of id.
func (s *Symmetric) Index(id int) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return 0, fmt.Errorf("Index(%d): %w", id, ErrUnknownID)
	}

	return i, nil
}

// At returns the value at positions (i, j).
func (s *Symmetric) At(i, j int) (float64, error) {
	return s.d.At(i, j)
}

// SetPair assigns v to both (i, j) and (j, i).
func (s *Symmetric) SetPair(i, j int, v float64) error {
	if err := s.d.Set(i, j, v); err != nil {
		return err
	}

	return s.d.Set(j, i, v)
}

// Get returns the value for the id pair (a, b).
func (s *Symmetric) Get(a, b int) (float64, error) {
	i, err := s.Index(a)
	if err != nil {
		return 0, err
	}
	j, err := s.Index(b)
	if err != nil {
		return 0, err
	}

	return s.d.At(i, j)
}

// MaxOffDiagonal returns the largest value in row i excluding the diagonal.
// A 1×1 matrix yields 0.
func (s *Symmetric) MaxOffDiagonal(i int) (float64, error) {
	if i < 0 || i >= len(s.ids) {
		return 0, fmt.Errorf("MaxOffDiagonal(%d): %w", i, ErrOutOfRange)
	}
	best := 0.0
	first := true
	for j := range s.ids {
		if j == i {
			continue
		}
		v := s.d.data[i*s.d.c+j]
		if first || v > best {
			best, first = v, false
		}
	}

	return best, nil
}

// Dense returns a deep copy of the underlying matrix.
func (s *Symmetric) Dense() *Dense {
	return s.d.Clone()
}

// Distance returns the n×n distance matrix 1 − clamp(s, 0, 1) with a zero diagonal.
func (s *Symmetric) Distance() *Dense {
	n := len(s.ids)
	out := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := s.d.data[i*n+j]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			out.data[i*n+j] = 1 - v
		}
	}

	return out
}
