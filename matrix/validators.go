// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for the checks applied to similarity and
//    distance matrices before clustering or export.
//  - Return sentinels wrapped with the validator tag so call sites can use errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare checks that m is non-nil and square.
func ValidateSquare(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric checks |m[i,j] − m[j,i]| <= eps for all i<j.
func ValidateSymmetric(m *Dense, eps float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > eps {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateNaNInf rejects any NaN or ±Inf entry.
func ValidateNaNInf(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNaNInf", ErrNilMatrix)
	}
	for k, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateNaNInf(%d,%d)", k/m.c, k%m.c), ErrNaNInf)
		}
	}

	return nil
}

// ValidateUnitInterval rejects entries outside [0,1] (NaN included).
func ValidateUnitInterval(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateUnitInterval", ErrNilMatrix)
	}
	for k, v := range m.data {
		if !(v >= 0 && v <= 1) {
			return validatorErrorf(fmt.Sprintf("ValidateUnitInterval(%d,%d)", k/m.c, k%m.c), ErrNotUnitInterval)
		}
	}

	return nil
}

// Validate runs the full similarity contract on s: finite, symmetric,
// within [0,1] and with a unit diagonal.
func (s *Symmetric) Validate() error {
	if s == nil || s.d == nil {
		return validatorErrorf("Symmetric.Validate", ErrNilMatrix)
	}
	if err := ValidateNaNInf(s.d); err != nil {
		return err
	}
	if err := ValidateSymmetric(s.d, 0); err != nil {
		return err
	}
	if err := ValidateUnitInterval(s.d); err != nil {
		return err
	}
	for i := range s.ids {
		if s.d.data[i*s.d.c+i] != 1 {
			return validatorErrorf(fmt.Sprintf("Symmetric.Validate diagonal %d", i), ErrNotUnitInterval)
		}
	}

	return nil
}
