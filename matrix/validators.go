// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for shape and numeric checks.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    match them with errors.Is.
//
// Note:
//  - Composite validators follow a fixed sequence: NotNil → Shape → Finite → Stochastic.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf entry.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite: (%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateRowStochastic checks that every entry is non-negative and finite
// and that every row sums to 1 within eps.
//
// The returned error names the first offending row, e.g.
// "ValidateRowStochastic: row 3: matrix: row is not a probability distribution".
// Use errors.As with *RowError to recover the row index.
//
// Complexity: O(r*c). Space: O(1).
func ValidateRowStochastic(m Matrix, eps float64) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if math.IsNaN(eps) || math.IsInf(eps, 0) {
		return validatorErrorf("ValidateRowStochastic", ErrNaNInf)
	}
	eps = math.Abs(eps)

	for i := 0; i < m.Rows(); i++ {
		sum := 0.0
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &RowError{Row: i, Err: ErrNaNInf}
			}
			if v < 0 {
				return &RowError{Row: i, Err: ErrNotStochastic}
			}
			sum += v
		}
		if math.Abs(sum-1) > eps {
			return &RowError{Row: i, Err: ErrNotStochastic}
		}
	}

	return nil
}

// RowError reports which row failed a row-wise validation.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("ValidateRowStochastic: row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
