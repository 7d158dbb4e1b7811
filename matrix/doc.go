// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra surface epigrid needs
// to hold stochastic transition tables.
//
// What:
//
//   - Dense: a row-major r×c float64 matrix with bounds-checked At/Set.
//   - NewDenseFrom: builds a Dense from a rectangular [][]float64 (deep copy).
//   - Validators: NotNil, Square, Finite and RowStochastic checks returning
//     wrapped sentinel errors.
//
// Why:
//
//   - Transition tables must be validated once, at model construction, and
//     then read many times per generation. Dense keeps rows contiguous so a
//     row lookup is a single slice copy.
//
// Complexity:
//
//   - At/Set: O(1). Row: O(c). Clone: O(r·c).
//   - ValidateRowStochastic: O(r·c), allocation free.
//
// Errors:
//
//   - ErrInvalidDimensions: non-positive shape.
//   - ErrIndexOutOfBounds: row or column outside the matrix.
//   - ErrDimensionMismatch: non-rectangular input or non-square matrix.
//   - ErrNaNInf: a NaN or ±Inf entry.
//   - ErrNilMatrix: nil receiver or argument.
//   - ErrNotStochastic: negative entry or a row that does not sum to 1 within eps.
package matrix
