// Package matrix provides the small dense-matrix toolkit the engine needs:
// a row-major Dense matrix with bounds-checked access, a Symmetric similarity
// matrix indexed by cell ids, and validators for the numeric contract
// (finite, symmetric, unit interval).
//
// What & Why:
//
//	Correlation between loss signals is symmetric with a unit diagonal, and
//	clustering consumes 1 − correlation as a distance.  Keeping both views
//	behind one type lets topology inference hand a single object to the
//	clusterer, the confidence scorer and the report encoder.
//
// Complexity:
//
//	At/Set/Get run in O(1) with bounds checks; Distance and the validators
//	run in O(n²).
package matrix
