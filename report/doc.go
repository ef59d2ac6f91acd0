// Package report renders a pipeline.Result for people and for other programs.
//
// Build converts a result into a Document whose JSON layout (string link ids,
// rounded figures, snake_case keys) is what dashboards consume; WriteJSON
// encodes it with json-iterator. WriteSummary prints a short plain-text
// digest with human-friendly rates.
//
// Results containing NaN or ±Inf are rejected with ErrNonFinite instead of
// being coerced.
package report
