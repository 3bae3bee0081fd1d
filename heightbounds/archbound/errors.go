package archbound

import (
	"errors"
)

// This file collects all error kinds that can be returned by this package.
//
// IMPORTANT: Functions usually return errors wrapping one of the sentinels
// given here. Never compare errors for equality; use [errors.Is].
// Diagnostic context (embedding index, iteration count, requested precision)
// travels with the error and can be recovered with
// [errorsWithData.GetDataFromError] for the data types below.

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "heightbounds / archbound: "

var (
	// ErrUnsupportedField indicates a base field that is neither the rationals
	// nor an absolute extension of the rationals. There is no retry.
	ErrUnsupportedField = errors.New(ErrorPrefix + "base field must be the rationals or an absolute number field")

	// ErrPrecisionInsufficient indicates that root finding could not resolve
	// the required roots at the working precision. The expected remedy is to
	// retry with higher precision; this package never retries on its own.
	ErrPrecisionInsufficient = errors.New(ErrorPrefix + "roots were not resolved at the working precision")

	// ErrInvariantViolated indicates that the refined bound sequence failed to
	// be non-increasing. The sequence is non-increasing by theory, so this
	// points at a numerical precision problem (or a bug) and the computation
	// is aborted rather than returning a possibly wrong bound.
	ErrInvariantViolated = errors.New(ErrorPrefix + "refined bound sequence increased between iterations")

	// ErrInvalidInput indicates an invalid configuration value or an internal
	// precondition failure (such as a negative iterate reaching the contraction map).
	ErrInvalidInput = errors.New(ErrorPrefix + "invalid input")
)

// RootResolutionErrorData is attached to errors wrapping [ErrPrecisionInsufficient].
type RootResolutionErrorData struct {
	Precision int // requested working precision in decimal digits
}

// RefinementErrorData is attached to errors wrapping [ErrInvariantViolated].
type RefinementErrorData struct {
	Iteration int // 1-based count of contraction applications at the failure
}

// EmbeddingErrorData is attached by [FieldBound] to any error propagated from
// a per-embedding computation.
type EmbeddingErrorData struct {
	EmbeddingIndex int // 1-based index in the field's embedding enumeration
	RealEmbedding  bool
}
