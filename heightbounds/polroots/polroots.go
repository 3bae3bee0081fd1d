// Package polroots finds all complex roots of a polynomial with complex
// coefficients at a caller-chosen working precision.
//
// The solver runs the Durand-Kerner (Weierstrass) simultaneous iteration,
// which needs nothing beyond field arithmetic and therefore works unchanged at
// arbitrary precision. Failure to converge is reported as a distinct error so
// that callers can tell "no result at this precision" apart from "got all the
// roots"; whether converged roots are actually separated at the working
// precision is a second, independent check ([Resolved]).
package polroots

import (
	"errors"
	"math/big"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/bigcomplex"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "heightbounds / polroots: "

var (
	// ErrInvalidPolynomial indicates a constant polynomial or a zero leading coefficient.
	ErrInvalidPolynomial = errors.New(ErrorPrefix + "polynomial must have degree >= 1 and a non-zero leading coefficient")
	// ErrNotResolved indicates that the root iteration did not converge at the
	// requested precision. The expected remedy is to retry with higher precision.
	ErrNotResolved = errors.New(ErrorPrefix + "root iteration did not converge at the requested precision")
)

// All returns the deg(p) complex roots, with multiplicity, of
//
//	p(t) = coeffs[0] + coeffs[1]*t + ... + coeffs[deg]*t^deg
//
// computed at the given working precision in bits. The order of the returned
// roots is deterministic but otherwise unspecified.
//
// All returns ErrInvalidPolynomial for degenerate input and ErrNotResolved if
// the iteration fails to converge at the requested precision.
func All(coeffs []*bigcomplex.Complex, prec uint) ([]*bigcomplex.Complex, error) {
	n := len(coeffs) - 1
	if n < 1 || coeffs[n].IsZero() {
		return nil, ErrInvalidPolynomial
	}

	monic := make([]*bigcomplex.Complex, n+1)
	for i, c := range coeffs {
		monic[i] = bigcomplex.New(prec).Div(c, coeffs[n])
	}

	if n == 1 {
		return []*bigcomplex.Complex{bigcomplex.New(prec).Neg(monic[0])}, nil
	}

	// Durand-Kerner with the customary initial guesses (0.4+0.9i)^k, which are
	// neither real nor roots of unity and so avoid the symmetric stall cases.
	z := make([]*bigcomplex.Complex, n)
	base := bigcomplex.New(prec).SetFloat64(0.4, 0.9)
	cur := bigcomplex.New(prec).SetFloat64(1, 0)
	for k := range z {
		cur.Mul(cur, base)
		z[k] = bigcomplex.New(prec).Set(cur)
	}

	// Convergence: largest correction below 2^(8-prec) relative to the largest iterate.
	tol := new(big.Float).SetPrec(prec).SetInt64(1)
	tol.SetMantExp(tol, 8-int(prec))

	num := bigcomplex.New(prec)
	den := bigcomplex.New(prec)
	diff := bigcomplex.New(prec)
	step := bigcomplex.New(prec)
	nudge := bigcomplex.New(prec).SetFloat64(1e-3, 2e-3)

	maxIter := 64 + int(prec)
	for iter := 0; iter < maxIter; iter++ {
		maxStep := new(big.Float).SetPrec(prec)
		scale := new(big.Float).SetPrec(prec).SetInt64(1)
		perturbed := false

		for k := range z {
			evalAt(num, monic, z[k])
			den.SetFloat64(1, 0)
			for j := range z {
				if j == k {
					continue
				}
				diff.Sub(z[k], z[j])
				den.Mul(den, diff)
			}
			if den.IsZero() {
				// Two iterates collided; push one of them off and keep going.
				z[k].Add(z[k], nudge)
				perturbed = true
				continue
			}
			step.Div(num, den)
			z[k].Sub(z[k], step)

			if a := step.Abs(); a.Cmp(maxStep) > 0 {
				maxStep = a
			}
			if a := z[k].Abs(); a.Cmp(scale) > 0 {
				scale = a
			}
		}

		if perturbed {
			continue
		}
		scale.Mul(scale, tol)
		if maxStep.Cmp(scale) <= 0 {
			return z, nil
		}
	}
	return nil, ErrNotResolved
}

// Threshold returns the resolution threshold 2^(-prec/2) scaled by the largest
// root magnitude (at least 1). Two roots closer than this are considered not
// separated at the given working precision.
func Threshold(roots []*bigcomplex.Complex, prec uint) *big.Float {
	scale := new(big.Float).SetPrec(prec).SetInt64(1)
	for _, r := range roots {
		if a := r.Abs(); a.Cmp(scale) > 0 {
			scale = a
		}
	}
	thr := new(big.Float).SetPrec(prec)
	return thr.SetMantExp(scale, -int(prec/2))
}

// Resolved reports whether all roots are pairwise separated by more than
// [Threshold] at the given working precision.
func Resolved(roots []*bigcomplex.Complex, prec uint) bool {
	thr := Threshold(roots, prec)
	diff := bigcomplex.New(prec)
	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			diff.Sub(roots[i], roots[j])
			if diff.Abs().Cmp(thr) <= 0 {
				return false
			}
		}
	}
	return true
}

// evalAt sets dst to p(at) for the monic coefficient vector p, via Horner's rule.
func evalAt(dst *bigcomplex.Complex, monic []*bigcomplex.Complex, at *bigcomplex.Complex) {
	dst.Set(monic[len(monic)-1])
	for i := len(monic) - 2; i >= 0; i-- {
		dst.Mul(dst, at)
		dst.Add(dst, monic[i])
	}
}
