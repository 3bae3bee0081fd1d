package testutils

import (
	"math/big"
)

// FloatsClose reports whether |a - b| <= 2^(-tolBits) * max(1, |a|, |b|).
// Exact comparison of big.Float results is too brittle across precision
// choices; tests compare against reference values through this instead.
func FloatsClose(a, b *big.Float, tolBits uint) bool {
	diff := new(big.Float).SetPrec(a.Prec()).Sub(a, b)
	diff.Abs(diff)

	scale := big.NewFloat(1)
	absA := new(big.Float).Abs(a)
	absB := new(big.Float).Abs(b)
	if absA.Cmp(scale) > 0 {
		scale = absA
	}
	if absB.Cmp(scale) > 0 {
		scale = absB
	}
	tol := new(big.Float).SetPrec(64).SetInt64(1)
	tol.SetMantExp(tol, -int(tolBits))
	tol.Mul(tol, scale)
	return diff.Cmp(tol) <= 0
}
