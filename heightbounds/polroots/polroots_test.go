package polroots

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/bigcomplex"
)

const testPrec = 128

func realPoly(coeffs ...float64) []*bigcomplex.Complex {
	out := make([]*bigcomplex.Complex, len(coeffs))
	for i, c := range coeffs {
		out[i] = bigcomplex.New(testPrec).SetFloat64(c, 0)
	}
	return out
}

// requireRootsMatch checks that every expected value is approximated by
// exactly one computed root, in any order.
func requireRootsMatch(t *testing.T, roots []*bigcomplex.Complex, expected [][2]float64) {
	t.Helper()
	require.Len(t, roots, len(expected))
	used := make([]bool, len(roots))
	for _, want := range expected {
		found := false
		for i, r := range roots {
			if used[i] {
				continue
			}
			re, im := r.Float64s()
			if abs(re-want[0]) < 1e-10 && abs(im-want[1]) < 1e-10 {
				used[i] = true
				found = true
				break
			}
		}
		require.Truef(t, found, "no computed root close to %v+%v*i, got %v", want[0], want[1], roots)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestCubicWithIntegerRoots(t *testing.T) {
	// (t-1)(t-2)(t-3) = t^3 - 6t^2 + 11t - 6
	roots, err := All(realPoly(-6, 11, -6, 1), testPrec)
	require.NoError(t, err)
	requireRootsMatch(t, roots, [][2]float64{{1, 0}, {2, 0}, {3, 0}})
	require.True(t, Resolved(roots, testPrec))
}

func TestTwoTorsionCubic(t *testing.T) {
	// t^3 - t, the two-torsion cubic of y^2 = x^3 - x.
	roots, err := All(realPoly(0, -1, 0, 1), testPrec)
	require.NoError(t, err)
	requireRootsMatch(t, roots, [][2]float64{{-1, 0}, {0, 0}, {1, 0}})
	require.True(t, Resolved(roots, testPrec))
}

func TestConjugatePair(t *testing.T) {
	roots, err := All(realPoly(1, 0, 1), testPrec)
	require.NoError(t, err)
	requireRootsMatch(t, roots, [][2]float64{{0, 1}, {0, -1}})
	require.True(t, Resolved(roots, testPrec))
}

func TestLinear(t *testing.T) {
	// 2t - 4; the linear case bypasses the iteration entirely.
	roots, err := All(realPoly(-4, 2), testPrec)
	require.NoError(t, err)
	requireRootsMatch(t, roots, [][2]float64{{2, 0}})
}

func TestQuintic(t *testing.T) {
	// (t^2+1)(t-1)(t+2)(t-1/2) = t^5 + (1/2)t^4 - (3/2)t^3 + (3/2)t^2 + ... ;
	// built by expanding from the factors instead of hardcoding.
	factors := [][]*bigcomplex.Complex{
		realPoly(1, 0, 1),
		realPoly(-1, 1),
		realPoly(2, 1),
		realPoly(-0.5, 1),
	}
	poly := realPoly(1)
	for _, f := range factors {
		next := make([]*bigcomplex.Complex, len(poly)+len(f)-1)
		for i := range next {
			next[i] = bigcomplex.New(testPrec)
		}
		tmp := bigcomplex.New(testPrec)
		for i, a := range poly {
			for j, b := range f {
				next[i+j].Add(next[i+j], tmp.Mul(a, b))
			}
		}
		poly = next
	}
	require.Len(t, poly, 6)

	roots, err := All(poly, testPrec)
	require.NoError(t, err)
	requireRootsMatch(t, roots, [][2]float64{{0, 1}, {0, -1}, {1, 0}, {-2, 0}, {0.5, 0}})
	require.True(t, Resolved(roots, testPrec))
}

func TestDegenerateInput(t *testing.T) {
	_, err := All(realPoly(5), testPrec)
	require.ErrorIs(t, err, ErrInvalidPolynomial)

	_, err = All(realPoly(1, 2, 0), testPrec)
	require.ErrorIs(t, err, ErrInvalidPolynomial)
}

func TestDoubleRootNotResolved(t *testing.T) {
	// t^2 has a double root at 0. The iteration either fails to converge or
	// converges to two copies that the separation check must reject.
	roots, err := All(realPoly(0, 0, 1), testPrec)
	if err != nil {
		require.ErrorIs(t, err, ErrNotResolved)
		return
	}
	require.False(t, Resolved(roots, testPrec))
}

func TestNearDoubleRootNeedsPrecision(t *testing.T) {
	// t(t-eps)(t-1) with eps = 10^-30: unresolvable at 64 bits, resolvable at 512.
	eps := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil))
	one := big.NewRat(1, 1)

	// expanded: t^3 - (1+eps)t^2 + eps*t
	c2 := new(big.Rat).Add(one, eps)
	c2.Neg(c2)
	mk := func(prec uint) []*bigcomplex.Complex {
		return []*bigcomplex.Complex{
			bigcomplex.New(prec),
			bigcomplex.New(prec).SetRat(eps),
			bigcomplex.New(prec).SetRat(c2),
			bigcomplex.New(prec).SetFloat64(1, 0),
		}
	}

	roots, err := All(mk(64), 64)
	if err == nil {
		require.False(t, Resolved(roots, 64))
	} else {
		require.ErrorIs(t, err, ErrNotResolved)
	}

	roots, err = All(mk(512), 512)
	require.NoError(t, err)
	require.True(t, Resolved(roots, 512))
}

func TestThresholdScalesWithRoots(t *testing.T) {
	small := []*bigcomplex.Complex{bigcomplex.New(testPrec).SetFloat64(0.5, 0)}
	wide := []*bigcomplex.Complex{bigcomplex.New(testPrec).SetFloat64(1e10, 0)}
	require.Equal(t, -1, Threshold(small, testPrec).Cmp(Threshold(wide, testPrec)))
}
