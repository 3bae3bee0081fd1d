// Package archbound bounds the archimedean contribution to the difference
// between the naive and the canonical (Neron-Tate) height on an elliptic
// curve over a number field.
//
// The curve enters through its invariants b2, b4, b6. At each archimedean
// place, the x-coordinates of the nontrivial two-torsion points -- the roots
// of the monic cubic t^3 + (b2/4)t^2 + (b4/2)t + b6/4 -- yield two small
// coefficient matrices, and iterating a contraction map built from them
// tightens the classical geometric-series bound to a provably better one
// (Stoll's refinement). [EmbeddingBound] computes this per-place bound;
// [FieldBound] averages the per-place bounds over all archimedean places,
// weighted by place degree.
//
// All results are rigorous upper bounds for the configured working precision;
// failure modes (unresolved roots, a bound sequence that stops being
// monotone) surface as errors rather than as silently wrong numbers.
package archbound

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/bigcomplex"
	"github.com/GottfriedHerold/HeightBounds/heightbounds/errorsWithData"
	"github.com/GottfriedHerold/HeightBounds/heightbounds/polroots"
)

// EmbeddingBound computes the refined height-difference bound at a single
// archimedean place. b2, b4 and b6 are the curve invariants already
// conjugated under the chosen embedding; realEmbedding states whether that
// embedding is real. The remaining knobs come from cfg.
//
// Error kinds: [ErrInvalidInput] for a bad configuration,
// [ErrPrecisionInsufficient] if the two-torsion cubic does not resolve into
// three distinct roots at cfg.Precision, and [ErrInvariantViolated] if the
// refinement sequence stops being non-increasing.
func EmbeddingBound(b2, b4, b6 *bigcomplex.Complex, realEmbedding bool, cfg Config) (*big.Float, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r, err := newRefiner(b2, b4, b6, realEmbedding, cfg)
	if err != nil {
		return nil, err
	}
	return r.run()
}

// refiner holds the per-embedding state of one bound computation.
// Everything is computed fresh per call and discarded afterwards.
type refiner struct {
	cfg       Config
	prec      uint // working precision in bits
	realPlace bool

	// roots of the two-torsion cubic and their moduli
	roots   [3]*bigcomplex.Complex
	rootAbs [3]*big.Float

	// aMat expresses the squares of the two coordinate covariants as
	// non-negative combinations of the three weight functions; its entries are
	// absolute values by construction.
	aMat [2][3]*big.Float

	// bMat row k = (1, -r_k) expresses the square of the k-th weight function
	// in terms of the pair of duplication covariants the iterates stand in for.
	bMat [3][2]*bigcomplex.Complex
}

func newRefiner(b2, b4, b6 *bigcomplex.Complex, realEmbedding bool, cfg Config) (*refiner, error) {
	prec := cfg.precBits()
	r := &refiner{cfg: cfg, prec: prec, realPlace: realEmbedding}

	quarter := big.NewFloat(0.25)
	half := big.NewFloat(0.5)

	// The monic two-torsion cubic t^3 + (b2/4)t^2 + (b4/2)t + b6/4, whose
	// roots are the x-coordinates of the nontrivial two-torsion points.
	cubic := []*bigcomplex.Complex{
		bigcomplex.New(prec).MulReal(b6, quarter),
		bigcomplex.New(prec).MulReal(b4, half),
		bigcomplex.New(prec).MulReal(b2, quarter),
		bigcomplex.New(prec).SetFloat64(1, 0),
	}
	roots, err := polroots.All(cubic, prec)
	if err != nil || !polroots.Resolved(roots, prec) {
		return nil, errorsWithData.NewErrorWithData(ErrPrecisionInsufficient,
			fmt.Sprintf("%sthe two-torsion cubic did not resolve into three distinct roots at %v decimal digits; retry at higher precision",
				ErrorPrefix, cfg.Precision),
			RootResolutionErrorData{Precision: cfg.Precision})
	}
	copy(r.roots[:], roots)
	for k := 0; k < 3; k++ {
		r.rootAbs[k] = roots[k].Abs()
		r.bMat[k][0] = bigcomplex.New(prec).SetFloat64(1, 0)
		r.bMat[k][1] = bigcomplex.New(prec).Neg(roots[k])
	}

	// aMat row 1: |(b4/4 - r_k (r_j + r_l)) / ((r_k - r_j)(r_k - r_l))|,
	// aMat row 2: |1 / (2 (r_k - r_j)(r_k - r_l))|,
	// where {j, l} are the two indices other than k. The Abs on every entry is
	// essential: the entries stay non-negative reals even when the roots are complex.
	b4quarter := bigcomplex.New(prec).MulReal(b4, quarter)
	num := bigcomplex.New(prec)
	den := bigcomplex.New(prec)
	t := bigcomplex.New(prec)
	for k := 0; k < 3; k++ {
		j, l := (k+1)%3, (k+2)%3
		den.Sub(r.roots[k], r.roots[j])
		den.Mul(den, t.Sub(r.roots[k], r.roots[l]))

		num.Add(r.roots[j], r.roots[l])
		num.Mul(num, r.roots[k])
		num.Sub(b4quarter, num)
		r.aMat[0][k] = t.Div(num, den).Abs()

		r.aMat[1][k] = t.Div(bigcomplex.New(prec).SetFloat64(0.5, 0), den).Abs()
	}

	if cfg.Verbosity >= 2 {
		cfg.Log.Debug().
			Strs("roots", []string{r.roots[0].String(), r.roots[1].String(), r.roots[2].String()}).
			Strs("a_row1", floatTexts(r.aMat[0][:])).
			Strs("a_row2", floatTexts(r.aMat[1][:])).
			Bool("real_place", realEmbedding).
			Msg("two-torsion data")
	}
	return r, nil
}

// phi applies the contraction map once: given non-negative bounds (d1, d2) on
// the pair of duplication covariants, it returns the induced bounds on the
// two coordinate covariants.
func (r *refiner) phi(d1, d2 *big.Float) (*big.Float, *big.Float, error) {
	if d1.Sign() < 0 || d2.Sign() < 0 {
		return nil, nil, fmt.Errorf("%w: negative iterate reached the contraction map", ErrInvalidInput)
	}
	t1 := bigcomplex.New(r.prec)
	t2 := bigcomplex.New(r.prec)
	s := bigcomplex.New(r.prec)
	var yb [3]*big.Float
	for k := 0; k < 3; k++ {
		y := new(big.Float).SetPrec(r.prec)
		if !r.realPlace || r.cfg.Geometric {
			// Bound valid at arbitrary complex points: |b_k1| d1 + |b_k2| d2.
			y.Mul(r.rootAbs[k], d2)
			y.Add(y, d1)
		} else {
			// Real place, real points: the underlying quantity is real even
			// though b_k2 = -r_k may be complex, so the envelope over the two
			// sign choices is a valid (and sharper) bound.
			t1.MulReal(r.bMat[k][0], d1)
			t2.MulReal(r.bMat[k][1], d2)
			plus := s.Add(t1, t2).Abs()
			minus := s.Sub(t1, t2).Abs()
			if minus.Cmp(plus) > 0 {
				plus = minus
			}
			y.Set(plus)
		}
		yb[k] = y.Sqrt(y)
	}

	v1 := new(big.Float).SetPrec(r.prec)
	v2 := new(big.Float).SetPrec(r.prec)
	t := new(big.Float).SetPrec(r.prec)
	for k := 0; k < 3; k++ {
		v1.Add(v1, t.Mul(r.aMat[0][k], yb[k]))
		v2.Add(v2, t.Mul(r.aMat[1][k], yb[k]))
	}
	v1.Sqrt(v1)
	v2.Sqrt(v2)
	return v1, v2, nil
}

// run iterates the contraction from (1, 1) and extrapolates the bound after m
// applications by the factor 4^m/(4^m - 1). The resulting sequence of bounds
// is non-increasing up to rounding (curves whose contraction is an exact
// power law produce a constant sequence, so consecutive bounds may differ by
// mere ulps in either direction); run stops once an iteration improves the
// bound by less than epsilon, and always performs at least one refinement
// step beyond the initial geometric-series bound.
func (r *refiner) run() (*big.Float, error) {
	eps := new(big.Float).SetPrec(r.prec).SetFloat64(r.cfg.Epsilon)
	d1 := new(big.Float).SetPrec(r.prec).SetInt64(1)
	d2 := new(big.Float).SetPrec(r.prec).SetInt64(1)

	v1, v2, err := r.phi(d1, d2)
	if err != nil {
		return nil, err
	}
	m := 1
	bound := r.boundAt(m, v1, v2)
	r.traceIterate(m, v1, v2, bound)

	for {
		m++
		oldBound := bound
		v1, v2, err = r.phi(v1, v2)
		if err != nil {
			return nil, err
		}
		bound = r.boundAt(m, v1, v2)
		r.traceIterate(m, v1, v2, bound)

		diff := new(big.Float).SetPrec(r.prec).Sub(oldBound, bound)
		if diff.Cmp(new(big.Float).Neg(r.roundingSlack(oldBound))) < 0 {
			return nil, errorsWithData.NewErrorWithData(ErrInvariantViolated,
				fmt.Sprintf("%sthe refined bound sequence increased at iteration %v; this indicates insufficient working precision",
					ErrorPrefix, m),
				RefinementErrorData{Iteration: m})
		}
		if diff.Cmp(eps) < 0 {
			if r.cfg.Verbosity >= 1 {
				r.cfg.Log.Debug().
					Int("iterations", m).
					Bool("real_place", r.realPlace).
					Str("bound", bound.Text('g', 12)).
					Msg("refined embedding bound")
			}
			return bound, nil
		}
	}
}

// boundAt computes (4^m/(4^m - 1)) * log(max(v1, v2)).
func (r *refiner) boundAt(m int, v1, v2 *big.Float) *big.Float {
	x := v1
	if v2.Cmp(v1) > 0 {
		x = v2
	}
	lg := bigfloat.Log(new(big.Float).SetPrec(r.prec).Set(x))

	pow := new(big.Float).SetPrec(r.prec).SetInt64(1)
	pow.SetMantExp(pow, 2*m) // 4^m
	den := new(big.Float).SetPrec(r.prec).SetInt64(1)
	den.Sub(pow, den)
	factor := new(big.Float).SetPrec(r.prec).Quo(pow, den)
	return factor.Mul(factor, lg)
}

// roundingSlack is the tolerance for the monotonicity check: half the working
// precision, scaled to the magnitude of the bound. An actual precision failure
// overshoots this by many orders of magnitude.
func (r *refiner) roundingSlack(bound *big.Float) *big.Float {
	scale := new(big.Float).SetPrec(r.prec).Abs(bound)
	if one := big.NewFloat(1); scale.Cmp(one) < 0 {
		scale.Set(one)
	}
	return scale.SetMantExp(scale, -int(r.prec/2))
}

func (r *refiner) traceIterate(m int, v1, v2, bound *big.Float) {
	if r.cfg.Verbosity >= 3 {
		r.cfg.Log.Debug().
			Int("n", m).
			Str("d1", v1.Text('g', 12)).
			Str("d2", v2.Text('g', 12)).
			Str("bound", bound.Text('g', 12)).
			Msg("iterate")
	}
}

func floatTexts(xs []*big.Float) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.Text('g', 8)
	}
	return out
}
