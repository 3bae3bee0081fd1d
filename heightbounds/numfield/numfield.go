// Package numfield provides the minimal number-field arithmetic the
// height-bound computation consumes: absolute number fields presented by a
// monic minimal polynomial over the rationals, their signature and degree, a
// deterministic enumeration of their archimedean embeddings, and conjugation
// of field elements under a chosen embedding.
//
// The embedding-ordering convention is an explicit contract of this package
// (and is tested as such): real embeddings come first, ordered by increasing
// root value; then one representative per conjugate pair of complex
// embeddings, with positive imaginary part, ordered lexicographically by
// (real part, imaginary part). Indices are 1-based.
//
// Relative extensions (towers of fields) can be represented so that callers
// which only support absolute fields can recognize and reject them; no
// arithmetic is offered for them.
package numfield

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/bigcomplex"
	"github.com/GottfriedHerold/HeightBounds/heightbounds/polroots"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "heightbounds / numfield: "

var (
	// ErrInvalidMinPoly indicates a constant defining polynomial or a zero leading coefficient.
	ErrInvalidMinPoly = errors.New(ErrorPrefix + "the defining polynomial must be non-constant with a non-zero leading coefficient")
	// ErrNotAbsolute indicates an operation that is only available for the
	// rationals or an absolute extension of the rationals.
	ErrNotAbsolute = errors.New(ErrorPrefix + "operation requires the rationals or an absolute extension of the rationals")
	// ErrTooManyCoefficients indicates an element coefficient vector longer than the field degree.
	ErrTooManyCoefficients = errors.New(ErrorPrefix + "element has more power-basis coefficients than the field degree")
)

// NumberField is a number field, given either as an absolute extension
// Q[t]/(m(t)) of the rationals or as a relative extension of another
// NumberField. The rationals themselves are the degree-1 field [Rationals].
//
// The defining polynomial is not checked for irreducibility; presenting a
// reducible polynomial yields an order in a product of fields and the
// embedding enumeration will happily enumerate its ring homomorphisms into C.
type NumberField struct {
	minPoly []*big.Rat // monic, ascending degree, len = degree+1
	base    *NumberField
}

// Rationals is the field of rational numbers, the degree-1 absolute field with minimal polynomial t.
var Rationals = &NumberField{minPoly: []*big.Rat{new(big.Rat), big.NewRat(1, 1)}}

// New returns the absolute number field defined by the polynomial
//
//	minPoly[0] + minPoly[1]*t + ... + minPoly[deg]*t^deg
//
// over the rationals. The polynomial is normalized to be monic.
func New(minPoly []*big.Rat) (*NumberField, error) {
	normalized, err := normalizeMinPoly(minPoly)
	if err != nil {
		return nil, err
	}
	return &NumberField{minPoly: normalized}, nil
}

// NewRelative returns the relative extension of base defined by minPoly, with
// coefficients read as rationals. The result exists only so that consumers can
// recognize towers and reject them; it supports Degree and IsAbsolute, nothing more.
func NewRelative(base *NumberField, minPoly []*big.Rat) (*NumberField, error) {
	if base == nil {
		return nil, fmt.Errorf("%snil base field: %w", ErrorPrefix, ErrInvalidMinPoly)
	}
	normalized, err := normalizeMinPoly(minPoly)
	if err != nil {
		return nil, err
	}
	return &NumberField{minPoly: normalized, base: base}, nil
}

func normalizeMinPoly(minPoly []*big.Rat) ([]*big.Rat, error) {
	deg := len(minPoly) - 1
	if deg < 1 || minPoly[deg].Sign() == 0 {
		return nil, ErrInvalidMinPoly
	}
	normalized := make([]*big.Rat, deg+1)
	for i, c := range minPoly {
		normalized[i] = new(big.Rat).Quo(c, minPoly[deg])
	}
	return normalized, nil
}

// Degree returns the absolute degree of f over the rationals.
func (f *NumberField) Degree() int {
	d := len(f.minPoly) - 1
	if f.base != nil {
		d *= f.base.Degree()
	}
	return d
}

// IsAbsolute reports whether f is the rationals or a single extension of the
// rationals, as opposed to a tower of extensions.
func (f *NumberField) IsAbsolute() bool {
	return f.base == nil
}

// Embedding is one archimedean embedding of a number field into the complex
// numbers: a root of the defining polynomial together with its 1-based index
// in the package's ordering contract and the real/complex classification.
// For indices beyond the real range, the embedding is the chosen
// representative (positive imaginary part) of its conjugate pair.
type Embedding struct {
	Index int
	Real  bool
	root  *bigcomplex.Complex
}

// Root returns a copy of the root of the defining polynomial that induces e.
func (e Embedding) Root() *bigcomplex.Complex {
	return bigcomplex.New(e.root.Prec()).Set(e.root)
}

// Embeddings enumerates the archimedean embeddings of f at the given working
// precision in bits, following the package's ordering contract. The number of
// returned embeddings is r+s for a field of signature (r, s).
//
// Embeddings returns ErrNotAbsolute for towers. A failure to resolve the roots
// of the defining polynomial at the working precision surfaces as an error
// wrapping [polroots.ErrNotResolved]; the remedy is to retry at higher precision.
func (f *NumberField) Embeddings(prec uint) ([]Embedding, error) {
	if !f.IsAbsolute() {
		return nil, ErrNotAbsolute
	}
	n := f.Degree()
	coeffs := make([]*bigcomplex.Complex, n+1)
	for i, c := range f.minPoly {
		coeffs[i] = bigcomplex.New(prec).SetRat(c)
	}
	roots, err := polroots.All(coeffs, prec)
	if err != nil {
		return nil, fmt.Errorf("%sfinding roots of the defining polynomial: %w", ErrorPrefix, err)
	}
	if !polroots.Resolved(roots, prec) {
		return nil, fmt.Errorf("%sroots of the defining polynomial are not separated at precision %v bits: %w",
			ErrorPrefix, prec, polroots.ErrNotResolved)
	}

	thr := polroots.Threshold(roots, prec)
	var realRoots, complexRoots []*bigcomplex.Complex
	for _, r := range roots {
		im := r.Imag()
		switch {
		case im.Abs(im).Cmp(thr) <= 0:
			// Real embedding; flatten the spurious imaginary part.
			realRoots = append(realRoots, bigcomplex.New(prec).SetFloat(r.Real(), new(big.Float)))
		case r.Imag().Sign() > 0:
			complexRoots = append(complexRoots, bigcomplex.New(prec).Set(r))
		}
	}
	if len(realRoots)+2*len(complexRoots) != n {
		return nil, fmt.Errorf("%sconjugate pairs of the defining polynomial do not match up at precision %v bits: %w",
			ErrorPrefix, prec, polroots.ErrNotResolved)
	}

	sort.Slice(realRoots, func(i, j int) bool {
		return realRoots[i].Real().Cmp(realRoots[j].Real()) < 0
	})
	sort.Slice(complexRoots, func(i, j int) bool {
		if c := complexRoots[i].Real().Cmp(complexRoots[j].Real()); c != 0 {
			return c < 0
		}
		return complexRoots[i].Imag().Cmp(complexRoots[j].Imag()) < 0
	})

	embeddings := make([]Embedding, 0, len(realRoots)+len(complexRoots))
	for _, r := range realRoots {
		embeddings = append(embeddings, Embedding{Index: len(embeddings) + 1, Real: true, root: r})
	}
	for _, r := range complexRoots {
		embeddings = append(embeddings, Embedding{Index: len(embeddings) + 1, Real: false, root: r})
	}
	return embeddings, nil
}

// Signature returns the signature (r, s) of f: r real embeddings and s
// conjugate pairs of complex embeddings, so that Degree() == r + 2s.
// The working precision is used to classify the roots of the defining polynomial.
func (f *NumberField) Signature(prec uint) (r, s int, err error) {
	embeddings, err := f.Embeddings(prec)
	if err != nil {
		return 0, 0, err
	}
	for _, e := range embeddings {
		if e.Real {
			r++
		} else {
			s++
		}
	}
	return r, s, nil
}
