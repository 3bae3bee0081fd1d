package numfield

import (
	"math/big"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/bigcomplex"
)

// Element is an element of an absolute number field, stored as the rational
// coefficient vector with respect to the power basis 1, t, t^2, ... of the
// field's generator. Elements are immutable after construction.
type Element struct {
	field  *NumberField
	coeffs []*big.Rat
}

// Element builds the field element with the given power-basis coefficients
// (ascending powers of the generator). Missing trailing coefficients are zero.
func (f *NumberField) Element(coeffs ...*big.Rat) (Element, error) {
	if !f.IsAbsolute() {
		return Element{}, ErrNotAbsolute
	}
	if len(coeffs) > f.Degree() {
		return Element{}, ErrTooManyCoefficients
	}
	padded := make([]*big.Rat, f.Degree())
	for i := range padded {
		if i < len(coeffs) && coeffs[i] != nil {
			padded[i] = new(big.Rat).Set(coeffs[i])
		} else {
			padded[i] = new(big.Rat)
		}
	}
	return Element{field: f, coeffs: padded}, nil
}

// FromRat returns x as an element of f.
func (f *NumberField) FromRat(x *big.Rat) Element {
	e, err := f.Element(x)
	if err != nil {
		// Degree >= 1 always admits a constant coefficient.
		panic(err)
	}
	return e
}

// Field returns the number field the element belongs to.
func (e Element) Field() *NumberField {
	return e.field
}

// Embed conjugates e under the given embedding, evaluating the power-basis
// coefficient vector at the embedding's root by Horner's rule at the given
// working precision in bits. For a real embedding the result has zero
// imaginary part.
func (e Element) Embed(emb Embedding, prec uint) *bigcomplex.Complex {
	acc := bigcomplex.New(prec)
	c := bigcomplex.New(prec)
	for i := len(e.coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, emb.root)
		acc.Add(acc, c.SetRat(e.coeffs[i]))
	}
	return acc
}
