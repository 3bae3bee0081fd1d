// Package bigcomplex implements complex numbers whose real and imaginary parts
// are arbitrary-precision floats from [math/big].
//
// The API follows the destination-receiver convention of [math/big]: a method
// z.Add(x, y) computes x+y, stores the result in z and returns z. Arguments may
// alias the receiver. The precision of a result is the precision of the
// receiver; a receiver with precision 0 adopts the largest precision among the
// operands, exactly as [big.Float] does for its parts.
//
// Only the operations needed by the height-bound computation are provided:
// ring operations, division, conjugation, absolute value and the principal
// square root. There is deliberately no full elementary-function layer here;
// the real-valued logarithm used by the bound lives with its caller.
package bigcomplex

import (
	"math/big"
	"strings"
)

// ErrorPrefix is the prefix used by all error and panic message strings originating from this package.
const ErrorPrefix = "heightbounds / bigcomplex: "

// Complex is a complex number with arbitrary-precision real and imaginary parts.
//
// The zero value is a usable 0 + 0i with unset (adaptive) precision.
// Complex values must not be copied after first use; pass them by pointer.
type Complex struct {
	re, im big.Float
}

// New returns a new Complex equal to 0 + 0i whose parts carry the given precision in bits.
func New(prec uint) *Complex {
	var z Complex
	z.re.SetPrec(prec)
	z.im.SetPrec(prec)
	return &z
}

// Prec returns the precision of z in bits, defined as the larger of the parts' precisions.
func (z *Complex) Prec() uint {
	p := z.re.Prec()
	if q := z.im.Prec(); q > p {
		p = q
	}
	return p
}

// SetPrec sets both parts of z to the given precision, rounding if necessary, and returns z.
func (z *Complex) SetPrec(prec uint) *Complex {
	z.re.SetPrec(prec)
	z.im.SetPrec(prec)
	return z
}

// Set sets z to x and returns z.
func (z *Complex) Set(x *Complex) *Complex {
	if z != x {
		z.re.Set(&x.re)
		z.im.Set(&x.im)
	}
	return z
}

// SetFloat64 sets z to re + im*i and returns z.
func (z *Complex) SetFloat64(re, im float64) *Complex {
	z.re.SetFloat64(re)
	z.im.SetFloat64(im)
	return z
}

// SetFloat sets z to re + im*i, rounding to z's precision, and returns z.
func (z *Complex) SetFloat(re, im *big.Float) *Complex {
	z.re.Set(re)
	z.im.Set(im)
	return z
}

// SetRat sets z to the real value given by the rational x and returns z.
func (z *Complex) SetRat(x *big.Rat) *Complex {
	z.re.SetRat(x)
	z.im.SetInt64(0)
	return z
}

// Real returns a copy of the real part of z.
func (z *Complex) Real() *big.Float {
	return new(big.Float).Copy(&z.re)
}

// Imag returns a copy of the imaginary part of z.
func (z *Complex) Imag() *big.Float {
	return new(big.Float).Copy(&z.im)
}

// Float64s returns both parts of z as float64, rounding towards the nearest representable value.
func (z *Complex) Float64s() (re, im float64) {
	re, _ = z.re.Float64()
	im, _ = z.im.Float64()
	return
}

// IsZero reports whether z is exactly 0 + 0i.
func (z *Complex) IsZero() bool {
	return z.re.Sign() == 0 && z.im.Sign() == 0
}

// Equal reports whether z and x denote the same complex number, irrespective of precision.
func (z *Complex) Equal(x *Complex) bool {
	return z.re.Cmp(&x.re) == 0 && z.im.Cmp(&x.im) == 0
}

// Neg sets z to -x and returns z.
func (z *Complex) Neg(x *Complex) *Complex {
	z.re.Neg(&x.re)
	z.im.Neg(&x.im)
	return z
}

// Conj sets z to the complex conjugate of x and returns z.
func (z *Complex) Conj(x *Complex) *Complex {
	z.re.Set(&x.re)
	z.im.Neg(&x.im)
	return z
}

// Add sets z to x + y and returns z.
func (z *Complex) Add(x, y *Complex) *Complex {
	z.re.Add(&x.re, &y.re)
	z.im.Add(&x.im, &y.im)
	return z
}

// Sub sets z to x - y and returns z.
func (z *Complex) Sub(x, y *Complex) *Complex {
	z.re.Sub(&x.re, &y.re)
	z.im.Sub(&x.im, &y.im)
	return z
}

// Mul sets z to x * y and returns z.
func (z *Complex) Mul(x, y *Complex) *Complex {
	prec := z.workingPrec(x, y)
	var ac, bd, ad, bc big.Float
	ac.SetPrec(prec).Mul(&x.re, &y.re)
	bd.SetPrec(prec).Mul(&x.im, &y.im)
	ad.SetPrec(prec).Mul(&x.re, &y.im)
	bc.SetPrec(prec).Mul(&x.im, &y.re)
	z.re.Sub(&ac, &bd)
	z.im.Add(&ad, &bc)
	return z
}

// MulReal sets z to x scaled by the real factor f and returns z.
func (z *Complex) MulReal(x *Complex, f *big.Float) *Complex {
	z.re.Mul(&x.re, f)
	z.im.Mul(&x.im, f)
	return z
}

// Div sets z to x / y and returns z. Div panics if y is zero.
func (z *Complex) Div(x, y *Complex) *Complex {
	prec := z.workingPrec(x, y)
	var n big.Float
	n.SetPrec(prec)
	var t big.Float
	t.SetPrec(prec)
	n.Mul(&y.re, &y.re)
	t.Mul(&y.im, &y.im)
	n.Add(&n, &t)
	if n.Sign() == 0 {
		panic(ErrorPrefix + "division by zero")
	}
	// x * conj(y), written out so that z may alias x or y.
	var re, im big.Float
	re.SetPrec(prec)
	im.SetPrec(prec)
	t.Mul(&x.re, &y.re)
	re.Mul(&x.im, &y.im)
	re.Add(&re, &t)
	t.Mul(&x.im, &y.re)
	im.Mul(&x.re, &y.im)
	im.Sub(&t, &im)
	z.re.Quo(&re, &n)
	z.im.Quo(&im, &n)
	return z
}

// AbsSq returns |z|^2 as a new big.Float at z's precision.
func (z *Complex) AbsSq() *big.Float {
	prec := z.workingPrec(z, z)
	r := new(big.Float).SetPrec(prec)
	var t big.Float
	t.SetPrec(prec)
	r.Mul(&z.re, &z.re)
	t.Mul(&z.im, &z.im)
	return r.Add(r, &t)
}

// Abs returns |z| as a new big.Float at z's precision.
func (z *Complex) Abs() *big.Float {
	r := z.AbsSq()
	return r.Sqrt(r)
}

// Sqrt sets z to the principal square root of x and returns z.
// The branch cut follows the usual convention: the result has non-negative
// real part, and for negative real x the result is a positive multiple of i.
func (z *Complex) Sqrt(x *Complex) *Complex {
	prec := z.workingPrec(x, x)
	if x.IsZero() {
		z.re.SetInt64(0)
		z.im.SetInt64(0)
		return z
	}
	// t = sqrt((|x| + |Re(x)|)/2) is the magnitude of the dominant part of the result.
	t := x.Abs()
	t.SetPrec(prec)
	var u big.Float
	u.SetPrec(prec).Abs(&x.re)
	t.Add(t, &u)
	t.SetMantExp(t, -1) // exact halving
	t.Sqrt(t)

	imSign := x.im.Sign()
	if x.re.Sign() >= 0 {
		u.Quo(&x.im, t)
		u.SetMantExp(&u, -1)
		z.re.Set(t)
		z.im.Set(&u)
	} else {
		u.Abs(&x.im)
		u.Quo(&u, t)
		u.SetMantExp(&u, -1)
		z.re.Set(&u)
		if imSign < 0 {
			z.im.Neg(t)
		} else {
			z.im.Set(t)
		}
	}
	return z
}

// String returns a human-readable representation "(re+im*i)" using shortest-roundtrip formatting.
func (z *Complex) String() string {
	re := z.re.Text('g', -1)
	im := z.im.Text('g', -1)
	if !strings.HasPrefix(im, "-") {
		im = "+" + im
	}
	return "(" + re + im + "*i)"
}

// workingPrec determines the precision used for intermediates of an operation
// with operands x, y and destination z, mirroring big.Float's rule.
func (z *Complex) workingPrec(x, y *Complex) uint {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
		if q := y.Prec(); q > prec {
			prec = q
		}
	}
	if prec == 0 {
		prec = 64
	}
	return prec
}
