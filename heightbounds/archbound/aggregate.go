package archbound

import (
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/errorsWithData"
	"github.com/GottfriedHerold/HeightBounds/heightbounds/numfield"
	"github.com/GottfriedHerold/HeightBounds/heightbounds/polroots"
)

// Curve is an elliptic curve over a number field, presented by its
// b-invariants. No non-degeneracy check happens at construction; a degenerate
// curve (repeated two-torsion x-coordinates) surfaces as
// [ErrPrecisionInsufficient] from the bound computation, since a repeated root
// is indistinguishable from an under-resolved one at finite precision.
type Curve struct {
	Field      *numfield.NumberField
	B2, B4, B6 numfield.Element
}

// NewCurve returns the curve with the given b-invariants over field.
// All three invariants must be elements of field.
func NewCurve(field *numfield.NumberField, b2, b4, b6 numfield.Element) (Curve, error) {
	if field == nil {
		return Curve{}, fmt.Errorf("%w: nil number field", ErrInvalidInput)
	}
	for _, e := range []numfield.Element{b2, b4, b6} {
		if e.Field() != field {
			return Curve{}, fmt.Errorf("%w: invariant does not belong to the curve's field", ErrInvalidInput)
		}
	}
	return Curve{Field: field, B2: b2, B4: b4, B6: b6}, nil
}

// NewCurveOverQ returns the curve with rational b-invariants over the rationals.
func NewCurveOverQ(b2, b4, b6 *big.Rat) Curve {
	return Curve{
		Field: numfield.Rationals,
		B2:    numfield.Rationals.FromRat(b2),
		B4:    numfield.Rationals.FromRat(b4),
		B6:    numfield.Rationals.FromRat(b6),
	}
}

// FieldBound computes the global archimedean height-difference bound of the
// curve: the per-embedding bounds of all archimedean places, averaged with
// weight 1 per real place and weight 2 per conjugate pair of complex places,
// divided by the field degree. Per-embedding computations run concurrently.
//
// Errors from a per-embedding computation propagate with
// [EmbeddingErrorData] attached, identifying the failing place; the wrapped
// sentinel ([ErrPrecisionInsufficient], [ErrInvariantViolated], ...) stays
// recoverable through [errors.Is].
func FieldBound(curve Curve, cfg Config) (*big.Float, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if curve.Field == nil {
		return nil, fmt.Errorf("%w: curve has no base field", ErrInvalidInput)
	}
	if !curve.Field.IsAbsolute() {
		return nil, fmt.Errorf("%w: relative extensions are not supported; rewrite the field as an absolute extension", ErrUnsupportedField)
	}
	for _, e := range []numfield.Element{curve.B2, curve.B4, curve.B6} {
		if e.Field() != curve.Field {
			return nil, fmt.Errorf("%w: invariant does not belong to the curve's field", ErrInvalidInput)
		}
	}

	prec := cfg.precBits()
	embeddings, err := curve.Field.Embeddings(prec)
	if err != nil {
		if errors.Is(err, polroots.ErrNotResolved) {
			return nil, errorsWithData.NewErrorWithData(ErrPrecisionInsufficient,
				fmt.Sprintf("%sthe defining polynomial of the base field did not resolve at %v decimal digits: %v",
					ErrorPrefix, cfg.Precision, err),
				RootResolutionErrorData{Precision: cfg.Precision})
		}
		return nil, err
	}
	if cfg.Verbosity >= 1 {
		cfg.Log.Debug().
			Int("embeddings", len(embeddings)).
			Int("degree", curve.Field.Degree()).
			Msg("computing per-embedding bounds")
	}

	bounds := make([]*big.Float, len(embeddings))
	var g errgroup.Group
	for i, emb := range embeddings {
		i, emb := i, emb
		g.Go(func() error {
			b2 := curve.B2.Embed(emb, prec)
			b4 := curve.B4.Embed(emb, prec)
			b6 := curve.B6.Embed(emb, prec)
			bound, err := EmbeddingBound(b2, b4, b6, emb.Real, cfg)
			if err != nil {
				return errorsWithData.NewErrorWithData(err,
					fmt.Sprintf("%sembedding %v failed: %v", ErrorPrefix, emb.Index, err),
					EmbeddingErrorData{EmbeddingIndex: emb.Index, RealEmbedding: emb.Real})
			}
			bounds[i] = bound
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic reduction in embedding order: a complex place stands for a
	// conjugate pair and counts twice.
	total := new(big.Float).SetPrec(prec)
	for i, emb := range embeddings {
		total.Add(total, bounds[i])
		if !emb.Real {
			total.Add(total, bounds[i])
		}
	}
	degree := new(big.Float).SetPrec(prec).SetInt64(int64(curve.Field.Degree()))
	total.Quo(total, degree)

	if cfg.Verbosity >= 1 {
		cfg.Log.Debug().
			Str("bound", total.Text('g', 12)).
			Msg("field bound")
	}
	return total, nil
}
