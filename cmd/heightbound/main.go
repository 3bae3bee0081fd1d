// Command heightbound computes the archimedean height-difference bound for an
// elliptic curve over the rationals, given by its b-invariants.
//
// Usage:
//
//	heightbound -b2 0 -b4 -2 -b6 0
//	heightbound -b2 1/4 -b4 -3/2 -b6 9/4 -digits 50 -v 2
//
// The invariants accept arbitrary rationals ("-2", "7/3"). The bound is
// printed to stdout in the requested number of decimal digits.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/rs/zerolog"

	"github.com/GottfriedHerold/HeightBounds/heightbounds/archbound"
)

func main() {
	b2Str := flag.String("b2", "", "b2 invariant of the curve, as a rational (required)")
	b4Str := flag.String("b4", "", "b4 invariant of the curve, as a rational (required)")
	b6Str := flag.String("b6", "", "b6 invariant of the curve, as a rational (required)")
	epsilon := flag.Float64("epsilon", 1e-3, "refinement stopping tolerance")
	digits := flag.Int("digits", 30, "working precision in decimal digits")
	geometric := flag.Bool("geometric", false, "compute the geometric bound, valid at complex points over real places")
	verbosity := flag.Int("v", 0, "trace verbosity (0-3), traces go to stderr")
	flag.Parse()

	b2, err := parseRat("b2", *b2Str)
	if err != nil {
		fail(2, err)
	}
	b4, err := parseRat("b4", *b4Str)
	if err != nil {
		fail(2, err)
	}
	b6, err := parseRat("b6", *b6Str)
	if err != nil {
		fail(2, err)
	}

	cfg := archbound.DefaultConfig()
	cfg.Epsilon = *epsilon
	cfg.Precision = *digits
	cfg.Geometric = *geometric
	cfg.Verbosity = *verbosity
	if *verbosity > 0 {
		cfg.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	bound, err := archbound.FieldBound(archbound.NewCurveOverQ(b2, b4, b6), cfg)
	if err != nil {
		fail(1, err)
	}
	fmt.Println(bound.Text('g', *digits))
}

func parseRat(name, s string) (*big.Rat, error) {
	if s == "" {
		return nil, fmt.Errorf("missing required flag -%v", name)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("flag -%v: cannot parse %q as a rational", name, s)
	}
	return r, nil
}

func fail(code int, err error) {
	fmt.Fprintln(os.Stderr, "heightbound:", err)
	os.Exit(code)
}
