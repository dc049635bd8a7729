// Package rational SPDX-License-Identifier: Apache-2.0
//
// Package rational implements the lang.Language for {+, -, *, /} over
// rational constants, grounded on original_source/src/bin/rational.rs's
// Math language. Division by zero yields an undefined (nil) signature
// entry rather than panicking, matching mk_constant's None return there.
package rational

import (
	"math/big"
	"math/rand"

	"rulesynth/internal/lang"
)

// Language is the rational-number algebra.
type Language struct{}

var _ lang.Language = Language{}

func (Language) Name() string { return "rational" }

func asRat(v any) *big.Rat {
	r, _ := v.(*big.Rat)
	return r
}

func binary(f func(a, b *big.Rat) *big.Rat) func([]lang.Signature, int) lang.Signature {
	return func(children []lang.Signature, n int) lang.Signature {
		out := make(lang.Signature, n)
		for i := 0; i < n; i++ {
			a, b := children[0][i], children[1][i]
			if a == nil || b == nil {
				continue
			}
			if r := f(asRat(a), asRat(b)); r != nil {
				out[i] = r
			}
		}
		return out
	}
}

func (Language) Ops() []lang.Op {
	return []lang.Op{
		{Symbol: "+", Arity: 2, Eval: binary(func(a, b *big.Rat) *big.Rat {
			return new(big.Rat).Add(a, b)
		})},
		{Symbol: "-", Arity: 2, Eval: binary(func(a, b *big.Rat) *big.Rat {
			return new(big.Rat).Sub(a, b)
		})},
		{Symbol: "*", Arity: 2, Eval: binary(func(a, b *big.Rat) *big.Rat {
			return new(big.Rat).Mul(a, b)
		})},
		{Symbol: "/", Arity: 2, Eval: binary(func(a, b *big.Rat) *big.Rat {
			if b.Sign() == 0 {
				return nil
			}
			return new(big.Rat).Quo(a, b)
		})},
	}
}

// reservedConstants are the {-1, 0, 1} literals the reference seeds via
// SynthParams.constants in main().
var reservedConstants = []string{"-1", "0", "1"}

func (Language) IsVariable(atom string) bool {
	for _, c := range reservedConstants {
		if atom == c {
			return false
		}
	}
	if _, ok := new(big.Rat).SetString(atom); ok {
		return false
	}
	return true
}

func (Language) Constants() []string { return reservedConstants }

// Sample draws a 32-bit numerator over a non-zero 32-bit denominator, the
// same shape as the reference's rng.gen_bigint(32) / gen_denom(rng, 32).
func (Language) Sample(rng *rand.Rand, n int) lang.Signature {
	out := make(lang.Signature, n)
	for i := range out {
		num := int64(rng.Int31())
		if rng.Intn(2) == 0 {
			num = -num
		}
		var den int64
		for den == 0 {
			den = int64(rng.Int31())
		}
		out[i] = big.NewRat(num, den)
	}
	return out
}

func (Language) Display(v any) string {
	r := asRat(v)
	if r == nil {
		return "undefined"
	}
	return r.RatString()
}

// ParseConstant is Display's inverse: it parses a Const leaf's literal
// (e.g. "-1", "0", "3/4") into the *big.Rat value the + - * / closures
// expect. An unparseable literal yields a zero-valued *big.Rat rather than
// nil, since the Eval/Sample contract here is "undefined is nil, anything
// parsed is a real, non-nil *big.Rat".
func (Language) ParseConstant(atom string) any {
	r, ok := new(big.Rat).SetString(atom)
	if !ok {
		return new(big.Rat)
	}
	return r
}
