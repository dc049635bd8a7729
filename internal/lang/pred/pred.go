// Package pred SPDX-License-Identifier: Apache-2.0
//
// Package pred implements the lang.Language for integer predicates over
// boolean connectives, grounded on original_source/src/bin/pred.rs: {<,
// <=, >, >=, ==, !=} comparing integers, plus {&, |, ^, ~} combining the
// resulting booleans.
package pred

import (
	"math/rand"
	"strconv"

	"rulesynth/internal/lang"
)

// Language is the integer-predicate algebra.
type Language struct{}

var _ lang.Language = Language{}

func (Language) Name() string { return "pred" }

func asInt(v any) int64 {
	i, _ := v.(int64)
	return i
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func cmp(f func(a, b int64) bool) func([]lang.Signature, int) lang.Signature {
	return func(children []lang.Signature, n int) lang.Signature {
		out := make(lang.Signature, n)
		for i := 0; i < n; i++ {
			if children[0][i] == nil || children[1][i] == nil {
				continue
			}
			out[i] = f(asInt(children[0][i]), asInt(children[1][i]))
		}
		return out
	}
}

func boolBinary(f func(a, b bool) bool) func([]lang.Signature, int) lang.Signature {
	return func(children []lang.Signature, n int) lang.Signature {
		out := make(lang.Signature, n)
		for i := 0; i < n; i++ {
			if children[0][i] == nil || children[1][i] == nil {
				continue
			}
			out[i] = f(asBool(children[0][i]), asBool(children[1][i]))
		}
		return out
	}
}

func (Language) Ops() []lang.Op {
	return []lang.Op{
		{Symbol: "<", Arity: 2, Eval: cmp(func(a, b int64) bool { return a < b })},
		{Symbol: "<=", Arity: 2, Eval: cmp(func(a, b int64) bool { return a <= b })},
		{Symbol: ">", Arity: 2, Eval: cmp(func(a, b int64) bool { return a > b })},
		{Symbol: ">=", Arity: 2, Eval: cmp(func(a, b int64) bool { return a >= b })},
		{Symbol: "==", Arity: 2, Eval: cmp(func(a, b int64) bool { return a == b })},
		{Symbol: "!=", Arity: 2, Eval: cmp(func(a, b int64) bool { return a != b })},
		{Symbol: "&", Arity: 2, Eval: boolBinary(func(a, b bool) bool { return a && b })},
		{Symbol: "|", Arity: 2, Eval: boolBinary(func(a, b bool) bool { return a || b })},
		{Symbol: "^", Arity: 2, Eval: boolBinary(func(a, b bool) bool { return a != b })},
		{Symbol: "~", Arity: 1, Eval: func(children []lang.Signature, n int) lang.Signature {
			out := make(lang.Signature, n)
			for i := 0; i < n; i++ {
				if children[0][i] == nil {
					continue
				}
				out[i] = !asBool(children[0][i])
			}
			return out
		}},
	}
}

func (Language) IsVariable(atom string) bool {
	return len(atom) > 2 && atom[:2] == "i_"
}

// Constants is empty: the reference's init_synth seeds only variables for
// this language, relying on the synthesizer's workload to introduce
// literal integers where needed.
func (Language) Constants() []string { return nil }

// Sample reproduces original_source/src/bin/pred.rs's sampler() exactly:
// a 50/50 choice per draw between a small value in [0,10) and a
// non-negative 63-bit value. This is a known bias, not a bug, and is preserved verbatim rather
// than "fixed" (spec.md's open design question on sampler bias).
func (Language) Sample(rng *rand.Rand, n int) lang.Signature {
	out := make(lang.Signature, n)
	for i := range out {
		if rng.Intn(2) == 0 {
			out[i] = int64(rng.Intn(10))
		} else {
			out[i] = rng.Int63()
		}
	}
	return out
}

func (Language) Display(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return strconv.FormatInt(asInt(v), 10)
	}
}

// ParseConstant is Display's inverse: "true"/"false" parse to bool (a
// predicate connective's own result can appear as a Const leaf), anything
// else parses as the int64 operand comparisons expect.
func (Language) ParseConstant(atom string) any {
	switch atom {
	case "true":
		return true
	case "false":
		return false
	default:
		i, _ := strconv.ParseInt(atom, 10, 64)
		return i
	}
}
