// Package boolean SPDX-License-Identifier: Apache-2.0
//
// Package boolean implements the lang.Language for the {&, |, ^, ~} boolean
// algebra used in spec.md §8 scenario 1 (commutativity, double-negation
// elimination).
package boolean

import (
	"math/rand"

	"rulesynth/internal/lang"
)

// Language is the boolean algebra: and/or/xor/not over Bool.
type Language struct{}

var _ lang.Language = Language{}

func (Language) Name() string { return "boolean" }

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func binary(f func(a, b bool) bool) func([]lang.Signature, int) lang.Signature {
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
		{Symbol: "&", Arity: 2, Eval: binary(func(a, b bool) bool { return a && b })},
		{Symbol: "|", Arity: 2, Eval: binary(func(a, b bool) bool { return a || b })},
		{Symbol: "^", Arity: 2, Eval: binary(func(a, b bool) bool { return a != b })},
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
	return atom != "true" && atom != "false"
}

func (Language) Constants() []string { return []string{"true", "false"} }

// Sample draws a fair coin per environment, matching the boolean domain's
// only two possible values.
func (Language) Sample(rng *rand.Rand, n int) lang.Signature {
	out := make(lang.Signature, n)
	for i := range out {
		out[i] = rng.Intn(2) == 0
	}
	return out
}

func (Language) Display(v any) string {
	if asBool(v) {
		return "true"
	}
	return "false"
}

func (Language) ParseConstant(atom string) any { return atom == "true" }
