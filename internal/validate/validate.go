// Package validate SPDX-License-Identifier: Apache-2.0
//
// Package validate implements sound rule acceptance, per spec.md §6.4 and
// §7: a rule is never kept unless a Validator can back it. FuzzValidator
// is grounded on original_source/src/bin/pred.rs's validate (strict,
// non-None-tolerant equality over sampled environments). OracleValidator
// is a narrow, stdlib-only exhaustive truth-table checker for the boolean
// language; no SMT library exists anywhere in the retrieved example pack,
// so it returns Unknown for every other language rather than claim a
// soundness guarantee it cannot back (see DESIGN.md).
package validate

import (
	"math/rand"

	"rulesynth/internal/lang"
	"rulesynth/internal/rule"
	"rulesynth/internal/term"
)

// Verdict is the three-valued outcome of validating one rule.
type Verdict int

const (
	Unknown Verdict = iota
	Valid
	Invalid
)

// Validator decides whether lhs => rhs holds for a given language.
type Validator interface {
	Validate(l lang.Language, r *rule.Rule) Verdict
}

// FuzzValidator draws NumSamples random environments per distinct pattern
// variable (via the language's Sample) and checks strict, element-wise
// equality between the two sides' evaluations — unlike cvec-match's
// None-tolerant comparator, an undefined result on either side here makes
// the rule Invalid unless both sides agree it is undefined in the same
// slot, mirroring pred.rs's validate using plain `lvec == rvec`.
type FuzzValidator struct {
	Rng        *rand.Rand
	NumSamples int
}

func (v FuzzValidator) Validate(l lang.Language, r *rule.Rule) Verdict {
	vars := unionVars(r.LHSPat, r.RHSPat)
	env := make(map[string]lang.Signature, len(vars))
	for _, name := range vars {
		env[name] = l.Sample(v.Rng, v.NumSamples)
	}

	lhsSig := evalPattern(l, r.LHSPat, env, v.NumSamples)
	rhsSig := evalPattern(l, r.RHSPat, env, v.NumSamples)

	for i := 0; i < v.NumSamples; i++ {
		a, b := lhsSig[i], rhsSig[i]
		if (a == nil) != (b == nil) {
			return Invalid
		}
		if a != nil && a != b {
			if !equalValues(a, b) {
				return Invalid
			}
		}
	}
	return Valid
}

func equalValues(a, b any) bool {
	type stringer interface{ String() string }
	if sa, ok := a.(stringer); ok {
		if sb, ok := b.(stringer); ok {
			return sa.String() == sb.String()
		}
	}
	return a == b
}

// evalPattern treats pattern variables as ordinary variables for
// evaluation purposes (both sides share the same sampled environment, so
// this is exactly a ground evaluation once substituted).
func evalPattern(l lang.Language, p *term.Pattern, env map[string]lang.Signature, n int) lang.Signature {
	ground := patternToGroundTerm(p)
	return lang.Eval(l, ground, env, n)
}

// patternToGroundTerm reinterprets a PatVar node as a Var node so
// lang.Eval's variable-lookup path handles it directly.
func patternToGroundTerm(p *term.Pattern) *term.Term {
	if p.Kind == term.PatVar {
		return term.NewVar(p.Symbol)
	}
	if p.Kind != term.App {
		return p
	}
	children := make([]*term.Term, len(p.Children))
	for i, c := range p.Children {
		children[i] = patternToGroundTerm(c)
	}
	return term.NewApp(p.Symbol, children...)
}

func unionVars(a, b *term.Pattern) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range a.Vars() {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b.Vars() {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// OracleValidator exhaustively checks the boolean language by truth table
// (2^n environments for n variables) and returns Unknown for every other
// language, since no SMT solver library is available in the retrieved
// example pack to back a real decision procedure.
type OracleValidator struct{}

func (OracleValidator) Validate(l lang.Language, r *rule.Rule) Verdict {
	if l.Name() != "boolean" {
		return Unknown
	}
	vars := unionVars(r.LHSPat, r.RHSPat)
	if len(vars) == 0 {
		return exhaustiveCheck(l, r, vars, nil)
	}
	return exhaustiveCheck(l, r, vars, make([]bool, len(vars)))
}

func exhaustiveCheck(l lang.Language, r *rule.Rule, vars []string, assignment []bool) Verdict {
	total := 1 << uint(len(vars))
	for mask := 0; mask < total; mask++ {
		env := make(map[string]lang.Signature, len(vars))
		for i, name := range vars {
			env[name] = lang.Signature{(mask>>uint(i))&1 == 1}
		}
		lhsSig := evalPattern(l, r.LHSPat, env, 1)
		rhsSig := evalPattern(l, r.RHSPat, env, 1)
		if lhsSig[0] != rhsSig[0] {
			return Invalid
		}
	}
	return Valid
}
