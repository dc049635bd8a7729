// Package lang SPDX-License-Identifier: Apache-2.0
//
// Package lang defines the Language capability interface (spec.md §6.1):
// the plug-in surface a concrete term language implements so the rest of
// the engine (egraph seeding, cvec evaluation, fuzz validation) can stay
// language-agnostic. Concrete languages live in subpackages (boolean, pred,
// rational).
package lang

import (
	"math/rand"

	"rulesynth/internal/term"
)

// Signature is a characteristic vector: one evaluated value per sampled
// environment. A nil entry means "undefined in that environment" (e.g.
// division by zero) and compares equal to anything during candidate
// discovery, per spec.md §4.4's cvec-match leniency.
type Signature []any

// Op describes one operator this language supports: its arity and how to
// evaluate it element-wise over child signatures.
type Op struct {
	Symbol string
	Arity  int
	// Eval computes the parent signature from arity-many child signatures,
	// all of length cvecLen. Implementations return nil at index i when the
	// operation is undefined there (e.g. rational division by zero).
	Eval func(children []Signature, cvecLen int) Signature
}

// Language is the per-domain capability set a concrete term language
// supplies. It intentionally mirrors the reference's SynthLanguage trait:
// Ops enumerates the operator table, IsVariable/Constants classify and seed
// leaves, and Sample drives cvec computation and fuzz-based rule acceptance
// (validation itself lives in internal/validate).
type Language interface {
	// Name identifies the language for logging and config selection.
	Name() string

	// Ops returns every operator this language defines.
	Ops() []Op

	// IsVariable reports whether atom should be treated as a named
	// variable leaf (vs. a literal constant) when parsing terms.
	IsVariable(atom string) bool

	// Constants returns the literal constant leaves to seed into the
	// e-graph alongside variables (e.g. {0, 1, -1}).
	Constants() []string

	// Sample draws n random constant values for one variable's signature,
	// using rng. Concrete languages decide their own sampling bias here.
	Sample(rng *rand.Rand, n int) Signature

	// Display renders a constant value (as produced by Sample or Eval) in
	// the language's literal surface syntax, for building Const terms.
	Display(v any) string

	// ParseConstant is Display's inverse: it parses a Const leaf's literal
	// surface form (as stored in a Term's Symbol field) back into the
	// language's typed runtime value, so Eval's Const case can hand
	// operator closures the same shape of value Sample/Eval produces
	// elsewhere instead of a bare atom string.
	ParseConstant(atom string) any
}

// OpTable indexes a Language's operators by symbol for eval dispatch.
func OpTable(l Language) map[string]Op {
	out := make(map[string]Op, len(l.Ops()))
	for _, op := range l.Ops() {
		out[op.Symbol] = op
	}
	return out
}

// Eval computes t's signature given an environment mapping variable names
// to their own signatures (the e-graph analysis data in practice), and the
// language's operator table.
func Eval(l Language, t *term.Term, env map[string]Signature, cvecLen int) Signature {
	ops := OpTable(l)
	var walk func(*term.Term) Signature
	walk = func(n *term.Term) Signature {
		switch n.Kind {
		case term.Var:
			return env[n.Symbol]
		case term.Const:
			v := l.ParseConstant(n.Symbol)
			sig := make(Signature, cvecLen)
			for i := range sig {
				sig[i] = v
			}
			return sig
		case term.App:
			op, ok := ops[n.Symbol]
			if !ok {
				return make(Signature, cvecLen)
			}
			children := make([]Signature, len(n.Children))
			for i, c := range n.Children {
				children[i] = walk(c)
			}
			return op.Eval(children, cvecLen)
		default:
			return make(Signature, cvecLen)
		}
	}
	return walk(t)
}
