// Package term SPDX-License-Identifier: Apache-2.0
//
// Package term implements the term/pattern algebra from the synthesis
// spec's data model: a Term is a rooted tree over operator symbols with
// variable or constant leaves; a Pattern is the same shape with some
// leaves generalized to pattern variables (?a, ?b, ...).
package term

import (
	"sort"
	"strings"

	"rulesynth/internal/sexp"
)

// Kind distinguishes the four leaf/interior shapes a Term node can take.
// Term and Pattern share this representation (a Pattern is just a Term that
// may contain PatVar nodes), per spec.md §3's "A Term where some leaves are
// pattern variables."
type Kind int

const (
	Var Kind = iota
	Const
	App
	PatVar
)

// Term is an immutable node in a rooted term tree. Pattern is an alias: the
// two are structurally identical, and the Kind tag is what tells a reader
// (and the validator, and the generalizer) whether a given leaf is ground.
type Term struct {
	Kind     Kind
	Symbol   string // variable name, constant literal, operator, or "?a"-style pattern var
	Children []*Term
}

// Pattern is a Term that may contain PatVar leaves.
type Pattern = Term

// NewVar builds a named-variable leaf.
func NewVar(name string) *Term { return &Term{Kind: Var, Symbol: name} }

// NewConst builds a literal-constant leaf. The value is the constant's
// Display form, per the language capability's Constant.Display contract.
func NewConst(value string) *Term { return &Term{Kind: Const, Symbol: value} }

// NewApp builds an interior operator node.
func NewApp(op string, children ...*Term) *Term {
	return &Term{Kind: App, Symbol: op, Children: children}
}

// NewPatVar builds a pattern-variable leaf. name should already carry the
// "?" prefix (e.g. "?a") so String() round-trips without special-casing.
func NewPatVar(name string) *Term { return &Term{Kind: PatVar, Symbol: name} }

// IsGround reports whether t contains no pattern variables.
func (t *Term) IsGround() bool {
	if t.Kind == PatVar {
		return false
	}
	for _, c := range t.Children {
		if !c.IsGround() {
			return false
		}
	}
	return true
}

// Vars returns the distinct pattern-variable names appearing in t, in
// first-seen (depth-first, left-to-right) order.
func (t *Term) Vars() []string {
	var out []string
	seen := map[string]bool{}
	var walk func(*Term)
	walk = func(n *Term) {
		if n.Kind == PatVar && !seen[n.Symbol] {
			seen[n.Symbol] = true
			out = append(out, n.Symbol)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t)
	return out
}

// Size returns the number of AST nodes in t (leaves count as 1).
func (t *Term) Size() int {
	n := 1
	for _, c := range t.Children {
		n += c.Size()
	}
	return n
}

// String renders the canonical S-expression form.
func (t *Term) String() string {
	if t.Kind != App {
		return t.Symbol
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(t.Symbol)
	for _, c := range t.Children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}

// ToSexp converts t to its sexp.Sexp form (used when printing/serializing).
func (t *Term) ToSexp() sexp.Sexp {
	if t.Kind != App {
		return sexp.MkAtom(t.Symbol)
	}
	children := make([]sexp.Sexp, 0, len(t.Children)+1)
	children = append(children, sexp.MkAtom(t.Symbol))
	for _, c := range t.Children {
		children = append(children, c.ToSexp())
	}
	return sexp.MkList(children...)
}

// Classify tells FromSexp how to interpret a bare atom: as a named variable
// or as a literal constant. Concrete languages supply this via their
// to_var/is_constant capability (§6.1).
type Classify func(atom string) (isVar bool)

// FromSexp converts parsed S-expression syntax into a Term. Atoms beginning
// with "?" are always pattern variables (the "?v" convention from spec.md
// §3), regardless of classify; every other atom is dispatched to classify.
func FromSexp(s sexp.Sexp, classify Classify) *Term {
	if s.IsAtom() {
		if strings.HasPrefix(s.Atom, "?") {
			return NewPatVar(s.Atom)
		}
		if classify(s.Atom) {
			return NewVar(s.Atom)
		}
		return NewConst(s.Atom)
	}
	if len(s.List) == 0 {
		return NewApp("")
	}
	op := s.List[0].Atom
	children := make([]*Term, len(s.List)-1)
	for i, child := range s.List[1:] {
		children[i] = FromSexp(child, classify)
	}
	return NewApp(op, children...)
}

// Equal compares two terms structurally.
func Equal(a, b *Term) bool {
	if a.Kind != b.Kind || a.Symbol != b.Symbol || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// patVarName produces the i-th fresh pattern-variable name in the
// spreadsheet-column sequence ?a, ?b, ..., ?z, ?aa, ?ab, ...
func patVarName(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	if i < 26 {
		return "?" + string(alphabet[i])
	}
	var b strings.Builder
	b.WriteByte('?')
	digits := []byte{}
	n := i
	for {
		digits = append(digits, alphabet[n%26])
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	for j := len(digits) - 1; j >= 0; j-- {
		b.WriteByte(digits[j])
	}
	return b.String()
}

// Generalize implements spec.md §4.1: walk e1 and e2, assign a fresh pattern
// variable to each distinct variable leaf that appears in either term, using
// one shared mapping so identical variables become the same pattern
// variable in both resulting patterns. Naming order is first-seen over
// (e1, e2) concatenated with the lexicographically smaller term first, so
// that Generalize(e1, e2) and Generalize(e2, e1) assign identical names.
func Generalize(e1, e2 *Term) (*Pattern, *Pattern) {
	first, second := e1, e2
	if e2.String() < e1.String() {
		first, second = e2, e1
	}

	mapping := map[string]string{}
	next := 0
	var assign func(*Term)
	assign = func(n *Term) {
		if n.Kind == Var {
			if _, ok := mapping[n.Symbol]; !ok {
				mapping[n.Symbol] = patVarName(next)
				next++
			}
			return
		}
		for _, c := range n.Children {
			assign(c)
		}
	}
	assign(first)
	assign(second)

	var substitute func(*Term) *Term
	substitute = func(n *Term) *Term {
		switch n.Kind {
		case Var:
			if pv, ok := mapping[n.Symbol]; ok {
				return NewPatVar(pv)
			}
			return n
		case App:
			children := make([]*Term, len(n.Children))
			for i, c := range n.Children {
				children[i] = substitute(c)
			}
			return NewApp(n.Symbol, children...)
		default:
			return n
		}
	}

	return substitute(e1), substitute(e2)
}

// Score implements spec.md §4.1's ordering tuple for candidate selection:
// higher is better, compared lexicographically. Priorities, in order: more
// distinct pattern variables, fewer total nodes, smaller node-count
// difference between the two sides.
func Score(p1, p2 *Pattern) [3]int {
	vars := map[string]bool{}
	for _, v := range p1.Vars() {
		vars[v] = true
	}
	for _, v := range p2.Vars() {
		vars[v] = true
	}
	s1, s2 := p1.Size(), p2.Size()
	diff := s1 - s2
	if diff < 0 {
		diff = -diff
	}
	return [3]int{len(vars), -(s1 + s2), -diff}
}

// LessScore orders by Score descending (a before b iff a scores higher),
// with lexicographic name as the final tie-break, matching spec.md §4.1's
// "Ties broken by lexicographic rule name."
func LessScore(aScore, bScore [3]int, aName, bName string) bool {
	for i := 0; i < 3; i++ {
		if aScore[i] != bScore[i] {
			return aScore[i] > bScore[i]
		}
	}
	return aName < bName
}

// SortBySizeThenString orders terms by size, breaking ties by their string
// form, giving a deterministic order over a set of ground terms independent
// of map iteration order.
func SortBySizeThenString(terms []*Term) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Size() != terms[j].Size() {
			return terms[i].Size() < terms[j].Size()
		}
		return terms[i].String() < terms[j].String()
	})
}
