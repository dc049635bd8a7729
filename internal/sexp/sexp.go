// Package sexp SPDX-License-Identifier: Apache-2.0
//
// Package sexp implements the S-expression surface syntax shared by workload
// literals, rule files, and term/pattern printing. An atom is either a bare
// identifier, a pattern variable (?name), or a literal constant; a list is a
// parenthesized sequence headed by an operator symbol.
package sexp

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Position mirrors participle's lexer.Position so diagnostics built on top of
// this package never need their own copy of line/column bookkeeping.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

func fromLexer(p lexer.Position) Position {
	return Position{Filename: p.Filename, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

// Sexp is either an Atom (identifier, pattern variable, or literal) or a
// List of child Sexps. It is the parsed form of everything this system reads
// as text: workload Set members, rule-file sides, extracted terms.
type Sexp struct {
	Atom string // non-empty for atoms; empty for lists
	List []Sexp
	Pos  Position
}

// IsAtom reports whether this node is a leaf.
func (s Sexp) IsAtom() bool { return s.List == nil }

// String renders the canonical surface form: atoms verbatim, lists
// parenthesized and space-separated.
func (s Sexp) String() string {
	if s.IsAtom() {
		return s.Atom
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, child := range s.List {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(child.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Equal compares two Sexps structurally, ignoring position.
func Equal(a, b Sexp) bool {
	if a.IsAtom() != b.IsAtom() {
		return false
	}
	if a.IsAtom() {
		return a.Atom == b.Atom
	}
	if len(a.List) != len(b.List) {
		return false
	}
	for i := range a.List {
		if !Equal(a.List[i], b.List[i]) {
			return false
		}
	}
	return true
}

// MkAtom builds a leaf node with no position information, for programmatic
// construction (tests, workload builders).
func MkAtom(name string) Sexp { return Sexp{Atom: name} }

// MkList builds an interior node from children.
func MkList(children ...Sexp) Sexp { return Sexp{List: children} }
