// Package sexp SPDX-License-Identifier: Apache-2.0
package sexp

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// sexpLexer tokenizes S-expression source. Modeled directly on the teacher's
// grammar.KansoLexer: a small stateless rule set; the Atom pattern excludes
// whitespace and parentheses, so pattern variables and operator symbols
// stay single tokens.
var sexpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Atom", Pattern: `[^\s()]+`},
})

// astSexp is the participle grammar node; it is converted to the public
// Sexp type after parsing so callers never see participle-specific types.
type astSexp struct {
	Pos  lexer.Position
	Atom string    `  @Atom`
	List []astSexp `| "(" @@* ")"`
}

func (a astSexp) toSexp() Sexp {
	if a.Atom != "" || a.List == nil {
		return Sexp{Atom: a.Atom, Pos: fromLexer(a.Pos)}
	}
	children := make([]Sexp, len(a.List))
	for i, c := range a.List {
		children[i] = c.toSexp()
	}
	return Sexp{List: children, Pos: fromLexer(a.Pos)}
}

var (
	parserOnce sync.Once
	parser     *participle.Parser[astSexp]
	parserErr  error
)

func buildParser() (*participle.Parser[astSexp], error) {
	parserOnce.Do(func() {
		parser, parserErr = participle.Build[astSexp](
			participle.Lexer(sexpLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(2),
		)
	})
	return parser, parserErr
}

// ParseOne parses exactly one S-expression from src (e.g. one side of a
// rule, or one workload literal). Returns a participle.Error on failure so
// callers can render caret-style diagnostics.
func ParseOne(filename, src string) (Sexp, error) {
	p, err := buildParser()
	if err != nil {
		return Sexp{}, fmt.Errorf("building sexp parser: %w", err)
	}
	node, err := p.ParseString(filename, src)
	if err != nil {
		return Sexp{}, err
	}
	return node.toSexp(), nil
}

// astProgram parses a whitespace-separated sequence of top-level
// S-expressions, used when a workload Set literal packs several terms on one
// line.
type astProgram struct {
	Items []astSexp `@@*`
}

// ParseAll parses every top-level S-expression in src.
func ParseAll(filename, src string) ([]Sexp, error) {
	p, err := participle.Build[astProgram](
		participle.Lexer(sexpLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("building sexp program parser: %w", err)
	}
	node, err := p.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	out := make([]Sexp, len(node.Items))
	for i, item := range node.Items {
		out[i] = item.toSexp()
	}
	return out, nil
}
