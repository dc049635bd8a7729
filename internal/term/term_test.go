package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/sexp"
	"rulesynth/internal/term"
)

func isVarName(name string) bool {
	switch name {
	case "a", "b", "c", "x", "y", "z":
		return true
	default:
		return false
	}
}

func parse(t *testing.T, src string) *term.Term {
	t.Helper()
	s, err := sexp.ParseOne("t", src)
	assert.NoError(t, err)
	return term.FromSexp(s, isVarName)
}

func TestFromSexpClassifiesLeaves(t *testing.T) {
	v := parse(t, "a")
	assert.Equal(t, term.Var, v.Kind)

	c := parse(t, "0")
	assert.Equal(t, term.Const, c.Kind)

	p := parse(t, "?a")
	assert.Equal(t, term.PatVar, p.Kind)

	app := parse(t, "(+ a b)")
	assert.Equal(t, term.App, app.Kind)
	assert.Equal(t, "+", app.Symbol)
	assert.Len(t, app.Children, 2)
}

func TestStringRoundTrip(t *testing.T) {
	app := parse(t, "(+ (* a b) c)")
	assert.Equal(t, "(+ (* a b) c)", app.String())
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, parse(t, "a").Size())
	assert.Equal(t, 3, parse(t, "(+ a b)").Size())
	assert.Equal(t, 5, parse(t, "(+ (* a b) c)").Size())
}

func TestGeneralizeSharesMapAcrossBothSides(t *testing.T) {
	e1 := parse(t, "(+ a b)")
	e2 := parse(t, "(+ b a)")

	p1, p2 := term.Generalize(e1, e2)

	assert.Equal(t, 2, len(p1.Vars()))
	assert.ElementsMatch(t, p1.Vars(), p2.Vars())

	name := map[string]string{}
	var collect func(lhs, rhs *term.Term)
	collect = func(lhs, rhs *term.Term) {
		if lhs.Kind == term.PatVar {
			return
		}
		for i := range lhs.Children {
			collect(lhs.Children[i], rhs.Children[i])
		}
	}
	_ = name
	_ = collect

	assert.NotEqual(t, p1.String(), e1.String())
	assert.Equal(t, p1.Size(), e1.Size())
	assert.Equal(t, p2.Size(), e2.Size())
}

func TestGeneralizeIsSymmetricInNaming(t *testing.T) {
	e1 := parse(t, "(+ a b)")
	e2 := parse(t, "(+ b a)")

	p1a, p2a := term.Generalize(e1, e2)
	p1b, p2b := term.Generalize(e2, e1)

	// Same unordered pair of ground terms must yield the same pattern pair
	// regardless of argument order, since the canonical (smaller-string-
	// first) ordering picks the naming source deterministically.
	assert.Equal(t, p1a.String(), p2b.String())
	assert.Equal(t, p2a.String(), p1b.String())
}

func TestGeneralizeOnlyAbstractsVariables(t *testing.T) {
	e1 := parse(t, "(+ a 0)")
	e2 := parse(t, "(+ b 0)")

	p1, p2 := term.Generalize(e1, e2)

	assert.Equal(t, "(+ ?a 0)", p1.String())
	assert.Equal(t, "(+ ?b 0)", p2.String())
}

func TestScorePrefersMoreDistinctVars(t *testing.T) {
	e1 := parse(t, "(+ a b)")
	e2 := parse(t, "(+ b a)")
	p1, p2 := term.Generalize(e1, e2)
	scoreTwoVars := term.Score(p1, p2)

	e3 := parse(t, "(+ a a)")
	e4 := parse(t, "(+ a a)")
	p3, p4 := term.Generalize(e3, e4)
	scoreOneVar := term.Score(p3, p4)

	assert.True(t, term.LessScore(scoreTwoVars, scoreOneVar, "r1", "r2"))
}

func TestScoreTieBrokenByName(t *testing.T) {
	s := [3]int{1, -2, 0}
	assert.True(t, term.LessScore(s, s, "a_rule", "b_rule"))
	assert.False(t, term.LessScore(s, s, "b_rule", "a_rule"))
}

func TestEqual(t *testing.T) {
	a := parse(t, "(+ a b)")
	b := parse(t, "(+ a b)")
	c := parse(t, "(+ a c)")
	assert.True(t, term.Equal(a, b))
	assert.False(t, term.Equal(a, c))
}
