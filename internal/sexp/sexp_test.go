package sexp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/sexp"
)

func TestParseOneAtom(t *testing.T) {
	s, err := sexp.ParseOne("test", "?a")
	assert.NoError(t, err)
	assert.True(t, s.IsAtom())
	assert.Equal(t, "?a", s.Atom)
}

func TestParseOneList(t *testing.T) {
	s, err := sexp.ParseOne("test", "(+ ?a ?b)")
	assert.NoError(t, err)
	assert.False(t, s.IsAtom())
	assert.Len(t, s.List, 3)
	assert.Equal(t, "+", s.List[0].Atom)
	assert.Equal(t, "?a", s.List[1].Atom)
	assert.Equal(t, "?b", s.List[2].Atom)
}

func TestParseOneNested(t *testing.T) {
	s, err := sexp.ParseOne("test", "(+ (+ ?a ?b) ?c)")
	assert.NoError(t, err)
	assert.Equal(t, "(+ (+ ?a ?b) ?c)", s.String())
}

func TestParseAllMultipleTopLevel(t *testing.T) {
	items, err := sexp.ParseAll("test", "?a (+ ?a ?b) 0")
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "?a", items[0].String())
	assert.Equal(t, "(+ ?a ?b)", items[1].String())
	assert.Equal(t, "0", items[2].String())
}

func TestParseOneRejectsUnbalanced(t *testing.T) {
	_, err := sexp.ParseOne("test", "(+ ?a ?b")
	assert.Error(t, err)
}

func TestEqualIgnoresPosition(t *testing.T) {
	a, err := sexp.ParseOne("a", "(+ ?a ?b)")
	assert.NoError(t, err)
	b := sexp.MkList(sexp.MkAtom("+"), sexp.MkAtom("?a"), sexp.MkAtom("?b"))
	assert.True(t, sexp.Equal(a, b))
}

func TestStringRoundTrip(t *testing.T) {
	for _, src := range []string{"?a", "0", "(~ (~ ?a))", "(< ?a ?b)"} {
		s, err := sexp.ParseOne("t", src)
		assert.NoError(t, err)
		assert.Equal(t, src, s.String())
	}
}
