package rational_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/lang"
	"rulesynth/internal/lang/rational"
	"rulesynth/internal/term"
)

func TestDivisionByZeroIsUndefined(t *testing.T) {
	l := rational.Language{}
	env := map[string]lang.Signature{
		"a": {big.NewRat(1, 1)},
		"b": {big.NewRat(0, 1)},
	}
	div := term.NewApp("/", term.NewVar("a"), term.NewVar("b"))
	got := lang.Eval(l, div, env, 1)
	assert.Nil(t, got[0])
}

func TestDivisionByNonZero(t *testing.T) {
	l := rational.Language{}
	env := map[string]lang.Signature{
		"a": {big.NewRat(6, 1)},
		"b": {big.NewRat(2, 1)},
	}
	div := term.NewApp("/", term.NewVar("a"), term.NewVar("b"))
	got := lang.Eval(l, div, env, 1)
	assert.Equal(t, big.NewRat(3, 1), got[0])
}

func TestReservedConstantsAreNotVariables(t *testing.T) {
	l := rational.Language{}
	assert.False(t, l.IsVariable("-1"))
	assert.False(t, l.IsVariable("0"))
	assert.False(t, l.IsVariable("1"))
	assert.True(t, l.IsVariable("x"))
}
