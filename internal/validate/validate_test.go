package validate_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/lang/boolean"
	"rulesynth/internal/rule"
	"rulesynth/internal/term"
	"rulesynth/internal/validate"
)

func TestFuzzValidatorAcceptsCommutativity(t *testing.T) {
	l := boolean.Language{}
	lhs := term.NewApp("&", term.NewPatVar("?a"), term.NewPatVar("?b"))
	rhs := term.NewApp("&", term.NewPatVar("?b"), term.NewPatVar("?a"))
	r := rule.New(lhs, rhs)

	v := validate.FuzzValidator{Rng: rand.New(rand.NewSource(1)), NumSamples: 50}
	assert.Equal(t, validate.Valid, v.Validate(l, r))
}

func TestFuzzValidatorRejectsUnsoundRule(t *testing.T) {
	l := boolean.Language{}
	lhs := term.NewApp("&", term.NewPatVar("?a"), term.NewPatVar("?b"))
	rhs := term.NewPatVar("?a")
	r := rule.New(lhs, rhs)

	v := validate.FuzzValidator{Rng: rand.New(rand.NewSource(1)), NumSamples: 50}
	assert.Equal(t, validate.Invalid, v.Validate(l, r))
}

func TestOracleValidatorExhaustivelyChecksBoolean(t *testing.T) {
	l := boolean.Language{}
	lhs := term.NewApp("~", term.NewApp("~", term.NewPatVar("?a")))
	rhs := term.NewPatVar("?a")
	r := rule.New(lhs, rhs)

	assert.Equal(t, validate.Valid, validate.OracleValidator{}.Validate(l, r))
}

func TestOracleValidatorUnknownForOtherLanguages(t *testing.T) {
	l := fakeLang{}
	r := rule.New(term.NewPatVar("?a"), term.NewPatVar("?a"))
	assert.Equal(t, validate.Unknown, validate.OracleValidator{}.Validate(l, r))
}

type fakeLang struct{ boolean.Language }

func (fakeLang) Name() string { return "fake" }
