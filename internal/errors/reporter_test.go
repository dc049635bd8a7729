package errors_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	rsynerrors "rulesynth/internal/errors"
	"rulesynth/internal/sexp"
)

func TestFormatErrorIncludesCodeAndLocation(t *testing.T) {
	reporter := rsynerrors.NewErrorReporter("rules.txt", "(+ a b) => (+ b a)\nthis is not a rule\n")
	diag := rsynerrors.NewDiagnostic(
		rsynerrors.ErrorMalformedRuleLine,
		"missing \"=>\" separator",
		sexp.Position{Filename: "rules.txt", Line: 2, Column: 1},
	).WithLength(len("this is not a rule")).WithHelp("use \"lhs => rhs\" or \"lhs <=> rhs\"").Build()

	out := reporter.FormatError(diag)
	assert.Contains(t, out, rsynerrors.ErrorMalformedRuleLine)
	assert.Contains(t, out, "rules.txt:2:1")
	assert.Contains(t, out, "this is not a rule")
	assert.Contains(t, out, "help:")
}

func TestFormatWarningUsesWarningLevel(t *testing.T) {
	reporter := rsynerrors.NewErrorReporter("rules.txt", "bad line\n")
	diag := rsynerrors.NewDiagnosticWarning(
		rsynerrors.WarningSkippedRuleLine,
		"skipped malformed line",
		sexp.Position{Filename: "rules.txt", Line: 1, Column: 1},
	).Build()

	out := reporter.FormatError(diag)
	assert.True(t, strings.Contains(out, string(rsynerrors.Warning)))
}

func TestGetErrorDescriptionKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "S-expression is malformed", rsynerrors.GetErrorDescription(rsynerrors.ErrorMalformedSexp))
	assert.Equal(t, "unknown error code", rsynerrors.GetErrorDescription("E9999"))
}

func TestIsWarning(t *testing.T) {
	assert.True(t, rsynerrors.IsWarning(rsynerrors.WarningSkippedRuleLine))
	assert.False(t, rsynerrors.IsWarning(rsynerrors.ErrorMalformedSexp))
}
