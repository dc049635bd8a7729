package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/egraph"
	"rulesynth/internal/rule"
	"rulesynth/internal/sexp"
	"rulesynth/internal/term"
)

func isVar(name string) bool {
	switch name {
	case "a", "b", "c":
		return true
	default:
		return false
	}
}

func mustTerm(t *testing.T, src string) *term.Term {
	t.Helper()
	s, err := sexp.ParseOne("t", src)
	assert.NoError(t, err)
	return term.FromSexp(s, isVar)
}

func TestFromTermsBuildsBothDirections(t *testing.T) {
	e1 := mustTerm(t, "(+ a b)")
	e2 := mustTerm(t, "(+ b a)")

	fwd, back := rule.FromTerms(e1, e2)
	assert.NotNil(t, fwd)
	assert.NotNil(t, back)
	assert.Equal(t, fwd.LHSPat.String(), back.RHSPat.String())
	assert.Equal(t, fwd.RHSPat.String(), back.LHSPat.String())
}

func TestFromTermsRejectsTrivialEquality(t *testing.T) {
	e1 := mustTerm(t, "(+ a b)")
	e2 := mustTerm(t, "(+ a b)")
	fwd, back := rule.FromTerms(e1, e2)
	assert.Nil(t, fwd)
	assert.Nil(t, back)
}

func TestRulesetBidirLen(t *testing.T) {
	rs := rule.NewRuleset()
	e1 := mustTerm(t, "(+ a b)")
	e2 := mustTerm(t, "(+ b a)")
	fwd, back := rule.FromTerms(e1, e2)
	rs.Add(fwd)
	rs.Add(back)
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, 1, rs.BidirLen())
}

func TestRulesetRemoveAll(t *testing.T) {
	rs := rule.NewRuleset()
	e1 := mustTerm(t, "(+ a b)")
	e2 := mustTerm(t, "(+ b a)")
	fwd, back := rule.FromTerms(e1, e2)
	rs.Add(fwd)
	rs.Add(back)

	prior := rule.NewRuleset()
	prior.Add(fwd)

	rs.RemoveAll(prior)
	assert.Equal(t, 1, rs.Len())
	assert.True(t, rs.Contains(back))
}

func TestRulesetPartitionPreservesOrder(t *testing.T) {
	rs := rule.NewRuleset()
	a := mustTerm(t, "(+ a b)")
	b := mustTerm(t, "(+ b a)")
	c := mustTerm(t, "(+ a c)")
	d := mustTerm(t, "(+ c a)")
	f1, _ := rule.FromTerms(a, b)
	f2, _ := rule.FromTerms(c, d)
	rs.Add(f1)
	rs.Add(f2)

	matching, rest := rs.Partition(func(r *rule.Rule) bool {
		return r.NameStr == f1.NameStr
	})
	assert.Equal(t, 1, matching.Len())
	assert.Equal(t, 1, rest.Len())
}

func TestDeriveCommutativityDerivesConstantSwap(t *testing.T) {
	commutativity := rule.New(mustTerm(t, "(+ ?a ?b)"), mustTerm(t, "(+ ?b ?a)"))
	r := rule.NewRuleset()
	r.Add(commutativity)

	q := rule.NewRuleset()
	q.Add(rule.New(mustTerm(t, "(+ 1 ?x)"), mustTerm(t, "(+ ?x 1)")))

	limits := egraph.Limits{IterCap: 5, NodeCap: 1000}
	derivable, underivable := r.Derive(rule.DeriveLhsAndRhs, q, limits)
	assert.Equal(t, 1, derivable.Len())
	assert.Equal(t, 0, underivable.Len())
}

func TestDeriveRejectsUnrelatedRule(t *testing.T) {
	r := rule.NewRuleset()
	r.Add(rule.New(mustTerm(t, "(+ ?a ?b)"), mustTerm(t, "(+ ?b ?a)")))

	q := rule.NewRuleset()
	q.Add(rule.New(mustTerm(t, "(~ (~ a))"), mustTerm(t, "a")))

	limits := egraph.Limits{IterCap: 5, NodeCap: 1000}
	derivable, underivable := r.Derive(rule.DeriveLhsAndRhs, q, limits)
	assert.Equal(t, 0, derivable.Len())
	assert.Equal(t, 1, underivable.Len())
}
