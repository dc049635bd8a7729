package workload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/sexp"
	"rulesynth/internal/workload"
)

func a(name string) sexp.Sexp { return sexp.MkAtom(name) }
func l(items ...sexp.Sexp) sexp.Sexp { return sexp.MkList(items...) }

func strs(items []sexp.Sexp) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func TestSimplePlug(t *testing.T) {
	target := workload.Set(a("x"))
	pegs := workload.Set(a("1"), a("2"))
	plugged := workload.Plug(target, "x", pegs)
	assert.Equal(t, []string{"1", "2"}, strs(plugged.Force()))
}

func TestSimplePlug2(t *testing.T) {
	target := workload.Set(l(a("f"), a("x")))
	pegs := workload.Set(a("1"), a("2"))
	plugged := workload.Plug(target, "x", pegs)
	assert.Equal(t, []string{"(f 1)", "(f 2)"}, strs(plugged.Force()))
}

func TestPlugCrossProduct(t *testing.T) {
	target := workload.Set(l(a("x"), a("x")))
	pegs := workload.Set(a("1"), a("2"), a("3"))
	plugged := workload.Plug(target, "x", pegs)
	got := strs(plugged.Force())
	assert.Equal(t, []string{
		"(1 1)", "(1 2)", "(1 3)",
		"(2 1)", "(2 2)", "(2 3)",
		"(3 1)", "(3 2)", "(3 3)",
	}, got)
}

func TestMultiPlug(t *testing.T) {
	target := workload.Set(l(a("a"), a("b")))
	pegsA := workload.Set(a("1"), a("2"))
	pegsB := workload.Set(a("x"), a("y"))
	step1 := workload.Plug(target, "a", pegsA)
	step2 := workload.Plug(step1, "b", pegsB)
	got := strs(step2.Force())
	assert.Equal(t, []string{"(1 x)", "(1 y)", "(2 x)", "(2 y)"}, got)
}

func TestPushFilterThroughPlug(t *testing.T) {
	target := workload.Set(l(a("x"), a("x")))
	pegs := workload.Set(a("1"), l(a("f"), a("1")))
	plugged := workload.Plug(target, "x", pegs)

	filtered := plugged.Filter(workload.MetricLt{M: workload.Atoms, Bound: 3})
	direct := workload.FilterWorkload(workload.MetricLt{M: workload.Atoms, Bound: 3}, plugged)

	assert.Equal(t, strs(direct.Force()), strs(filtered.Force()))
}

func TestMeasureAtomsCountsEveryAtom(t *testing.T) {
	s := l(a("+"), a("a"), a("b"))
	assert.Equal(t, 3, workload.Measure(s, workload.Atoms))
}

func TestMeasureDepth(t *testing.T) {
	s := l(a("+"), l(a("*"), a("a"), a("b")), a("c"))
	assert.Equal(t, 3, workload.Measure(s, workload.Depth))
}

func TestIterBuildsDepthNPopulation(t *testing.T) {
	base := workload.Append(workload.Set(a("0")), workload.Set(l(a("f"), a("self"))))
	got := strs(base.Iter("self", 3).Force())
	assert.Contains(t, got, "0")
	assert.Contains(t, got, "(f 0)")
	assert.Contains(t, got, "(f (f 0))")
}

func TestAndFilterIsMonotonicOnlyWhenBothAre(t *testing.T) {
	f := workload.And{A: workload.MetricLt{M: workload.Atoms, Bound: 3}, B: workload.MetricLt{M: workload.Depth, Bound: 2}}
	assert.True(t, f.IsMonotonic())

	g := workload.And{A: workload.MetricLt{M: workload.Atoms, Bound: 3}, B: workload.Invert{Inner: workload.MetricLt{M: workload.Depth, Bound: 2}}}
	assert.False(t, g.IsMonotonic())
}

func TestContainsFindsNestedSubterm(t *testing.T) {
	f := workload.Contains{Pattern: workload.EnumoPattern{Kind: workload.AtomPat, Name: "x"}}
	assert.True(t, f.Test(l(a("f"), l(a("g"), a("x")))))
	assert.False(t, f.Test(l(a("f"), a("y"))))
}

func TestCanonRequiresFirstOccurrenceOrder(t *testing.T) {
	f := workload.Canon{Vars: []string{"a", "b"}}
	assert.True(t, f.Test(l(a("+"), a("a"), a("b"))))
	assert.False(t, f.Test(l(a("+"), a("b"), a("a"))))
}
