package egraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/egraph"
)

func TestAddIsHashconsed(t *testing.T) {
	g := egraph.New(0)
	a, err := g.Add("a")
	assert.NoError(t, err)
	b, err := g.Add("a")
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUnionMergesClasses(t *testing.T) {
	g := egraph.New(0)
	a, _ := g.Add("a")
	b, _ := g.Add("b")
	assert.NotEqual(t, g.Find(a), g.Find(b))
	g.Union(a, b)
	assert.Equal(t, g.Find(a), g.Find(b))
}

func TestRebuildPropagatesCongruence(t *testing.T) {
	g := egraph.New(0)
	x, _ := g.Add("x")
	y, _ := g.Add("y")
	fx, _ := g.Add("f", x)
	fy, _ := g.Add("f", y)
	assert.NotEqual(t, g.Find(fx), g.Find(fy))

	g.Union(x, y)
	g.Rebuild()

	assert.Equal(t, g.Find(fx), g.Find(fy), "f(x) and f(y) must merge once x == y")
}

func TestNodeLimitRejectsOverflow(t *testing.T) {
	g := egraph.New(2)
	_, err := g.Add("a")
	assert.NoError(t, err)
	_, err = g.Add("b")
	assert.NoError(t, err)
	_, err = g.Add("c")
	assert.ErrorIs(t, err, egraph.ErrNodeLimit)
}

func TestClassesReflectCanonicalIDs(t *testing.T) {
	g := egraph.New(0)
	a, _ := g.Add("a")
	b, _ := g.Add("b")
	g.Union(a, b)
	g.Rebuild()

	classes := g.Classes()
	assert.Len(t, classes, 1)
}

func TestCvecRoundTrip(t *testing.T) {
	g := egraph.New(0)
	a, _ := g.Add("a")
	g.Class(a).SetCvec([]int{1, 2, 3})
	assert.Equal(t, []int{1, 2, 3}, g.Class(a).Cvec())
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	g := egraph.New(0)
	a, _ := g.Add("a")
	b, _ := g.Add("b")
	g.Class(a).SetCvec([]int{1})

	clone := g.Clone()
	clone.Union(a, b)
	clone.Rebuild()

	assert.NotEqual(t, g.Find(a), g.Find(b), "union on the clone must not affect g")
	assert.Equal(t, clone.Find(a), clone.Find(b))
	assert.Equal(t, []int{1}, clone.Class(a).Cvec(), "clone preserves cvec data")
}
