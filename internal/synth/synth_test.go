package synth_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/lang/boolean"
	"rulesynth/internal/sexp"
	"rulesynth/internal/synth"
	"rulesynth/internal/validate"
	"rulesynth/internal/workload"
)

func TestRunDiscoversCommutativity(t *testing.T) {
	l := boolean.Language{}
	v := validate.FuzzValidator{Rng: rand.New(rand.NewSource(9)), NumSamples: 20}
	cfg := synth.Config{Seed: 42, Iterations: 1, NumSamples: 20, NodeLimit: 1000, IterCap: 3}

	s := synth.New(l, v, cfg)

	a, _ := sexp.ParseOne("t", "a")
	b, _ := sexp.ParseOne("t", "b")
	and1, _ := sexp.ParseOne("t", "(& a b)")
	and2, _ := sexp.ParseOne("t", "(& b a)")
	w := workload.Set(a, b, and1, and2)

	ruleset, err := s.Run(context.Background(), w)
	assert.NoError(t, err)
	assert.NotNil(t, ruleset)
	assert.Contains(t, ruleset.PrettyPrint(), "(& ?a ?b) <=> (& ?b ?a)")
}
