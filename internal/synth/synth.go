// Package synth SPDX-License-Identifier: Apache-2.0
//
// Package synth implements the outer per-iteration synthesis loop from
// spec.md §4.7: produce a term layer from the workload, seed and compress
// an e-graph, discover candidates, minimize them against the
// already-accepted ruleset, and repeat. Grounded on original_source/
// src/main.rs's SynthParam/run driver, generalized from its single
// hardcoded language to any lang.Language plug-in.
package synth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/tliron/commonlog"

	"rulesynth/internal/discover"
	"rulesynth/internal/egraph"
	"rulesynth/internal/lang"
	"rulesynth/internal/minimize"
	"rulesynth/internal/rule"
	"rulesynth/internal/term"
	"rulesynth/internal/validate"
	"rulesynth/internal/workload"
)

var log = commonlog.GetLogger("rulesynth.synth")

// Config bounds one synthesis run. Seed is threaded explicitly into a
// single *rand.Rand owned by the Synthesizer; spec.md §9 forbids global
// RNG state so every draw in this package goes through Config-supplied or
// Synthesizer-owned generators, never math/rand's package-level funcs.
type Config struct {
	Seed        int64
	Iterations  int
	NumSamples  int
	NodeLimit   int
	IterCap     int
	UseFastCvec bool // selects FastCvecMatch over the paper-faithful CvecMatch, per spec.md §9's open question
}

// Synthesizer owns all mutable synthesis state: its RNG, the running
// accepted ruleset, and the language/validator it was built for. No
// package-level state is read or written anywhere in this loop.
type Synthesizer struct {
	lang      lang.Language
	validator validate.Validator
	rng       *rand.Rand
	cfg       Config
	accepted  *rule.Ruleset
}

// New builds a Synthesizer for l, validating candidates with v.
func New(l lang.Language, v validate.Validator, cfg Config) *Synthesizer {
	return &Synthesizer{
		lang:      l,
		validator: v,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		cfg:       cfg,
		accepted:  rule.NewRuleset(),
	}
}

// Accepted returns the ruleset accumulated so far.
func (s *Synthesizer) Accepted() *rule.Ruleset { return s.accepted }

// Run executes cfg.Iterations rounds over the given workload, extending
// Accepted() each round. The layer workload is re-forced every round so
// callers can grow it (e.g. via Iter) between rounds if desired; a static
// workload simply yields the same population each time, which is still
// useful for a single-shot run with Iterations == 1.
func (s *Synthesizer) Run(ctx context.Context, w workload.Workload) (*rule.Ruleset, error) {
	for i := 0; i < s.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return s.accepted, err
		}
		if err := s.runOnce(w); err != nil {
			return s.accepted, fmt.Errorf("synth: iteration %d: %w", i, err)
		}
		log.Infof("iteration %d: %d rules accepted so far", i, s.accepted.Len())
	}
	return s.accepted, nil
}

func (s *Synthesizer) runOnce(w workload.Workload) error {
	population := w.Force()

	g := egraph.New(s.cfg.NodeLimit)
	env := map[string]lang.Signature{}

	ids := make([]*termWithID, 0, len(population))
	for _, sx := range population {
		t := term.FromSexp(sx, s.lang.IsVariable)
		var seed func(*term.Term)
		seed = func(n *term.Term) {
			if n.Kind == term.Var {
				if _, ok := env[n.Symbol]; !ok {
					env[n.Symbol] = s.lang.Sample(s.rng, s.cfg.NumSamples)
				}
			}
			for _, c := range n.Children {
				seed(c)
			}
		}
		seed(t)
		id, err := egraph.AddTerm(g, t)
		if err != nil {
			if errors.Is(err, egraph.ErrNodeLimit) {
				break
			}
			return err
		}
		ids = append(ids, &termWithID{term: t, id: id})
	}

	for _, tw := range ids {
		sig := lang.Eval(s.lang, tw.term, env, s.cfg.NumSamples)
		g.Class(tw.id).SetCvec(sig)
	}

	compress := egraph.NewCompressScheduler(egraph.Limits{IterCap: s.cfg.IterCap, NodeCap: s.cfg.NodeLimit})
	compressed := compress.Run(g, s.accepted.AsEgraphRules())

	var candidates *rule.Ruleset
	if s.cfg.UseFastCvec {
		candidates = discover.FastCvecMatch(compressed)
	} else {
		candidates = discover.CvecMatch(compressed)
	}
	candidates.Extend(discover.CrossGraphDiff(g, compressed, compressed.Find))
	candidates.RemoveAll(s.accepted)

	cfg := minimize.Config{StepSize: 1, Limits: egraph.Limits{IterCap: s.cfg.IterCap, NodeCap: s.cfg.NodeLimit}}
	newlyAccepted, _ := minimize.Minimize(candidates, s.accepted, s.lang, s.validator, cfg)
	s.accepted.Extend(newlyAccepted)
	return nil
}

type termWithID struct {
	term *term.Term
	id   egraph.ID
}
