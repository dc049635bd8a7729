// Package minimize SPDX-License-Identifier: Apache-2.0
//
// Package minimize implements the select/shrink/minimize loop from
// original_source/src/enumo/ruleset.rs: repeatedly pick the best-scoring
// remaining candidate(s), add them (and their valid reverse) to the
// accepted set, then shrink the candidate pool by dropping anything that
// the accepted-so-far rules can already derive.
package minimize

import (
	"rulesynth/internal/egraph"
	"rulesynth/internal/lang"
	"rulesynth/internal/rule"
	"rulesynth/internal/validate"
)

// Config bounds one minimization run.
type Config struct {
	StepSize int // candidates promoted to "selected" per round; reference default is 1
	Limits   egraph.Limits
}

// Select pops the step_size best-scoring candidates from pool (mutating
// it), validating each and its reverse, per ruleset.rs's select. invalid
// accumulates rejected rules (and their rejected reverses) across calls.
func Select(pool *rule.Ruleset, stepSize int, l lang.Language, v validate.Validator, invalid *rule.Ruleset) *rule.Ruleset {
	selected := rule.NewRuleset()
	sorted := pool.SortedByScore()
	if stepSize > len(sorted) {
		stepSize = len(sorted)
	}
	taken := sorted[:stepSize]
	remaining := rule.NewRuleset()
	takenNames := map[string]bool{}
	for _, r := range taken {
		takenNames[r.NameStr] = true
	}
	for _, r := range pool.Rules() {
		if !takenNames[r.NameStr] {
			remaining.Add(r)
		}
	}
	*pool = *remaining

	for _, r := range taken {
		verdict := v.Validate(l, r)
		if verdict == validate.Valid {
			selected.Add(r)
		} else {
			invalid.Add(r)
		}

		reverse := r.Reversed()
		if pool.Contains(reverse) {
			rv := v.Validate(l, reverse)
			if rv == validate.Valid {
				selected.Add(reverse)
			} else {
				invalid.Add(reverse)
			}
		}
	}
	return selected
}

// Shrink rebuilds a fresh e-graph from scratch, adds every remaining
// candidate's LHS/RHS as roots, runs scheduler with the accepted ("chosen")
// ruleset, and keeps only the candidates whose two roots did NOT merge —
// those are the ones not yet derivable from what's been accepted so far.
// Mirrors ruleset.rs's shrink.
func Shrink(pool *rule.Ruleset, chosen *rule.Ruleset, sched egraph.Scheduler, limits egraph.Limits) {
	g := egraph.New(limits.NodeCap)
	type root struct {
		l, r egraph.ID
		rule *rule.Rule
	}
	var roots []root
	for _, r := range pool.Rules() {
		lID, err1 := egraph.InstantiatePattern(g, r.LHSPat)
		rID, err2 := egraph.InstantiatePattern(g, r.RHSPat)
		if err1 != nil || err2 != nil {
			continue
		}
		roots = append(roots, root{l: lID, r: rID, rule: r})
	}

	g = sched.Run(g, chosen.AsEgraphRules())

	kept := rule.NewRuleset()
	for _, rt := range roots {
		if g.Find(rt.l) != g.Find(rt.r) {
			kept.Add(rt.rule)
		}
	}
	*pool = *kept
}

// Minimize runs the full select/shrink loop to a fixpoint: while pool is
// non-empty, select the next step's candidates, extend chosen, shrink pool
// against the updated chosen set. Returns the newly accepted rules (not
// including prior) and everything rejected along the way.
func Minimize(pool *rule.Ruleset, prior *rule.Ruleset, l lang.Language, v validate.Validator, cfg Config) (accepted, invalid *rule.Ruleset) {
	invalid = rule.NewRuleset()
	chosen := rule.NewRuleset()
	chosen.Extend(prior)

	stepSize := cfg.StepSize
	if stepSize <= 0 {
		stepSize = 1
	}

	sched := egraph.NewSaturatingScheduler(cfg.Limits)

	for !pool.IsEmpty() {
		selected := Select(pool, stepSize, l, v, invalid)
		chosen.Extend(selected)
		Shrink(pool, chosen, sched, cfg.Limits)
	}

	chosen.RemoveAll(prior)
	return chosen, invalid
}
