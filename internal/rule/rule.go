// Package rule SPDX-License-Identifier: Apache-2.0
//
// Package rule implements Rule and Ruleset, grounded on
// original_source/src/equality.rs (Equality<L>, forward/back direction
// construction, NotUndefined applier semantics folded into Validator
// instead) and original_source/src/enumo/ruleset.rs (Ruleset<L>, the
// IndexMap-backed ordered rule set, bidir_len, add_from_recexprs,
// select/shrink/minimize).
package rule

import (
	"fmt"
	"sort"
	"strings"

	"rulesynth/internal/egraph"
	"rulesynth/internal/parallel"
	"rulesynth/internal/term"
)

// Rule is a single oriented rewrite lhs -> rhs, or lhs <=> rhs when
// Bidirectional is set (both directions hold, per spec.md §3).
type Rule struct {
	NameStr       string
	LHSPat        *term.Pattern
	RHSPat        *term.Pattern
	Bidirectional bool
}

func (r *Rule) Name() string       { return r.NameStr }
func (r *Rule) LHS() *term.Pattern { return r.LHSPat }
func (r *Rule) RHS() *term.Pattern { return r.RHSPat }

var _ egraph.Rule = (*Rule)(nil)

// directionName mirrors equality.rs's naming convention: "lhs => rhs" for a
// one-directional rule, "lhs <=> rhs" for a bidirectional one.
func directionName(lhs, rhs *term.Pattern, bidir bool) string {
	if bidir {
		return fmt.Sprintf("%s <=> %s", lhs.String(), rhs.String())
	}
	return fmt.Sprintf("%s => %s", lhs.String(), rhs.String())
}

// New builds a single-direction rule lhs => rhs.
func New(lhs, rhs *term.Pattern) *Rule {
	return &Rule{NameStr: directionName(lhs, rhs, false), LHSPat: lhs, RHSPat: rhs}
}

// NewBidirectional builds a bidirectional rule lhs <=> rhs.
func NewBidirectional(lhs, rhs *term.Pattern) *Rule {
	return &Rule{NameStr: directionName(lhs, rhs, true), LHSPat: lhs, RHSPat: rhs, Bidirectional: true}
}

// Reversed returns the rule with lhs and rhs swapped (same Bidirectional
// flag; bidirectional rules are their own reverse in content).
func (r *Rule) Reversed() *Rule {
	if r.Bidirectional {
		return NewBidirectional(r.RHSPat, r.LHSPat)
	}
	return New(r.RHSPat, r.LHSPat)
}

// FromTerms builds both directions of a candidate rule from one pair of
// ground terms, using a single shared generalization map across both
// patterns (term.Generalize already does this). This is the Go analogue of
// add_from_recexprs's critical invariant: generalizing (e1,e2) once and
// reusing the result for both the forward and backward rule, rather than
// calling Generalize twice with two different maps.
func FromTerms(e1, e2 *term.Term) (forward, backward *Rule) {
	p1, p2 := term.Generalize(e1, e2)
	if term.Equal(p1, p2) {
		return nil, nil
	}
	return New(p1, p2), New(p2, p1)
}

// Ruleset is an insertion-ordered, name-deduplicated set of rules, mirroring
// the reference's IndexMap<Arc<str>, Rule<L>>: a map for O(1) membership
// plus a parallel slice that preserves first-insertion order for
// deterministic iteration, printing, and file output.
type Ruleset struct {
	byName map[string]*Rule
	order  []string
}

// NewRuleset builds an empty ruleset.
func NewRuleset() *Ruleset {
	return &Ruleset{byName: map[string]*Rule{}}
}

// Add inserts r, overwriting any existing rule of the same name (matching
// ruleset.rs's `add`, which also overwrites by name).
func (rs *Ruleset) Add(r *Rule) {
	if _, exists := rs.byName[r.NameStr]; !exists {
		rs.order = append(rs.order, r.NameStr)
	}
	rs.byName[r.NameStr] = r
}

// Contains reports whether a rule with r's name is present.
func (rs *Ruleset) Contains(r *Rule) bool {
	_, ok := rs.byName[r.NameStr]
	return ok
}

// Len returns the number of rule entries (each direction of a pair counts
// once if added as two unidirectional rules, or once total if added as a
// single Bidirectional rule).
func (rs *Ruleset) Len() int { return len(rs.order) }

// IsEmpty reports whether the ruleset has no rules.
func (rs *Ruleset) IsEmpty() bool { return len(rs.order) == 0 }

// Rules returns the rules in insertion order.
func (rs *Ruleset) Rules() []*Rule {
	out := make([]*Rule, len(rs.order))
	for i, name := range rs.order {
		out[i] = rs.byName[name]
	}
	return out
}

// AsEgraphRules adapts Rules() to the egraph.Rule interface slice the
// scheduler expects.
func (rs *Ruleset) AsEgraphRules() []egraph.Rule {
	rules := rs.Rules()
	out := make([]egraph.Rule, len(rules))
	for i, r := range rules {
		out[i] = r
	}
	return out
}

// BidirLen implements ruleset.rs's bidir_len: for each rule, if its reverse
// is also present, it counts toward a bidirectional pair (each direction of
// the pair satisfies this check, hence the final /2); otherwise it counts
// as unidirectional.
func (rs *Ruleset) BidirLen() int {
	unidir, bidir := 0, 0
	for _, r := range rs.Rules() {
		reverse := r.Reversed()
		if rs.Contains(reverse) {
			bidir++
		} else {
			unidir++
		}
	}
	return unidir + bidir/2
}

// Union returns a new ruleset containing every rule from rs and other,
// with other's entries overwriting rs's on name collision.
func (rs *Ruleset) Union(other *Ruleset) *Ruleset {
	out := NewRuleset()
	for _, r := range rs.Rules() {
		out.Add(r)
	}
	for _, r := range other.Rules() {
		out.Add(r)
	}
	return out
}

// Extend adds every rule from other into rs in place.
func (rs *Ruleset) Extend(other *Ruleset) {
	for _, r := range other.Rules() {
		rs.Add(r)
	}
}

// AddAll inserts every rule in rules, in the given order.
func (rs *Ruleset) AddAll(rules []*Rule) {
	for _, r := range rules {
		rs.Add(r)
	}
}

// RemoveAll removes every rule from rs whose name is present in other.
func (rs *Ruleset) RemoveAll(other *Ruleset) {
	for _, name := range other.order {
		if _, ok := rs.byName[name]; ok {
			delete(rs.byName, name)
		}
	}
	kept := rs.order[:0:0]
	for _, name := range rs.order {
		if _, ok := rs.byName[name]; ok {
			kept = append(kept, name)
		}
	}
	rs.order = kept
}

// Partition splits rs into (matching, rest) by predicate f, preserving rs's
// original relative order within each half. The predicate is evaluated
// concurrently across internal/parallel's worker pool (mirroring
// ruleset.rs's use of rayon's into_par_iter().partition for this same
// step), then the two halves are rebuilt by a single sequential pass over
// the original order so the split stays deterministic regardless of which
// goroutine finished first.
func (rs *Ruleset) Partition(f func(*Rule) bool) (matching, rest *Ruleset) {
	rules := rs.Rules()
	verdicts := parallel.Run(len(rules), 0, func(i int) bool { return f(rules[i]) })

	matching, rest = NewRuleset(), NewRuleset()
	for i, r := range rules {
		if verdicts[i] {
			matching.Add(r)
		} else {
			rest.Add(r)
		}
	}
	return matching, rest
}

// PrettyPrint renders rs as one line per rule, printing bidirectional pairs
// once with "<=>" instead of twice with "=>", matching ruleset.rs's
// pretty_print dedup behavior.
func (rs *Ruleset) PrettyPrint() string {
	var lines []string
	seen := map[string]bool{}
	for _, r := range rs.Rules() {
		if seen[r.NameStr] {
			continue
		}
		reverse := r.Reversed()
		if rs.Contains(reverse) && reverse.NameStr != r.NameStr {
			seen[reverse.NameStr] = true
			lines = append(lines, fmt.Sprintf("%s <=> %s", r.LHSPat.String(), r.RHSPat.String()))
		} else {
			lines = append(lines, fmt.Sprintf("%s => %s", r.LHSPat.String(), r.RHSPat.String()))
		}
	}
	return strings.Join(lines, "\n")
}

// ToStrVec returns every rule's name in insertion order, for diffing and
// equality comparisons.
func (rs *Ruleset) ToStrVec() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// DeriveType selects how CanDerive seeds its e-graph, per spec.md §6.4.
type DeriveType int

const (
	// DeriveLhs seeds the e-graph with only the candidate rule's lhs.
	DeriveLhs DeriveType = iota
	// DeriveLhsAndRhs seeds the e-graph with both lhs and rhs.
	DeriveLhsAndRhs
)

// CanDerive reports whether rule's lhs and rhs end up in the same e-class
// after seeding a fresh e-graph (per dt) and saturating with rs, grounded on
// original_source/src/enumo/ruleset.rs's can_derive.
func (rs *Ruleset) CanDerive(dt DeriveType, r *Rule, limits egraph.Limits) bool {
	g := egraph.New(limits.NodeCap)
	lID, err := egraph.InstantiatePattern(g, r.LHSPat)
	if err != nil {
		return false
	}
	rID, err := egraph.InstantiatePattern(g, r.RHSPat)
	if err != nil {
		return false
	}
	if dt == DeriveLhs {
		// Re-seed with only lhs: drop the rhs root by rebuilding from scratch.
		g = egraph.New(limits.NodeCap)
		lID, err = egraph.InstantiatePattern(g, r.LHSPat)
		if err != nil {
			return false
		}
	}

	sched := egraph.NewDeriveScheduler(limits)
	out := sched.Run(g, rs.AsEgraphRules())

	if dt == DeriveLhs {
		// rhs was never added; instantiate it now against the saturated graph
		// so a match against an existing shape still finds the same class,
		// matching lookup_expr's "found or not" semantics rather than
		// forcing a fresh (and therefore always-distinct) class.
		rID, err = egraph.InstantiatePattern(out, r.RHSPat)
		if err != nil {
			return false
		}
		out.Rebuild()
	}
	return out.Find(lID) == out.Find(rID)
}

// Derive partitions against into (derivable, underivable) with respect to
// rs: against.Partition(rule => rs.CanDerive(dt, rule, limits)), grounded on
// ruleset.rs's derive.
func (rs *Ruleset) Derive(dt DeriveType, against *Ruleset, limits egraph.Limits) (derivable, underivable *Ruleset) {
	return against.Partition(func(r *Rule) bool { return rs.CanDerive(dt, r, limits) })
}

// SortedByScore returns rs's rules ordered best-score-first using
// term.Score/LessScore, used by Select (internal/minimize) to decide which
// candidates to try next.
func (rs *Ruleset) SortedByScore() []*Rule {
	rules := rs.Rules()
	sort.SliceStable(rules, func(i, j int) bool {
		si := term.Score(rules[i].LHSPat, rules[i].RHSPat)
		sj := term.Score(rules[j].LHSPat, rules[j].RHSPat)
		return term.LessScore(si, sj, rules[i].NameStr, rules[j].NameStr)
	})
	return rules
}
