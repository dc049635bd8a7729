// Package egraph SPDX-License-Identifier: Apache-2.0
package egraph

import (
	"sort"

	"rulesynth/internal/term"
)

// Rule is the minimal shape the scheduler needs from a rewrite rule: a
// left-hand pattern to search for and a right-hand pattern to instantiate
// and union in on every match. internal/rule.Rule satisfies this via a
// thin adapter so the scheduler never imports the rule package (it would
// be a cycle: rule depends on egraph for derivability checks).
type Rule interface {
	Name() string
	LHS() *term.Pattern
	RHS() *term.Pattern
}

// Limits bounds one scheduler run, per spec.md §5's resource model.
type Limits struct {
	IterCap int // max saturation rounds; 0 means 1 round only
	NodeCap int // node limit callers pass to egraph.New; Run itself does not read it
}

// Mode records why a scheduler run was invoked. Compress and Saturating
// run identically; Derive additionally skips every match whose rhs
// instantiation is not already a shape in the graph.
type Mode int

const (
	Compress Mode = iota
	Saturating
	Derive
)

// Scheduler runs rewrite rules to a fixpoint (or until IterCap rounds
// elapse), applying one-directional pattern rewriting: search every rule's
// LHS against every live class, and for each match union that class with
// the RHS instantiated under the same substitution. This mirrors the
// egg::Runner::run loop used throughout the reference's enumo/ruleset.rs
// (Scheduler::Saturating(limits).run(&egraph, chosen)).
type Scheduler struct {
	Mode   Mode
	Limits Limits
}

// NewCompressScheduler builds a scheduler for population compression: Run
// applies the rules it is given (synth passes the accepted ruleset) for up
// to limits.IterCap rounds, exactly as in Saturating mode.
func NewCompressScheduler(limits Limits) Scheduler {
	return Scheduler{Mode: Compress, Limits: limits}
}

// NewSaturatingScheduler builds a scheduler that applies rules to a
// fixpoint (bounded by limits.IterCap), used by minimize.Shrink and by
// interactive simplification.
func NewSaturatingScheduler(limits Limits) Scheduler {
	return Scheduler{Mode: Saturating, Limits: limits}
}

// NewDeriveScheduler builds a scheduler for derivability checks: like
// Saturating, but an application is only committed when its rhs
// instantiation already exists as a syntactic shape somewhere in the
// graph (per spec.md §4.2, "skipping rules whose instantiation would add
// new syntactic shapes not already present"). Used by rule.CanDerive so a
// derivation probe can't manufacture the very equivalence it's supposed
// to be checking for.
func NewDeriveScheduler(limits Limits) Scheduler {
	return Scheduler{Mode: Derive, Limits: limits}
}

// Run applies rules to a fresh copy of g to a fixpoint or until
// Limits.IterCap rounds have executed, and returns that copy rebuilt
// (congruence-closed); g itself is never modified, per spec.md §4.2 ("each
// mode returns a new e-graph; none mutates its input"). In Derive mode, a
// match is only committed when its rhs instantiation already corresponds
// to an existing node shape in the graph — matches whose rhs would
// introduce a brand new shape are skipped rather than applied.
func (s Scheduler) Run(g *EGraph, rules []Rule) *EGraph {
	out := g.Clone()
	iters := s.Limits.IterCap
	if iters <= 0 {
		iters = 1
	}
	for i := 0; i < iters; i++ {
		changed := false
		for _, r := range rules {
			lhs, rhs := r.LHS(), r.RHS()
			for _, m := range searchAll(out, lhs) {
				if s.Mode == Derive {
					if _, ok := lookupShape(out, rhs, m.subst); !ok {
						continue
					}
				}
				rhsID, err := instantiate(out, rhs, m.subst)
				if err != nil {
					continue
				}
				if out.Find(m.class) != out.Find(rhsID) {
					changed = true
				}
				out.Union(m.class, rhsID)
			}
		}
		out.Rebuild()
		if !changed {
			break
		}
	}
	return out
}

type match struct {
	class ID
	subst map[string]ID
}

// searchAll finds every (class, substitution) pair where pat matches some
// node in that class, in ascending class-id order so that Run's resulting
// union/instantiate sequence is independent of Go's randomized map
// iteration order (spec.md §5/§8 determinism).
func searchAll(g *EGraph, pat *term.Pattern) []match {
	classes := g.Classes()
	ids := make([]ID, 0, len(classes))
	for id := range classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []match
	for _, id := range ids {
		subst := map[string]ID{}
		if matchClass(g, pat, classes[id], subst) {
			out = append(out, match{class: id, subst: subst})
		}
	}
	return out
}

// matchClass tries to match pat against some ENode owned by class, given
// the substitution built so far (mutated on success).
func matchClass(g *EGraph, pat *term.Pattern, class *EClass, subst map[string]ID) bool {
	if pat.Kind == term.PatVar {
		if bound, ok := subst[pat.Symbol]; ok {
			return g.Find(bound) == g.Find(class.ID)
		}
		subst[pat.Symbol] = class.ID
		return true
	}
	for _, n := range class.Nodes {
		if n.Op != pat.Symbol || len(n.Children) != len(pat.Children) {
			continue
		}
		trial := cloneSubst(subst)
		ok := true
		for i, childPat := range pat.Children {
			if !matchClass(g, childPat, g.Class(n.Children[i]), trial) {
				ok = false
				break
			}
		}
		if ok {
			for k, v := range trial {
				subst[k] = v
			}
			return true
		}
	}
	return false
}

func cloneSubst(m map[string]ID) map[string]ID {
	out := make(map[string]ID, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// instantiate builds pat into g using subst to resolve pattern variables,
// returning the resulting class id. Every pattern variable in pat must be
// bound in subst.
func instantiate(g *EGraph, pat *term.Pattern, subst map[string]ID) (ID, error) {
	if pat.Kind == term.PatVar {
		id, ok := subst[pat.Symbol]
		if !ok {
			return 0, ErrUnboundVar{Name: pat.Symbol}
		}
		return id, nil
	}
	children := make([]ID, len(pat.Children))
	for i, c := range pat.Children {
		id, err := instantiate(g, c, subst)
		if err != nil {
			return 0, err
		}
		children[i] = id
	}
	return g.Add(pat.Symbol, children...)
}

// lookupShape is instantiate's read-only counterpart: it reports whether
// pat, resolved under subst, already corresponds to some existing node in
// g's hashcons table, without adding anything. Used by Derive-mode Run to
// decide whether a rewrite's rhs is a "new syntactic shape" or one that
// already exists somewhere in the graph.
func lookupShape(g *EGraph, pat *term.Pattern, subst map[string]ID) (ID, bool) {
	if pat.Kind == term.PatVar {
		id, ok := subst[pat.Symbol]
		return id, ok
	}
	children := make([]ID, len(pat.Children))
	for i, c := range pat.Children {
		id, ok := lookupShape(g, c, subst)
		if !ok {
			return 0, false
		}
		children[i] = id
	}
	n := ENode{Op: pat.Symbol, Children: children}
	id, ok := g.hashcon[n.key(g.Find)]
	return id, ok
}

// ErrUnboundVar is returned by instantiate when a pattern references a
// variable the caller's substitution does not bind.
type ErrUnboundVar struct{ Name string }

func (e ErrUnboundVar) Error() string { return "egraph: unbound pattern variable " + e.Name }

// AddTerm inserts a ground term.Term into g (no pattern variables allowed)
// and returns its class id, building congruent subterms along the way.
func AddTerm(g *EGraph, t *term.Term) (ID, error) {
	if t.Kind == term.PatVar {
		return 0, ErrUnboundVar{Name: t.Symbol}
	}
	children := make([]ID, len(t.Children))
	for i, c := range t.Children {
		id, err := AddTerm(g, c)
		if err != nil {
			return 0, err
		}
		children[i] = id
	}
	return g.Add(t.Symbol, children...)
}

// InstantiatePattern inserts a term.Pattern into g, treating every distinct
// pattern variable name as its own fresh 0-arity node (named "var:"+name) so
// two occurrences of the same variable share a root. Used by rule.Derive and
// minimize.Shrink to build closed e-graph roots out of an open rule side,
// mirroring the reference's `instantiate` helper used ahead of a
// Scheduler::Saturating run.
func InstantiatePattern(g *EGraph, p *term.Pattern) (ID, error) {
	names := map[string]ID{}
	var walk func(*term.Pattern) (ID, error)
	walk = func(n *term.Pattern) (ID, error) {
		if n.Kind == term.PatVar {
			if id, ok := names[n.Symbol]; ok {
				return id, nil
			}
			id, err := g.Add("var:" + n.Symbol)
			if err != nil {
				return 0, err
			}
			names[n.Symbol] = id
			return id, nil
		}
		children := make([]ID, len(n.Children))
		for i, c := range n.Children {
			id, err := walk(c)
			if err != nil {
				return 0, err
			}
			children[i] = id
		}
		return g.Add(n.Symbol, children...)
	}
	return walk(p)
}

// Extract pulls the best (per cost) ground term.Term out of a class, using
// cost as the per-node weight function; ties break toward the
// lexicographically smaller operator name, for determinism. The e-graph
// keeps only a leaf's symbol, not whether it was a variable or a constant,
// so every zero-arity node comes back as a term.Var leaf. Grounded on the
// reference's Extractor::new(..., ExtractableAstSize/AstSize) usage
// throughout enumo/ruleset.rs.
func Extract(g *EGraph, id ID, cost func(op string, childCosts []int) int) (*term.Term, int, bool) {
	memo := map[ID]*term.Term{}
	costMemo := map[ID]int{}
	const unbounded = 1 << 30

	var best func(ID, map[ID]bool) (*term.Term, int)
	best = func(cid ID, visiting map[ID]bool) (*term.Term, int) {
		cid = g.Find(cid)
		if t, ok := memo[cid]; ok {
			return t, costMemo[cid]
		}
		if visiting[cid] {
			return nil, unbounded
		}
		visiting[cid] = true
		defer delete(visiting, cid)

		var bestTerm *term.Term
		bestCost := unbounded
		for _, n := range g.Class(cid).Nodes {
			childCosts := make([]int, len(n.Children))
			childTerms := make([]*term.Term, len(n.Children))
			ok := true
			for i, c := range n.Children {
				ct, cc := best(c, visiting)
				if cc >= unbounded {
					ok = false
					break
				}
				childTerms[i] = ct
				childCosts[i] = cc
			}
			if !ok {
				continue
			}
			c := cost(n.Op, childCosts)
			if c < bestCost || (c == bestCost && (bestTerm == nil || n.Op < bestTerm.Symbol)) {
				bestCost = c
				if len(n.Children) == 0 {
					bestTerm = term.NewVar(n.Op)
				} else {
					bestTerm = term.NewApp(n.Op, childTerms...)
				}
			}
		}
		if bestTerm != nil {
			memo[cid] = bestTerm
			costMemo[cid] = bestCost
		}
		return bestTerm, bestCost
	}

	t, c := best(id, map[ID]bool{})
	if t == nil {
		return nil, 0, false
	}
	return t, c, true
}

// AstSizeCost is the default extraction cost: every node costs 1, so the
// cheapest term is the one with fewest nodes.
func AstSizeCost(op string, childCosts []int) int {
	n := 1
	for _, c := range childCosts {
		n += c
	}
	return n
}
