// Package workload SPDX-License-Identifier: Apache-2.0
//
// Package workload implements the lazy term-population DSL from spec.md
// §6.2, grounded on original_source/src/enumo.rs's Workload/Sexp/Filter/
// Metric types. A Workload is a small expression tree (Set, Plug, Filter,
// Append) that Force materializes into a concrete slice of sexp.Sexp.
package workload

import "rulesynth/internal/sexp"

// Metric is a size measure used by MetricLt filters.
type Metric int

const (
	// Atoms counts every atom in the term, recursively (an atom counts 1).
	Atoms Metric = iota
	// ListNodes counts the list nodes in the term, recursively (an atom
	// counts 0).
	ListNodes
	// Depth is the maximum nesting depth, counting an atom as depth 1.
	Depth
)

// Measure computes s's size under m, matching enumo.rs's Sexp::measure.
func Measure(s sexp.Sexp, m Metric) int {
	if s.IsAtom() {
		if m == ListNodes {
			return 0
		}
		return 1
	}
	switch m {
	case Atoms:
		total := 0
		for _, c := range s.List {
			total += Measure(c, Atoms)
		}
		return total
	case ListNodes:
		total := 1
		for _, c := range s.List {
			total += Measure(c, ListNodes)
		}
		return total
	case Depth:
		max := 0
		for _, c := range s.List {
			if d := Measure(c, Depth); d > max {
				max = d
			}
		}
		return max + 1
	default:
		return 0
	}
}

// Workload is a tagged union over the four population-building operations.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Workload struct {
	kind kind

	set    []sexp.Sexp
	plugOf *Workload
	name   string
	pegs   *Workload
	filter Filter
	target *Workload
	parts  []Workload
}

type kind int

const (
	kindSet kind = iota
	kindPlug
	kindFilter
	kindAppend
)

// Set builds a workload from an explicit list of terms.
func Set(items ...sexp.Sexp) Workload { return Workload{kind: kindSet, set: items} }

// Plug substitutes every occurrence of the atom name in target with each
// term from pegs, taking the cross product when name appears more than
// once in a single target term (matching Sexp::plug's
// multi_cartesian_product semantics).
func Plug(target Workload, name string, pegs Workload) Workload {
	return Workload{kind: kindPlug, plugOf: &target, name: name, pegs: &pegs}
}

// FilterWorkload keeps only the terms in target for which f.Test succeeds.
func FilterWorkload(f Filter, target Workload) Workload {
	return Workload{kind: kindFilter, filter: f, target: &target}
}

// Append concatenates several workloads' forced results in order.
func Append(parts ...Workload) Workload { return Workload{kind: kindAppend, parts: parts} }

// Force materializes w into a concrete, ordered slice of terms.
func (w Workload) Force() []sexp.Sexp {
	switch w.kind {
	case kindSet:
		return append([]sexp.Sexp(nil), w.set...)
	case kindPlug:
		pegs := w.pegs.Force()
		var out []sexp.Sexp
		for _, t := range w.plugOf.Force() {
			out = append(out, plugSexp(t, w.name, pegs)...)
		}
		return out
	case kindFilter:
		var out []sexp.Sexp
		for _, t := range w.target.Force() {
			if w.filter.Test(t) {
				out = append(out, t)
			}
		}
		return out
	case kindAppend:
		var out []sexp.Sexp
		for _, p := range w.parts {
			out = append(out, p.Force()...)
		}
		return out
	default:
		return nil
	}
}

// Filter pushes a monotonic filter f through an enclosing Plug's target
// recursively, following enumo.rs's Workload::filter: a Filter node applied
// to a Plug is rewritten into a Plug of the filtered children, so filtering
// happens before the cross product explodes the population; f is still
// applied to the plugged result. Non-monotonic filters (or filters over
// non-Plug workloads) just wrap w.
func (w Workload) Filter(f Filter) Workload {
	if f.IsMonotonic() && w.kind == kindPlug {
		return FilterWorkload(f, Plug(w.plugOf.Filter(f), w.name, w.pegs.Filter(f)))
	}
	return FilterWorkload(f, w)
}

// Iter builds an n-deep self-referential plug chain: w.Iter(atom, 0) is the
// empty set; w.Iter(atom, n) plugs atom in w with w.Iter(atom, n-1).
// Grounded on enumo.rs's Workload::iter.
func (w Workload) Iter(atom string, n int) Workload {
	if n == 0 {
		return Set()
	}
	return Plug(w, atom, w.Iter(atom, n-1))
}

// plugSexp implements Sexp::plug: substituting an Atom matching name with
// every term in pegs (returning pegs verbatim, ready for the caller's
// cross product); any other atom passes through unchanged; a List maps
// each child's own plug results through a cartesian product and rewraps
// each combination as a List.
func plugSexp(s sexp.Sexp, name string, pegs []sexp.Sexp) []sexp.Sexp {
	if s.IsAtom() {
		if s.Atom == name {
			return append([]sexp.Sexp(nil), pegs...)
		}
		return []sexp.Sexp{s}
	}
	if len(s.List) == 0 {
		return []sexp.Sexp{s}
	}
	childOptions := make([][]sexp.Sexp, len(s.List))
	for i, c := range s.List {
		childOptions[i] = plugSexp(c, name, pegs)
	}
	var out []sexp.Sexp
	for _, combo := range cartesianProduct(childOptions) {
		out = append(out, sexp.MkList(combo...))
	}
	return out
}

// cartesianProduct computes the cross product of several option lists, in
// the same left-to-right, outer-to-inner order as itertools'
// multi_cartesian_product.
func cartesianProduct(options [][]sexp.Sexp) [][]sexp.Sexp {
	if len(options) == 0 {
		return [][]sexp.Sexp{{}}
	}
	rest := cartesianProduct(options[1:])
	var out [][]sexp.Sexp
	for _, head := range options[0] {
		for _, tail := range rest {
			combo := make([]sexp.Sexp, 0, len(tail)+1)
			combo = append(combo, head)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}
