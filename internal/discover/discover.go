// Package discover SPDX-License-Identifier: Apache-2.0
//
// Package discover implements candidate rule discovery, grounded on
// original_source/src/enumo/ruleset.rs's cvec_match/fast_cvec_match/
// extract_candidates. Both cvec-match variants are exposed per spec.md
// §9's open design question rather than picking one as "the" matcher.
package discover

import (
	"sort"

	"rulesynth/internal/egraph"
	"rulesynth/internal/lang"
	"rulesynth/internal/rule"
	"rulesynth/internal/term"
)

// cvecEqual compares two signature entries with None-tolerant semantics:
// either side being nil (undefined) is treated as a match, since an
// undefined value places no constraint on candidate equivalence during
// discovery (contrast with validate's strict equality).
func cvecEqual(a, b lang.Signature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			continue
		}
		if stringify(a[i]) != stringify(b[i]) {
			return false
		}
	}
	return true
}

func sortedIDs(g *egraph.EGraph) []egraph.ID {
	ids := make([]egraph.ID, 0, g.Len())
	for id := range g.Classes() {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func extractAll(g *egraph.EGraph, ids []egraph.ID) map[egraph.ID]*term.Term {
	out := make(map[egraph.ID]*term.Term, len(ids))
	for _, id := range ids {
		if t, _, ok := egraph.Extract(g, id, egraph.AstSizeCost); ok {
			out[id] = t
		}
	}
	return out
}

func addCandidatePair(candidates *rule.Ruleset, e1, e2 *term.Term) {
	if term.Equal(e1, e2) {
		return
	}
	fwd, back := rule.FromTerms(e1, e2)
	if fwd != nil {
		candidates.Add(fwd)
	}
	if back != nil {
		candidates.Add(back)
	}
}

// CvecMatch is the paper-faithful default discovery strategy: group
// e-classes by their cvec's first entry, union the "undefined" bucket
// into every group (since nil compares equal to anything), and propose a
// candidate rule for every pair of extracted terms within a group whose
// full cvecs agree everywhere both are defined.
func CvecMatch(g *egraph.EGraph) *rule.Ruleset {
	candidates := rule.NewRuleset()
	ids := sortedIDs(g)

	var withCvec []egraph.ID
	for _, id := range ids {
		if g.Class(id).Cvec() != nil {
			withCvec = append(withCvec, id)
		}
	}

	var none []egraph.ID
	byFirst := map[string][]egraph.ID{}
	var firstKeys []string
	for _, id := range withCvec {
		sig, _ := g.Class(id).Cvec().(lang.Signature)
		if len(sig) == 0 || sig[0] == nil {
			none = append(none, id)
			continue
		}
		key := stringify(sig[0])
		if _, ok := byFirst[key]; !ok {
			firstKeys = append(firstKeys, key)
		}
		byFirst[key] = append(byFirst[key], id)
	}

	extracted := extractAll(g, withCvec)

	groupAndMatch := func(group []egraph.ID) {
		all := append([]egraph.ID(nil), group...)
		all = append(all, none...)
		for i := 0; i < len(all); i++ {
			for j := i + 1; j < len(all); j++ {
				ci, cj := g.Class(all[i]), g.Class(all[j])
				sigI, _ := ci.Cvec().(lang.Signature)
				sigJ, _ := cj.Cvec().(lang.Signature)
				if !cvecEqual(sigI, sigJ) {
					continue
				}
				e1, ok1 := extracted[all[i]]
				e2, ok2 := extracted[all[j]]
				if !ok1 || !ok2 {
					continue
				}
				addCandidatePair(candidates, e1, e2)
			}
		}
	}

	for _, k := range firstKeys {
		groupAndMatch(byFirst[k])
	}
	for i := 0; i < len(none); i++ {
		for j := i + 1; j < len(none); j++ {
			sigI, _ := g.Class(none[i]).Cvec().(lang.Signature)
			sigJ, _ := g.Class(none[j]).Cvec().(lang.Signature)
			if !cvecEqual(sigI, sigJ) {
				continue
			}
			e1, ok1 := extracted[none[i]]
			e2, ok2 := extracted[none[j]]
			if ok1 && ok2 {
				addCandidatePair(candidates, e1, e2)
			}
		}
	}

	return candidates
}

// FastCvecMatch is the opt-in faster variant: group by the *entire* cvec
// (exact equality, not None-tolerant), so no pairwise comparison is needed
// within a group. This can under-report candidates when cvecs contain
// undefined entries, exactly as documented in enumo/ruleset.rs's
// fast_cvec_match comment ("may underestimate candidates... when there
// are None values") — the tradeoff spec.md §9 asks to expose, not resolve.
func FastCvecMatch(g *egraph.EGraph) *rule.Ruleset {
	candidates := rule.NewRuleset()
	ids := sortedIDs(g)

	var withCvec []egraph.ID
	for _, id := range ids {
		if g.Class(id).Cvec() != nil {
			withCvec = append(withCvec, id)
		}
	}
	extracted := extractAll(g, withCvec)

	groups := map[string][]egraph.ID{}
	var order []string
	for _, id := range withCvec {
		sig, _ := g.Class(id).Cvec().(lang.Signature)
		key := signatureKey(sig)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], id)
	}

	for _, k := range order {
		group := groups[k]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				e1, ok1 := extracted[group[i]]
				e2, ok2 := extracted[group[j]]
				if ok1 && ok2 {
					addCandidatePair(candidates, e1, e2)
				}
			}
		}
	}
	return candidates
}

func signatureKey(sig lang.Signature) string {
	s := ""
	for _, v := range sig {
		if v == nil {
			s += "\x00nil\x00"
			continue
		}
		s += "\x00" + stringify(v)
	}
	return s
}

func stringify(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return anyToString(v)
}

func anyToString(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int64:
		return itoa(x)
	case string:
		return x
	default:
		return "?"
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// CrossGraphDiff implements extract_candidates: for every e-class of eg1,
// find its representative class in eg2 and group eg1 ids by that shared
// representative; within each group, every pair of distinct extracted
// terms becomes a candidate rule. This is how population compression
// (eg1, before rewriting) gets diffed against the post-rewrite e-graph
// (eg2) to find what the rewrite rules proved equal.
func CrossGraphDiff(eg1, eg2 *egraph.EGraph, find2 func(egraph.ID) egraph.ID) *rule.Ruleset {
	candidates := rule.NewRuleset()
	ids1 := sortedIDs(eg1)

	unions := map[egraph.ID][]egraph.ID{}
	var order []egraph.ID
	for _, id := range ids1 {
		rep := find2(id)
		if _, ok := unions[rep]; !ok {
			order = append(order, rep)
		}
		unions[rep] = append(unions[rep], id)
	}

	for _, rep := range order {
		group := unions[rep]
		extracted := extractAll(eg1, group)
		for i := 0; i < len(group); i++ {
			for j := i; j < len(group); j++ {
				e1, ok1 := extracted[group[i]]
				e2, ok2 := extracted[group[j]]
				if ok1 && ok2 {
					addCandidatePair(candidates, e1, e2)
				}
			}
		}
	}
	return candidates
}
