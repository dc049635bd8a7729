// Package lang SPDX-License-Identifier: Apache-2.0
package lang

// Sort tags the algebraic domain a language's expressions evaluate to.
// Grounded on _examples/kanso-lang-kanso/internal/types/registry.go's
// TypeRegistry, retargeted from contract type names to the handful of
// value domains a bundled Language can declare.
type Sort int

const (
	SortBool Sort = iota
	SortInt
	SortRational
)

func (s Sort) String() string {
	switch s {
	case SortBool:
		return "bool"
	case SortInt:
		return "int"
	case SortRational:
		return "rational"
	default:
		return "unknown"
	}
}

// TypeTagRegistry records which Sort each registered language's top-level
// expressions evaluate to. It mirrors TypeRegistry's builtins map-of-bool
// plus userDefined map-of-pointer shape: builtins lists the sorts the
// engine knows how to validate against, bindings associates a language
// name with the one sort its root expressions produce (pred's leaves are
// SortInt but its root connectives always settle on SortBool, same as
// boolean; only rational's root sort differs).
type TypeTagRegistry struct {
	builtins map[Sort]bool
	bindings map[string]*Sort
}

// NewTypeTagRegistry builds a registry with the three built-in sorts
// already marked valid and no language bindings.
func NewTypeTagRegistry() *TypeTagRegistry {
	r := &TypeTagRegistry{
		builtins: make(map[Sort]bool),
		bindings: make(map[string]*Sort),
	}
	r.InitializeBuiltins()
	return r
}

// InitializeBuiltins marks Bool, Int, and Rational as valid sorts.
func (r *TypeTagRegistry) InitializeBuiltins() {
	r.builtins[SortBool] = true
	r.builtins[SortInt] = true
	r.builtins[SortRational] = true
}

// Bind records that languageName's root expressions evaluate to s,
// overwriting any prior binding for the same name.
func (r *TypeTagRegistry) Bind(languageName string, s Sort) {
	sc := s
	r.bindings[languageName] = &sc
}

// IsValidSort reports whether s is one of the registry's built-in sorts.
func (r *TypeTagRegistry) IsValidSort(s Sort) bool {
	return r.builtins[s]
}

// SortOf returns the sort bound to languageName, and false if it was
// never registered.
func (r *TypeTagRegistry) SortOf(languageName string) (Sort, bool) {
	s, ok := r.bindings[languageName]
	if !ok {
		return 0, false
	}
	return *s, true
}

// DefaultTypeTags is the registry pre-bound to the three languages
// internal/langreg knows how to look up. boolean and pred both root in
// Bool (pred's comparisons and connectives always reduce to a boolean);
// rational roots in Rational.
func DefaultTypeTags() *TypeTagRegistry {
	r := NewTypeTagRegistry()
	r.Bind("boolean", SortBool)
	r.Bind("pred", SortBool)
	r.Bind("rational", SortRational)
	return r
}
