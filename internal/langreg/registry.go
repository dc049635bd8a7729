// Package langreg SPDX-License-Identifier: Apache-2.0
//
// Package langreg maps a config/CLI language name onto one of the built-in
// lang.Language implementations. Kept separate from internal/lang itself
// since each concrete language imports internal/lang, and internal/lang
// cannot import them back without an import cycle.
package langreg

import (
	"fmt"

	"rulesynth/internal/lang"
	"rulesynth/internal/lang/boolean"
	"rulesynth/internal/lang/pred"
	"rulesynth/internal/lang/rational"
)

// Lookup resolves a built-in Language by name, the Go analogue of
// original_source's per-binary hardcoded language choice (pred.rs / bool.rs
// / rational.rs each picked one language at main()).
func Lookup(name string) (lang.Language, error) {
	switch name {
	case "boolean":
		return boolean.Language{}, nil
	case "pred":
		return pred.Language{}, nil
	case "rational":
		return rational.Language{}, nil
	default:
		return nil, fmt.Errorf("langreg: unknown language %q (want boolean, pred, or rational)", name)
	}
}
