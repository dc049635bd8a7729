// SPDX-License-Identifier: Apache-2.0
//
// Command rulesynth drives the rule-synthesis engine: "run" executes the
// synthesis loop for a named language and writes the resulting ruleset,
// "derive" reports whether one rule file can derive another, and
// "simplify" opens an interactive REPL that rewrites one expression per
// line to its saturated normal form. Grounded on
// _examples/kanso-lang-kanso/cmd/kanso-cli/main.go's flat os.Args dispatch
// and color-accented status lines.
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"rulesynth/internal/config"
	"rulesynth/internal/egraph"
	"rulesynth/internal/lang"
	"rulesynth/internal/langreg"
	"rulesynth/internal/replay"
	"rulesynth/internal/rule"
	"rulesynth/internal/ruleio"
	"rulesynth/internal/sexp"
	"rulesynth/internal/synth"
	"rulesynth/internal/validate"
	"rulesynth/internal/workload"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "derive":
		err = deriveCmd(os.Args[2:])
	case "simplify":
		err = simplifyCmd(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("error: %s", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: rulesynth <run|derive|simplify> [args]")
	fmt.Println("  run <config.toml> <out.rules>")
	fmt.Println("  derive <candidate.rules> <query.rules>")
	fmt.Println("  simplify <lang> <rules>")
}

func runCmd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rulesynth run <config.toml> <out.rules>")
	}
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	l, err := langreg.Lookup(cfg.Language)
	if err != nil {
		return err
	}
	v, err := buildValidator(*cfg, l)
	if err != nil {
		return err
	}

	s := synth.New(l, v, synth.Config{
		Seed:        cfg.Seed,
		Iterations:  1,
		NumSamples:  cfg.NSamples,
		NodeLimit:   cfg.NodeLimit,
		IterCap:     cfg.IterLimit,
		UseFastCvec: cfg.UseFastCvec,
	})

	for depth := 1; depth <= cfg.Iterations; depth++ {
		w := buildWorkload(l, cfg.Variables, depth)
		if _, err := s.Run(context.Background(), w); err != nil {
			return fmt.Errorf("run: depth %d: %w", depth, err)
		}
		color.Cyan("layer %d: %s rules accepted so far", depth, humanize.Comma(int64(s.Accepted().Len())))
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("run: opening %q: %w", args[1], err)
	}
	defer out.Close()
	if err := ruleio.Write(out, s.Accepted()); err != nil {
		return err
	}
	color.Green("wrote %s rules to %s", humanize.Comma(int64(s.Accepted().Len())), args[1])
	return nil
}

func deriveCmd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rulesynth derive <candidate.rules> <query.rules>")
	}
	candidate, err := loadRuleFile(args[0])
	if err != nil {
		return err
	}
	query, err := loadRuleFile(args[1])
	if err != nil {
		return err
	}

	limits := egraph.Limits{IterCap: 30, NodeCap: 10_000}
	derivable, underivable := candidate.Derive(rule.DeriveLhsAndRhs, query, limits)

	fmt.Printf("Using %s (%d) to derive %s (%d).\n", args[0], candidate.Len(), args[1], query.Len())
	fmt.Printf("Can derive %d, cannot derive %d. Missing:\n", derivable.Len(), underivable.Len())
	fmt.Println(underivable.PrettyPrint())
	return nil
}

func simplifyCmd(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rulesynth simplify <lang> <rules>")
	}
	l, err := langreg.Lookup(args[0])
	if err != nil {
		return err
	}
	rules, err := loadRuleFile(args[1])
	if err != nil {
		return err
	}

	replay.Start(bufio.NewReader(os.Stdin), os.Stdout, rules, l.IsVariable, replay.Config{NodeLimit: 10_000, IterCap: 30})
	return nil
}

func loadRuleFile(path string) (*rule.Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	return ruleio.Read(f, anyAtomIsVariable)
}

// anyAtomIsVariable classifies every atom that does not start with a digit,
// other than "true" and "false", as a variable (so "-1" reads back as a
// variable); rule files store already-generalized patterns, so "?"-prefixed
// atoms are always pattern variables regardless (term.FromSexp's rule),
// and this only decides how bare atoms that slipped through ungeneralized
// are read back.
func anyAtomIsVariable(atom string) bool {
	return len(atom) > 0 && (atom[0] < '0' || atom[0] > '9') && atom != "true" && atom != "false"
}

func buildValidator(cfg config.SynthRunConfig, l lang.Language) (validate.Validator, error) {
	switch cfg.Validator {
	case config.ValidatorFuzz:
		rng := rand.New(rand.NewSource(cfg.Seed))
		return validate.FuzzValidator{Rng: rng, NumSamples: cfg.FuzzSamples}, nil
	case config.ValidatorOracle:
		if sort, ok := typeTags.SortOf(l.Name()); ok && sort != lang.SortBool {
			return nil, fmt.Errorf("oracle validator requires a boolean-sorted language, %q is %s", l.Name(), sort)
		}
		return validate.OracleValidator{}, nil
	default:
		return nil, fmt.Errorf("unknown validator %q", cfg.Validator)
	}
}

// typeTags is the process-wide sort registry used to gate which validators
// a language may run under (internal/lang/typetag.go).
var typeTags = lang.DefaultTypeTags()

// buildWorkload constructs the population of ground terms at a given
// nesting depth: every built-in operator applied to a placeholder atom,
// plugged recursively depth times with the base variables and constants,
// per spec.md §4.7's per-iteration layer widening.
func buildWorkload(l lang.Language, numVars, depth int) workload.Workload {
	const placeholder = "rulesynth_layer"

	atoms := make([]sexp.Sexp, 0, numVars+len(l.Constants()))
	for _, name := range variableNames(l.Name(), numVars) {
		atoms = append(atoms, sexp.Sexp{Atom: name})
	}
	for _, c := range l.Constants() {
		atoms = append(atoms, sexp.Sexp{Atom: c})
	}
	base := workload.Set(atoms...)

	shapes := make([]sexp.Sexp, 0, len(l.Ops()))
	for _, op := range l.Ops() {
		list := make([]sexp.Sexp, 0, op.Arity+1)
		list = append(list, sexp.Sexp{Atom: op.Symbol})
		for i := 0; i < op.Arity; i++ {
			list = append(list, sexp.Sexp{Atom: placeholder})
		}
		shapes = append(shapes, sexp.Sexp{List: list})
	}

	return workload.Append(base, workload.Set(shapes...)).Iter(placeholder, depth)
}

// variableNames produces per-language-conformant variable atoms: pred
// requires an "i_" prefix (internal/lang/pred.Language.IsVariable), the
// other two languages accept any bare identifier.
func variableNames(langName string, n int) []string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	names := make([]string, n)
	for i := 0; i < n; i++ {
		letter := string(letters[i%len(letters)])
		if langName == "pred" {
			names[i] = "i_" + letter
		} else {
			names[i] = letter
		}
	}
	return names
}
