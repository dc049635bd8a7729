// Package replay SPDX-License-Identifier: Apache-2.0
//
// Package replay implements the interactive simplification loop for
// cmd/rulesynth's "simplify" subcommand: read one expression per line,
// saturate it under an accepted ruleset, and print the cheapest extracted
// form. Grounded on _examples/kanso-lang-kanso/repl/repl.go's
// bufio.Scanner-driven Start(io.Reader) loop and
// _examples/original_source/src/main.rs's `loop { ... Runner::run(rules)
// ... Extractor::new(AstSize).find_best(...) }`.
package replay

import (
	"bufio"
	"fmt"
	"io"

	"rulesynth/internal/egraph"
	"rulesynth/internal/errors"
	"rulesynth/internal/rule"
	"rulesynth/internal/sexp"
	"rulesynth/internal/term"
)

const prompt = "Input expression: "

// Config bounds the e-graph built for each line.
type Config struct {
	NodeLimit int
	IterCap   int
}

// Start runs the read-simplify-print loop: one line of in is one
// S-expression, simplified under rules and written to out. Parse failures
// are reported as diagnostics to out and do not stop the loop, matching
// ruleio's tolerant-skip convention rather than aborting the whole session
// over one bad line.
func Start(in io.Reader, out io.Writer, rules *rule.Ruleset, classify term.Classify, cfg Config) {
	scanner := bufio.NewScanner(in)
	sched := egraph.NewSaturatingScheduler(egraph.Limits{IterCap: cfg.IterCap, NodeCap: cfg.NodeLimit})

	fmt.Fprintln(out, "Entering simplification loop...")
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		result, err := Simplify(line, rules, classify, sched)
		if err != nil {
			reporter := errors.NewErrorReporter("stdin", line)
			diag := errors.NewDiagnostic(errors.ErrorMalformedSexp, err.Error(), sexp.Position{Filename: "stdin", Line: 1, Column: 1}).
				WithLength(len(line)).Build()
			fmt.Fprint(out, reporter.FormatError(diag))
			continue
		}
		fmt.Fprintf(out, "Simplified result: %s\n\n", result)
	}
}

// Simplify parses one expression, builds a single-root e-graph, runs sched
// with rules to a fixpoint (or IterCap rounds), and extracts the
// minimum-AstSize term from the root's class.
func Simplify(line string, rules *rule.Ruleset, classify term.Classify, sched egraph.Scheduler) (string, error) {
	parsed, err := sexp.ParseOne("stdin", line)
	if err != nil {
		return "", fmt.Errorf("parsing expression: %w", err)
	}
	t := term.FromSexp(parsed, classify)

	g := egraph.New(sched.Limits.NodeCap)
	root, err := egraph.AddTerm(g, t)
	if err != nil {
		return "", fmt.Errorf("seeding e-graph: %w", err)
	}

	g = sched.Run(g, rules.AsEgraphRules())

	best, _, ok := egraph.Extract(g, g.Find(root), egraph.AstSizeCost)
	if !ok {
		return "", fmt.Errorf("no extractable term for root class")
	}
	return best.String(), nil
}
