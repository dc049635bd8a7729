// Package ruleio SPDX-License-Identifier: Apache-2.0
//
// Package ruleio reads and writes rule files per spec.md §6.3: one rule
// per non-blank line, "lhs => rhs" or "lhs <=> rhs", grounded on
// original_source/src/enumo/ruleset.rs's to_file/from_file. Malformed
// lines are skipped with a logged warning rather than aborting the whole
// read, matching from_file's `if let Ok(...)` tolerance.
package ruleio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	rsynerrors "rulesynth/internal/errors"
	"rulesynth/internal/rule"
	"rulesynth/internal/sexp"
	"rulesynth/internal/term"
)

var log = commonlog.GetLogger("rulesynth.ruleio")

// Read parses every rule line from r, using classify to tell the term
// parser which bare atoms are variables vs. constants. Lines that fail to
// parse are logged and skipped rather than treated as a hard error.
func Read(r io.Reader, classify term.Classify) (*rule.Ruleset, error) {
	rs := rule.NewRuleset()
	var rawLines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rawLines = append(rawLines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return rs, fmt.Errorf("ruleio: reading rules: %w", err)
	}

	reporter := rsynerrors.NewErrorReporter("rules", strings.Join(rawLines, "\n"))
	for i, raw := range rawLines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		parsed, err := parseLine(line, classify)
		if err != nil {
			pos := sexp.Position{Filename: "rules", Line: i + 1, Column: 1}
			diag := rsynerrors.NewDiagnosticWarning(rsynerrors.WarningSkippedRuleLine, err.Error(), pos).
				WithLength(len(line)).
				WithHelp("use \"lhs => rhs\" or \"lhs <=> rhs\"").
				Build()
			log.Warningf("%s", reporter.FormatError(diag))
			continue
		}
		rs.Add(parsed)
	}
	return rs, nil
}

func parseLine(line string, classify term.Classify) (*rule.Rule, error) {
	bidir := strings.Contains(line, "<=>")
	sep := "=>"
	if bidir {
		sep = "<=>"
	}
	parts := strings.SplitN(line, sep, 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("missing %q separator", sep)
	}
	lhsSexp, err := sexp.ParseOne("rule", strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("parsing lhs: %w", err)
	}
	rhsSexp, err := sexp.ParseOne("rule", strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("parsing rhs: %w", err)
	}
	lhs := term.FromSexp(lhsSexp, classify)
	rhs := term.FromSexp(rhsSexp, classify)
	if bidir {
		return rule.NewBidirectional(lhs, rhs), nil
	}
	return rule.New(lhs, rhs), nil
}

// Write emits rs to w, one rule per line in insertion order, using "<=>"
// for bidirectional rules and "=>" otherwise.
func Write(w io.Writer, rs *rule.Ruleset) error {
	bw := bufio.NewWriter(w)
	for _, r := range rs.Rules() {
		sep := "=>"
		if r.Bidirectional {
			sep = "<=>"
		}
		if _, err := fmt.Fprintf(bw, "%s %s %s\n", r.LHSPat.String(), sep, r.RHSPat.String()); err != nil {
			return fmt.Errorf("ruleio: writing rule %q: %w", r.NameStr, err)
		}
	}
	return bw.Flush()
}
