// Package config SPDX-License-Identifier: Apache-2.0
//
// Package config loads a SynthRunConfig from TOML, covering spec.md §6.4's
// configuration enumeration (seed, iter_limit, node_limit, variables,
// n_samples, constants, derive_type, validator). Grounded on
// _examples/hashicorp-nomad's agent config loading: BurntSushi/toml for the
// file format, go-homedir for expanding "~/.rulesynth/..." default paths,
// mapstructure for decoding the free-form constants table into typed
// per-language lists, and go-multierror for aggregating every validation
// failure into one reported error instead of stopping at the first.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
)

// DeriveType selects how a derivation check seeds its e-graph (spec.md §6.4).
type DeriveType string

const (
	DeriveLhs       DeriveType = "lhs"
	DeriveLhsAndRhs DeriveType = "lhs_and_rhs"
)

// ValidatorKind selects which validate.Validator backs a run.
type ValidatorKind string

const (
	ValidatorFuzz   ValidatorKind = "fuzz"
	ValidatorOracle ValidatorKind = "oracle"
)

// SynthRunConfig is the decoded form of a run's TOML config file.
type SynthRunConfig struct {
	Seed        int64         `toml:"seed" mapstructure:"seed"`
	IterLimit   int           `toml:"iter_limit" mapstructure:"iter_limit"`
	NodeLimit   int           `toml:"node_limit" mapstructure:"node_limit"`
	Variables   int           `toml:"variables" mapstructure:"variables"`
	NSamples    int           `toml:"n_samples" mapstructure:"n_samples"`
	Iterations  int           `toml:"iterations" mapstructure:"iterations"`
	Language    string        `toml:"language" mapstructure:"language"`
	DeriveType  DeriveType    `toml:"derive_type" mapstructure:"derive_type"`
	Validator   ValidatorKind `toml:"validator" mapstructure:"validator"`
	FuzzSamples int           `toml:"fuzz_samples" mapstructure:"fuzz_samples"`
	UseFastCvec bool          `toml:"use_fast_cvec" mapstructure:"use_fast_cvec"`
	RulesetPath string        `toml:"ruleset_path" mapstructure:"ruleset_path"`
	PriorPath   string        `toml:"prior_path" mapstructure:"prior_path"`

	// Constants maps a language name to literal constants (rendered as
	// their surface-syntax strings). It is decoded and stored only: the run
	// command seeds workloads from the language's own Constants() and does
	// not read this field.
	Constants map[string][]string `toml:"constants" mapstructure:"constants"`
}

// Default returns a config with the same defaults every language module's
// own Sample/Constants would otherwise hardcode: one variable-count and
// node-budget floor sane enough to run without a file at all.
func Default() *SynthRunConfig {
	return &SynthRunConfig{
		Seed:        0,
		IterLimit:   30,
		NodeLimit:   10_000,
		Variables:   3,
		NSamples:    10,
		Iterations:  2,
		DeriveType:  DeriveLhs,
		Validator:   ValidatorFuzz,
		FuzzSamples: 25,
		RulesetPath: "~/.rulesynth/ruleset.txt",
	}
}

// Load reads path (expanding a leading "~") as TOML into a SynthRunConfig
// seeded with Default()'s values, then validates the result.
func Load(path string) (*SynthRunConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: expanding path %q: %w", path, err)
	}

	var raw map[string]interface{}
	if _, err := toml.DecodeFile(expanded, &raw); err != nil {
		return nil, fmt.Errorf("config: decoding %q: %w", expanded, err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("config: building decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("config: decoding %q into SynthRunConfig: %w", expanded, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate aggregates every field-level problem into a single error rather
// than reporting only the first, mirroring nomad's agent config validation
// style of collecting a *multierror.Error across many independent checks.
func (c *SynthRunConfig) Validate() error {
	var result *multierror.Error

	if c.IterLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("iter_limit must be positive, got %d", c.IterLimit))
	}
	if c.NodeLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("node_limit must be positive, got %d", c.NodeLimit))
	}
	if c.Variables <= 0 {
		result = multierror.Append(result, fmt.Errorf("variables must be positive, got %d", c.Variables))
	}
	if c.NSamples <= 0 {
		result = multierror.Append(result, fmt.Errorf("n_samples must be positive, got %d", c.NSamples))
	}
	if c.Iterations <= 0 {
		result = multierror.Append(result, fmt.Errorf("iterations must be positive, got %d", c.Iterations))
	}
	switch c.DeriveType {
	case DeriveLhs, DeriveLhsAndRhs:
	default:
		result = multierror.Append(result, fmt.Errorf("derive_type must be %q or %q, got %q", DeriveLhs, DeriveLhsAndRhs, c.DeriveType))
	}
	switch c.Validator {
	case ValidatorFuzz, ValidatorOracle:
	default:
		result = multierror.Append(result, fmt.Errorf("validator must be %q or %q, got %q", ValidatorFuzz, ValidatorOracle, c.Validator))
	}
	if c.Validator == ValidatorFuzz && c.FuzzSamples <= 0 {
		result = multierror.Append(result, fmt.Errorf("fuzz_samples must be positive when validator is %q, got %d", ValidatorFuzz, c.FuzzSamples))
	}

	return result.ErrorOrNil()
}

// DefaultRulesetPath expands c's RulesetPath, falling back to
// "~/.rulesynth/ruleset.txt" if unset.
func (c *SynthRunConfig) DefaultRulesetPath() (string, error) {
	path := c.RulesetPath
	if path == "" {
		path = "~/.rulesynth/ruleset.txt"
	}
	return homedir.Expand(path)
}
