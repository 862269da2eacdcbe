// Package config loads the optional YAML config file and converts it into
// aggregation tuning. The file is validated against an embedded CUE schema
// before unmarshal, so a typoed key or an out-of-range value fails with a
// position-carrying error instead of silently falling back to a default.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/screenday/screenday/internal/aggregate"
)

//go:embed schema.cue
var schemaCUE []byte

// fileConfig mirrors the YAML shape. Pointer fields distinguish "absent"
// from zero values.
type fileConfig struct {
	MergeGapMS            *int64  `yaml:"merge_gap_ms"`
	ActiveWindowMS        *int64  `yaml:"active_window_ms"`
	OpenDebounceMS        *int64  `yaml:"open_debounce_ms"`
	MinSignificantUsageMS *int64  `yaml:"min_significant_usage_ms"`
	HostPackage           *string `yaml:"host_package"`
	ShellPackage          *string `yaml:"shell_package"`
	CountFilteredUnlocks  *bool   `yaml:"count_filtered_unlocks"`
}

// Load reads and validates a config file and applies it over the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (aggregate.Config, error) {
	cfg := aggregate.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := validate(path, data); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.MergeGapMS != nil {
		cfg.MergeGap = time.Duration(*fc.MergeGapMS) * time.Millisecond
	}
	if fc.ActiveWindowMS != nil {
		cfg.ActiveWindow = time.Duration(*fc.ActiveWindowMS) * time.Millisecond
	}
	if fc.OpenDebounceMS != nil {
		cfg.OpenDebounce = time.Duration(*fc.OpenDebounceMS) * time.Millisecond
	}
	if fc.MinSignificantUsageMS != nil {
		cfg.MinSignificantUsage = time.Duration(*fc.MinSignificantUsageMS) * time.Millisecond
	}
	if fc.HostPackage != nil {
		cfg.HostPackage = *fc.HostPackage
	}
	if fc.ShellPackage != nil {
		cfg.ShellPackage = *fc.ShellPackage
	}
	if fc.CountFilteredUnlocks != nil {
		cfg.UnlockIgnoresFilter = *fc.CountFilteredUnlocks
	}

	return cfg, nil
}

// validate unifies the YAML document with the #Config schema.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
func validate(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Config: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return err
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return err
	}

	return def.Unify(doc).Validate(cue.Concrete(false))
}
