package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/tomlorder/pkg/config"
)

// envVarPrefix is the prefix for all tomlorder environment variables.
const envVarPrefix = "TOMLORDER_"

// envVar binds one environment variable to the config field it sets.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars lists the supported variables, without prefix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"TABLE_ORDER", "Comma-separated table priority list", func(cfg *config.Config, v string) error {
		cfg.TableOrder = parseSliceValue(v)
		return nil
	}},
	{"INCLUDE", "Comma-separated list of include patterns", func(cfg *config.Config, v string) error {
		cfg.Include = parseSliceValue(v)
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	{"DETECT_FILENAMES", "Also select files named like TOML (Pipfile): true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.DetectFilenames = b
	})},
	{"STRICT", "Fail on malformed entries: true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.Strict = b
	})},
	{"VERIFY", "Check rewrites for semantic changes: true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.Verify = config.Bool(b)
	})},
	{"BACKUPS_ENABLED", "Write .tomlorder.bak backups: true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.Backups.Enabled = config.Bool(b)
	})},
	{"CHECK", "Report files that would change: true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.Check = b
	})},
	{"DRY_RUN", "Dry-run mode: true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.DryRun = b
	})},
	{"NO_BACKUPS", "Disable backups: true or false", boolField(func(cfg *config.Config, b bool) {
		cfg.NoBackups = b
	})},
	{"FORMAT", "Output format: text, json, or diff", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = jobs
		return nil
	}},
}

func boolField(set func(cfg *config.Config, b bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with TOMLORDER_ (e.g., TOMLORDER_STRICT).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, variable := range envVars {
		name := envVarPrefix + variable.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := variable.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace and empty elements are dropped.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, variable := range envVars {
		out = append(out, [2]string{envVarPrefix + variable.suffix, variable.description})
	}
	slices.SortFunc(out, func(a, b [2]string) int {
		return strings.Compare(a[0], b[0])
	})
	return out
}
