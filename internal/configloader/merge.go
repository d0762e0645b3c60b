package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/tomlorder/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil, so false can be set
//   - Maps: merged per key, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Plain booleans can only be switched on by a higher layer.
	result.Strict = result.Strict || override.Strict
	result.DetectFilenames = result.DetectFilenames || override.DetectFilenames
	result.Check = result.Check || override.Check
	result.DryRun = result.DryRun || override.DryRun
	result.NoBackups = result.NoBackups || override.NoBackups
	result.NoVerify = result.NoVerify || override.NoVerify

	if override.Verify != nil {
		result.Verify = override.Verify
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.TableOrder != nil {
		result.TableOrder = slices.Clone(override.TableOrder)
	}
	if override.Include != nil {
		result.Include = slices.Clone(override.Include)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	result.KeyOrder = mergeKeyOrder(base.KeyOrder, override.KeyOrder)

	return &result
}

// mergeKeyOrder merges per-table key orders. A table present in override
// replaces that table's list in base.
func mergeKeyOrder(base, override map[string][]string) map[string][]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string][]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
