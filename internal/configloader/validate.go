package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/tomlorder/pkg/config"
	"github.com/yaklabco/tomlorder/pkg/reorder"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "key_order.project[2]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., entries that can never match).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// WarningMessages returns the warnings as strings.
func (r *ValidationResult) WarningMessages() []string {
	messages := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		messages = append(messages, w.Error())
	}
	return messages
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatDiff: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Check && cfg.DryRun {
		result.Warnings = append(result.Warnings, ValidationError{
			Message: "check and dry-run both set; check wins and no diff is shown",
		})
	}

	validateTableOrder(cfg.TableOrder, result)
	validateKeyOrder(cfg.KeyOrder, result)
	validatePatterns("include", cfg.Include, result)
	validatePatterns("ignore", cfg.Ignore, result)

	return result
}

// validateTableOrder warns about entries that have no effect. An entry is
// matched against group keys, so "tool.ruff.lint" can never match; it is
// ordered by its "tool.ruff" entry instead.
func validateTableOrder(order []string, result *ValidationResult) {
	seen := make(map[string]int, len(order))
	for idx, entry := range order {
		field := fmt.Sprintf("table_order[%d]", idx)

		if first, dup := seen[entry]; dup {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   entry,
				Message: fmt.Sprintf("duplicate entry %q; the one at index %d is used", entry, first),
			})
			continue
		}
		seen[entry] = idx

		if group := reorder.GroupKey(entry); group != entry {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   entry,
				Message: fmt.Sprintf("entry %q never matches; tables under it are ordered by %q", entry, group),
			})
		}
	}
}

func validateKeyOrder(keyOrder map[string][]string, result *ValidationResult) {
	for _, table := range slices.Sorted(maps.Keys(keyOrder)) {
		keys := keyOrder[table]
		seen := make(map[string]bool, len(keys))
		for idx, key := range keys {
			field := fmt.Sprintf("key_order.%s[%d]", table, idx)
			switch {
			case strings.TrimSpace(key) == "":
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   field,
					Message: "empty key never matches",
				})
			case seen[key]:
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   field,
					Value:   key,
					Message: fmt.Sprintf("duplicate key %q", key),
				})
			}
			seen[key] = true
		}
	}
}

// validatePatterns checks that glob patterns compile.
func validatePatterns(field string, patterns []string, result *ValidationResult) {
	for idx, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, idx),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
