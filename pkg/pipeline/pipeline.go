// Package pipeline runs the per-file safety pipeline: read, reorder,
// verify, and write back atomically.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/tomlorder/pkg/config"
	"github.com/yaklabco/tomlorder/pkg/diff"
	"github.com/yaklabco/tomlorder/pkg/fsutil"
	"github.com/yaklabco/tomlorder/pkg/verify"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the file is not valid TOML.
	ErrParseFailure = errors.New("parse failure")

	// ErrReorderFailure indicates the tree could not be rewritten.
	ErrReorderFailure = errors.New("reorder failure")

	// ErrVerifyFailure indicates the rewritten file decodes differently.
	ErrVerifyFailure = errors.New("verification failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Status is the outcome of a file in a single word or two.
type Status string

const (
	StatusReordered    Status = "reordered"
	StatusWouldReorder Status = "would reorder"
	StatusUnchanged    Status = "unchanged"
	StatusSkipped      Status = "skipped"
)

// Result contains the result of processing a single file through the pipeline.
type Result struct {
	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing. Nil for in-memory content.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if reordering changed the content.
	Modified bool

	// ModifiedContent is the reordered content (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff in check and dry-run mode, or when requested.
	Diff *diff.Diff

	// Skipped is true if the file was left alone (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Status classifies the result.
func (r *Result) Status() Status {
	switch {
	case r.Skipped:
		return StatusSkipped
	case r.Written:
		return StatusReordered
	case r.Modified:
		return StatusWouldReorder
	default:
		return StatusUnchanged
	}
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	switch r.Status() {
	case StatusSkipped:
		return "skipped: " + r.SkipReason
	case StatusReordered:
		if r.BackupCreated {
			return "reordered (backup created)"
		}
		return string(StatusReordered)
	default:
		return string(r.Status())
	}
}

// Options controls pipeline behavior.
type Options struct {
	// Check reports what would change and writes nothing.
	Check bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Verify decodes both versions and fails on any semantic difference.
	Verify bool

	// Backup writes a sidecar copy before the first rewrite.
	Backup bool

	// Strict fails on entries without a key instead of warning.
	Strict bool

	// Diff generates a diff for files that are written, too.
	Diff bool
}

// readOnly reports whether the pipeline must not write.
func (o Options) readOnly() bool {
	return o.Check || o.DryRun
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{Verify: true}
}

// OptionsFromConfig creates Options from config.Config.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		Check:  cfg.Check,
		DryRun: cfg.DryRun,
		Verify: cfg.VerifyEnabled(),
		Backup: cfg.BackupsEnabled(),
		Strict: cfg.Strict,
		Diff:   cfg.Format == config.FormatDiff,
	}
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Logger receives warnings about malformed entries. Nil uses log.Default().
	Logger *log.Logger
}

// New creates a pipeline that logs to logger.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{Logger: logger}
}

func (p *Pipeline) logger() *log.Logger {
	if p == nil || p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Rewrite and verify the content in memory.
//  3. Generate a diff (check and dry-run mode) and stop.
//  4. Check for concurrent modifications.
//  5. Create a backup (if enabled).
//  6. Write the reordered content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts Options,
) (*Result, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.readOnly() {
		return result, nil
	}

	changed, err := info.Changed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	p.logger().Debug("file reordered", "path", path, "backup", result.BackupCreated)
	return result, nil
}

// ProcessContent processes in-memory content without file I/O.
// Nothing is written.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts Options,
) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	if cfg == nil {
		cfg = config.NewConfig()
	}

	result := &Result{Path: path}

	content, err := Rewrite(original, cfg, opts.Strict, p.logger().With("path", path))
	if err != nil {
		return nil, err
	}
	if string(content) == string(original) {
		return result, nil
	}

	if opts.Verify {
		if err := verify.Equivalent(original, content); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrVerifyFailure, err)
		}
	}

	result.Modified = true
	result.ModifiedContent = content

	if opts.readOnly() || opts.Diff {
		result.Diff = diff.Generate(path, original, content)
	}
	return result, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrReorderFailure) ||
		errors.Is(err, ErrVerifyFailure) ||
		errors.Is(err, ErrWriteFailure)
}
