// Package runner provides multi-file reordering orchestration.
package runner

import "github.com/yaklabco/tomlorder/pkg/config"

// Options controls multi-file processing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered TOML. Defaults to [".toml"] via DefaultExtensions().
	Extensions []string

	// IncludeGlobs select files during directory walks, relative to WorkingDir.
	// A pattern without a slash also matches against the base name.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// DetectFilenames also selects walked files that go-enry recognises as
	// TOML by name, regardless of Extensions and IncludeGlobs.
	DetectFilenames bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of TOML file extensions.
func DefaultExtensions() []string {
	return []string{".toml"}
}

// OptionsFromConfig fills the discovery and job settings from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	opts := Options{
		Paths:      paths,
		WorkingDir: workDir,
		Config:     cfg,
	}
	if cfg != nil {
		opts.IncludeGlobs = cfg.Include
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
		opts.DetectFilenames = cfg.DetectFilenames
	}
	return opts
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
