package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/tomlorder/pkg/langdetect"
)

// Discover finds TOML files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Files named explicitly in opts.Paths are taken as they are unless an
// exclude pattern matches; extensions and include patterns only filter
// directory walks.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(found ...string) {
		for _, file := range found {
			if _, ok := seen[file]; !ok {
				seen[file] = struct{}{}
				files = append(files, file)
			}
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, filter, opts.FollowSymlinks)
			if err != nil {
				return nil, err
			}
			add(discovered...)
		} else if !filter.excluded(absPath, false) {
			add(absPath)
		}
	}

	slices.Sort(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching TOML files.
func walkDirectory(ctx context.Context, root string, filter *pathFilter, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			// Hidden directories (.git, .venv, ...) are never searched.
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && filter.excluded(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target: WalkDir uses Lstat on its root.
				subFiles, err := walkDirectory(ctx, realPath, filter, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if filter.matches(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// pathFilter holds the compiled discovery patterns.
type pathFilter struct {
	workDir     string
	extensions  []string
	include     []glob.Glob
	exclude     []glob.Glob
	detectNames bool
}

func newFilter(workDir string, opts Options) (*pathFilter, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}
	return &pathFilter{
		workDir:     workDir,
		extensions:  opts.effectiveExtensions(),
		include:     include,
		exclude:     exclude,
		detectNames: opts.DetectFilenames,
	}, nil
}

// compileGlobs compiles patterns with '/' as the separator, so '*' stays
// within one path component and '**' crosses components.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", pattern, err)
		}
		globs = append(globs, compiled)
	}
	return globs, nil
}

// rel returns path relative to the working directory in slash form.
func (f *pathFilter) rel(path string) string {
	relPath, err := filepath.Rel(f.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// matches checks if a walked file matches the inclusion criteria.
func (f *pathFilter) matches(path string) bool {
	if f.excluded(path, false) {
		return false
	}
	if f.detectNames && langdetect.IsTOML(path) {
		return true
	}
	if !hasMatchingExtension(path, f.extensions) {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	return matchAny(f.include, f.rel(path))
}

// excluded reports whether path matches an exclude pattern. A directory
// also matches "dir/**" style patterns through its trailing slash.
func (f *pathFilter) excluded(path string, isDir bool) bool {
	relPath := f.rel(path)
	if matchAny(f.exclude, relPath) {
		return true
	}
	return isDir && matchAny(f.exclude, relPath+"/")
}

// matchAny reports whether relPath, or its base name, matches any glob.
func matchAny(globs []glob.Glob, relPath string) bool {
	base := path.Base(strings.TrimSuffix(relPath, "/"))
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
