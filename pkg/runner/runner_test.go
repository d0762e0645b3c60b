package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/pkg/config"
	"github.com/yaklabco/tomlorder/pkg/pipeline"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

const (
	sorted   = "[a]\nx = 1\n\n[b]\ny = 2\n"
	unsorted = "[b]\ny = 2\n\n[a]\nx = 1\n"
)

func newRunner() *runner.Runner {
	return runner.New(pipeline.New(log.New(&bytes.Buffer{})))
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.TableOrder = []string{"a", "b"}
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"one.toml":     unsorted,
		"two.toml":     sorted,
		"sub/3.toml":   unsorted,
		"bad.toml":     "[a\n",
		"notes.txt":    unsorted,
		".venv/x.toml": unsorted,
	})

	opts := runner.OptionsFromConfig(testConfig(), nil, dir)
	opts.Jobs = 2

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  3,
		FilesChanged:    2,
		FilesWritten:    2,
		FilesErrored:    1,
	}, result.Stats)
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasChanges())

	require.Len(t, result.Files, 4)
	assert.Equal(t, []string{"bad.toml", "one.toml", "sub/3.toml", "two.toml"}, relAll(t, dir, outcomePaths(result)))
	assert.ErrorIs(t, result.Files[0].Error, pipeline.ErrParseFailure)

	for _, name := range []string{"one.toml", "sub/3.toml", "two.toml"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, sorted, string(got), name)
	}
}

func TestRun_Check(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"one.toml": unsorted})

	cfg := testConfig()
	cfg.Check = true

	result, err := newRunner().Run(context.Background(), runner.OptionsFromConfig(cfg, nil, dir))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Zero(t, result.Stats.FilesWritten)
	require.NotNil(t, result.Files[0].Result.Diff)

	got, err := os.ReadFile(filepath.Join(dir, "one.toml"))
	require.NoError(t, err)
	assert.Equal(t, unsorted, string(got))
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasChanges())
	assert.False(t, result.HasErrors())
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"x"}, "/work")
	assert.Equal(t, []string{"x"}, opts.Paths)
	assert.Equal(t, "/work", opts.WorkingDir)
	assert.Equal(t, []string{"*.toml"}, opts.IncludeGlobs)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Same(t, cfg, opts.Config)
}

func outcomePaths(result *runner.Result) []string {
	paths := make([]string, len(result.Files))
	for idx, outcome := range result.Files {
		paths[idx] = outcome.Path
	}
	return paths
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	result := runner.NewResult(
		runner.FileOutcome{Path: "a", Result: &pipeline.Result{Modified: true}},
		runner.FileOutcome{Path: "b", Result: &pipeline.Result{}},
		runner.FileOutcome{Path: "c", Error: assert.AnError},
	)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 3,
		FilesProcessed:  2,
		FilesChanged:    1,
		FilesErrored:    1,
	}, result.Stats)
	assert.Len(t, result.Files, 3)
}
