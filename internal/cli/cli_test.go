package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/internal/cli"
	"github.com/yaklabco/tomlorder/pkg/pipeline"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)
	assert.Equal(t, "tomlorder", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, path := range [][]string{
		{"fmt"}, {"restore"}, {"init"}, {"version"},
		{"config", "show"}, {"config", "paths"}, {"config", "env"},
	} {
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err, "subcommand %v", path)
		assert.Equal(t, path[len(path)-1], subCmd.Name())
	}
}

func TestFmtCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	require.NoError(t, err)

	for _, name := range []string{
		"check", "dry-run", "format", "jobs", "ignore", "order", "backup",
		"no-backups", "strict", "detect-filenames", "no-verify", "verbose", "compact",
	} {
		assert.NotNil(t, fmtCmd.Flags().Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "v", fmtCmd.Flags().Lookup("verbose").Shorthand)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"changes", cli.ErrChangesFound, cli.ExitChanges},
		{"failed files", cli.ErrFilesFailed, cli.ExitFailure},
		{"config", fmt.Errorf("%w: bad yaml", cli.ErrConfig), cli.ExitConfigError},
		{"write", fmt.Errorf("x.toml: %w", pipeline.ErrWriteFailure), cli.ExitIOError},
		{"permission", pipeline.ErrPermissionDenied, cli.ExitIOError},
		{"not found", pipeline.ErrFileNotFound, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	changed := runner.FileOutcome{Path: "a.toml", Result: &pipeline.Result{Path: "a.toml", Modified: true}}
	clean := runner.FileOutcome{Path: "b.toml", Result: &pipeline.Result{Path: "b.toml"}}
	failed := runner.FileOutcome{Path: "c.toml", Error: pipeline.ErrParseFailure}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(runner.NewResult(clean), true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(runner.NewResult(changed), false))
	assert.Equal(t, cli.ExitChanges, cli.ExitCodeFromResult(runner.NewResult(changed, clean), true))
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeFromResult(runner.NewResult(changed, failed), true),
		"failures win over changes")
}
