package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/pkg/diff"
	"github.com/yaklabco/tomlorder/pkg/pipeline"
	"github.com/yaklabco/tomlorder/pkg/reporter"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

var workDir = filepath.Join(string(filepath.Separator), "work")

// sampleResult mirrors a dry run over four files.
func sampleResult() *runner.Result {
	abs := func(name string) string { return filepath.Join(workDir, name) }

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: abs("bad.toml"), Error: errors.New("parse failure: line 1")},
			{Path: abs("moved.toml"), Result: &pipeline.Result{
				Path:     abs("moved.toml"),
				Modified: true,
				Diff:     diff.Generate(abs("moved.toml"), []byte("[b]\n\n[a]\n"), []byte("[a]\n\n[b]\n")),
			}},
			{Path: abs("same.toml"), Result: &pipeline.Result{Path: abs("same.toml")}},
			{Path: abs("raced.toml"), Result: &pipeline.Result{
				Path:       abs("raced.toml"),
				Modified:   true,
				Skipped:    true,
				SkipReason: "file modified during processing",
			}},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  3,
			FilesChanged:    1,
			FilesSkipped:    1,
			FilesErrored:    1,
		},
	}
}

func newReporter(t *testing.T, format reporter.Format, buf *bytes.Buffer, mutate ...func(*reporter.Options)) reporter.Reporter {
	t.Helper()

	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	opts.WorkingDir = workDir
	for _, fn := range mutate {
		fn(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "diff", want: reporter.FormatDiff},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	assert.False(t, reporter.Format("table").IsValid())
}

func TestNew_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	assert.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "bad.toml: error: parse failure: line 1\n" +
		"moved.toml: would reorder (+2 -2)\n" +
		"raced.toml: skipped: file modified during processing\n" +
		"4 files checked: 1 would be reordered, 1 unchanged, 1 skipped, 1 error\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := newReporter(t, reporter.FormatText, &buf, func(o *reporter.Options) {
		o.Verbose = true
		o.ShowSummary = false
	})
	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "same.toml: unchanged\n")
	assert.NotContains(t, buf.String(), "checked")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No TOML files found.\n", buf.String())
}

func TestTextReporter_Written(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:   filepath.Join(workDir, "a.toml"),
			Result: &pipeline.Result{Modified: true, Written: true, BackupCreated: true},
		}},
		Stats: runner.Stats{FilesDiscovered: 1, FilesProcessed: 1, FilesChanged: 1, FilesWritten: 1},
	}

	var buf bytes.Buffer
	_, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "a.toml: reordered (backup created)\n1 file checked: 1 reordered\n", buf.String())
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatDiff, &buf).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "bad.toml: error: parse failure: line 1\n")
	assert.Contains(t, out, "diff --git a/moved.toml b/moved.toml\n--- a/moved.toml\n+++ b/moved.toml\n@@ ")
	assert.Contains(t, out, "1 file changed, 2 insertions(+), 2 deletions(-)\n")
	assert.NotContains(t, out, "raced.toml")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, reporter.FormatJSON, &buf).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 4)
	assert.Equal(t, "error", output.Files[0].Status)
	assert.Equal(t, "bad.toml", output.Files[0].Path)
	assert.Equal(t, "would reorder", output.Files[1].Status)
	assert.True(t, output.Files[1].Changed)
	assert.Contains(t, output.Files[1].Diff, "--- a/moved.toml\n")
	assert.Equal(t, "unchanged", output.Files[2].Status)
	assert.Equal(t, "skipped", output.Files[3].Status)
	assert.Equal(t, reporter.JSONSummary{
		FilesChecked: 4, FilesChanged: 1, FilesSkipped: 1, FilesErrored: 1,
	}, output.Summary)
}

func TestJSONReporter_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := newReporter(t, reporter.FormatJSON, &buf, func(o *reporter.Options) { o.Compact = true })
	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","files":[],"summary":{"filesChecked":0,"filesChanged":0,"filesWritten":0,"filesSkipped":0,"filesErrored":0}}`, buf.String())
}
