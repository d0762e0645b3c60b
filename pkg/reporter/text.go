package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/tomlorder/internal/ui/pretty"
	"github.com/yaklabco/tomlorder/pkg/pipeline"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

// TextReporter formats results as styled terminal output, one line per file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No TOML files found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.summary(result.Stats))
	}

	return result.Stats.FilesChanged, nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := r.styles.FilePath.Render(r.opts.displayPath(file.Path))

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		return
	}
	if file.Result == nil {
		return
	}

	status := file.Result.Status()
	if status == pipeline.StatusUnchanged && !r.opts.Verbose {
		return
	}

	line := fmt.Sprintf("%s: %s", path, r.statusStyle(status).Render(file.Result.Summary()))
	if file.Result.Diff != nil {
		line += " " + r.styles.Detail.Render("("+file.Result.Diff.Stat()+")")
	}
	fmt.Fprintln(r.bw, line)
}

func (r *TextReporter) statusStyle(status pipeline.Status) lipgloss.Style {
	switch status {
	case pipeline.StatusReordered:
		return r.styles.Reordered
	case pipeline.StatusWouldReorder:
		return r.styles.WouldReorder
	case pipeline.StatusSkipped:
		return r.styles.Skipped
	default:
		return r.styles.Unchanged
	}
}

// summary renders a one-line summary such as
// "3 files checked: 1 reordered, 1 unchanged, 1 error".
func (r *TextReporter) summary(stats runner.Stats) string {
	unchanged := stats.FilesProcessed - stats.FilesChanged - stats.FilesSkipped

	var parts []string
	if stats.FilesChanged > 0 {
		verb := "reordered"
		if r.opts.Check || stats.FilesWritten < stats.FilesChanged {
			verb = "would be reordered"
		}
		parts = append(parts, r.styles.WouldReorder.Render(fmt.Sprintf("%d %s", stats.FilesChanged, verb)))
	}
	if unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, r.styles.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, r.styles.Failure.Render(plural(stats.FilesErrored, "error", "errors")))
	}

	title := r.styles.SummaryTitle.Render(plural(stats.FilesDiscovered, "file", "files") + " checked")
	return title + ": " + strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
