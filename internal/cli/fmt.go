package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/tomlorder/internal/logging"
	"github.com/yaklabco/tomlorder/pkg/config"
	"github.com/yaklabco/tomlorder/pkg/fsutil"
	"github.com/yaklabco/tomlorder/pkg/pipeline"
	"github.com/yaklabco/tomlorder/pkg/reporter"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

// stdinPath is the path argument, and display name, for standard input.
const stdinPath = "-"

type fmtFlags struct {
	format  string
	order   []string
	ignore  []string
	backup  bool
	verbose bool
	compact bool
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Reorder tables and keys in TOML files",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, &cfg, flags)
		},
	}

	addFmtFlags(cmd, &cfg, flags)

	return cmd
}

const fmtLongDescription = `Reorder the tables of TOML files, and the keys of configured tables.

By default, processes all .toml files in the current directory and its
subdirectories, skipping hidden directories. Specify paths to process
specific files or directories. With no paths and piped input, or with
the path "-", reads a document from stdin and writes the result to stdout.

Examples:
  tomlorder fmt                         # Reorder files in the current directory
  tomlorder fmt pyproject.toml          # Reorder a single file
  tomlorder fmt --check                 # Exit 1 if any file is out of order
  tomlorder fmt --dry-run --format diff # Show what would change
  tomlorder fmt --order project,tool    # Override the table order
  cat pyproject.toml | tomlorder fmt    # Filter stdin to stdout`

func runFmt(cmd *cobra.Command, args []string, cfg *config.Config, flags *fmtFlags) error {
	logger := logging.Default()

	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("order") {
		cfg.TableOrder = flags.order
	}
	if cmd.Flags().Changed("backup") {
		cfg.Backups.Enabled = config.Bool(flags.backup)
	}
	cfg.Ignore = flags.ignore

	loadResult, workDir, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}
	finalCfg := loadResult.Config

	logger.Debug("configuration loaded",
		logging.FieldCheck, finalCfg.Check,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldStrict, finalCfg.Strict,
		logging.FieldVerify, finalCfg.VerifyEnabled(),
	)

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	reorderPipeline := pipeline.New(logger)

	if readsStdin(cmd, args) {
		return runFmtStdin(cmd, reorderPipeline, finalCfg, format, flags)
	}

	runOpts := runner.OptionsFromConfig(finalCfg, args, workDir)

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(reorderPipeline).Run(commandContext(cmd), runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	if err := report(cmd, result, finalCfg, format, flags, workDir); err != nil {
		return err
	}

	return resultError(ExitCodeFromResult(result, finalCfg.Check))
}

// runFmtStdin filters stdin to stdout. In check and dry-run mode the
// report is written instead of the document.
func runFmtStdin(
	cmd *cobra.Command,
	reorderPipeline *pipeline.Pipeline,
	cfg *config.Config,
	format reporter.Format,
	flags *fmtFlags,
) error {
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	opts := pipeline.OptionsFromConfig(cfg)
	pr, err := reorderPipeline.ProcessContent(commandContext(cmd), stdinPath, input, cfg, opts)

	if cfg.Check || cfg.DryRun {
		outcome := runner.FileOutcome{Path: stdinPath, Result: pr, Error: err}
		result := runner.NewResult(outcome)
		if err := report(cmd, result, cfg, format, flags, ""); err != nil {
			return err
		}
		return resultError(ExitCodeFromResult(result, cfg.Check))
	}

	if err != nil {
		return err
	}

	output := input
	if pr.Modified {
		output = pr.ModifiedContent
	}
	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func report(
	cmd *cobra.Command,
	result *runner.Result,
	cfg *config.Config,
	format reporter.Format,
	flags *fmtFlags,
	workDir string,
) error {
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Verbose:     flags.verbose,
		Check:       cfg.Check,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// readsStdin reports whether the document comes from stdin: either "-" is
// the only path, or no paths are given and stdin is not a terminal.
func readsStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinPath {
		return true
	}
	if len(args) > 0 {
		return false
	}
	file, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(file.Fd())) && isPipe(file)
}

// isPipe reports whether file is a pipe or a regular file, as opposed to
// /dev/null or a closed descriptor.
func isPipe(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	mode := info.Mode()
	return mode&os.ModeNamedPipe != 0 || mode.IsRegular()
}

func addFmtFlags(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags) {
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report files that would change and exit 1; write nothing")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.order, "order", nil,
		"comma-separated table order, replacing the configured one")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"keep the original as <file>"+fsutil.BackupSuffix+" before rewriting it")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backups even if configured")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "fail on entries without a key instead of warning")
	cmd.Flags().BoolVar(&cfg.DetectFilenames, "detect-filenames", false, "also process files named like TOML, such as Pipfile")
	cmd.Flags().BoolVar(&cfg.NoVerify, "no-verify", false, "skip the semantic equivalence check")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list files that are already in order")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}
