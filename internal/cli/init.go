package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tomlorder/internal/logging"
	"github.com/yaklabco/tomlorder/pkg/config"
	"github.com/yaklabco/tomlorder/pkg/fsutil"
)

// Default file names written by init.
const (
	defaultYAMLConfig = ".tomlorder.yml"
	defaultTOMLConfig = ".tomlorder.toml"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new tomlorder configuration file",
		Long: `Create a new .tomlorder.yml configuration file in the current directory
with the default table order and a few commented examples.

Examples:
  tomlorder init                   Create a minimal .tomlorder.yml
  tomlorder init --full            Write every default order out in full
  tomlorder init --format toml     Create .tomlorder.toml instead
  tomlorder init --output ci.yml   Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write the complete default configuration")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+defaultYAMLConfig+" or "+defaultTOMLConfig+")")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.OutOrStdout())

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultYAMLConfig
		if flags.format == config.TemplateTOML {
			outputPath = defaultTOMLConfig
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if _, statErr := os.Stat(absPath); statErr == nil && flags.force {
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	err = fsutil.WriteNew(commandContext(cmd), absPath, content, flags.force)
	if errors.Is(err, fsutil.ErrExists) {
		return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
	}
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'tomlorder fmt --check' to see which files are out of order")

	return nil
}
