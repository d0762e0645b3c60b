package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tomlorder/internal/logging"
	"github.com/yaklabco/tomlorder/pkg/fsutil"
	"github.com/yaklabco/tomlorder/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from their backups",
		Long: `Put back the original of every file that has a ` + fsutil.BackupSuffix + ` backup,
then remove the backup. Paths are searched the same way fmt searches them.

Examples:
  tomlorder restore                  # Restore everything below the current directory
  tomlorder restore pyproject.toml   # Restore a single file`,
		Args: cobra.ArbitraryArgs,
		RunE: runRestore,
	}

	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.OutOrStdout())

	loadResult, workDir, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	files, err := runner.Discover(ctx, runner.OptionsFromConfig(loadResult.Config, args, workDir))
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	var restored int
	for _, path := range files {
		ok, err := fsutil.RestoreBackup(ctx, path)
		if err != nil {
			return fmt.Errorf("restore %s: %w", path, err)
		}
		if ok {
			restored++
			logger.Info("restored", logging.FieldPath, path)
		}
	}

	if restored == 0 {
		logger.Info("no backups found")
	}
	return nil
}
