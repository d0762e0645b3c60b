package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tomlorder/internal/configloader"
	"github.com/yaklabco/tomlorder/internal/ui/pretty"
	"github.com/yaklabco/tomlorder/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathsCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after merging every source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadResult, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case config.TemplateYAML:
				data, err = loadResult.Config.ToYAML()
			case config.TemplateTOML:
				data, err = loadResult.Config.ToTOML()
			default:
				return fmt.Errorf("invalid format %q: must be yaml or toml", format)
			}
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", config.TemplateYAML, "Output format: yaml or toml")

	return cmd
}

func newConfigPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the configuration files that were found and loaded",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadResult, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
			writePaths(cmd.OutOrStdout(), styles, loadResult)
			return nil
		},
	}
}

func writePaths(out io.Writer, styles *pretty.Styles, loadResult *configloader.LoadResult) {
	loaded := make(map[string]bool, len(loadResult.LoadedFrom))
	for _, path := range loadResult.LoadedFrom {
		loaded[path] = true
	}

	rows := [][2]string{
		{"system", loadResult.Paths.System},
		{"user", loadResult.Paths.User},
		{"project", loadResult.Paths.Project},
		{"explicit", loadResult.Paths.Explicit},
	}
	for _, row := range rows {
		path := row[1]
		switch {
		case path == "":
			path = styles.Dim.Render("(none)")
		case loaded[path]:
			path = styles.FilePath.Render(path)
		}
		fmt.Fprintf(out, "%-9s %s\n", row[0]+":", path)
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables tomlorder reads",
		Run: func(cmd *cobra.Command, _ []string) {
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
			for _, envVar := range configloader.ListEnvVars() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", styles.Flag.Render(envVar[0]), envVar[1])
			}
		},
	}
}
