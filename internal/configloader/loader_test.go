package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/pkg/config"
)

// projectDir returns a temp directory marked as a VCS root so the upward
// search never leaves it.
func projectDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t, nil)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.DefaultTableOrder(), result.Config.TableOrder)
	assert.Equal(t, config.DefaultKeyOrder(), result.Config.KeyOrder)
	assert.True(t, result.Config.VerifyEnabled())
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectYAML(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".tomlorder.yml": `
table_order: [project, tool.ruff]
key_order:
  tool.ruff: [line-length]
verify: false
`,
	})

	result, err := Load(context.Background(), isolated(filepath.Join(dir)))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{"project", "tool.ruff"}, cfg.TableOrder)
	assert.Equal(t, []string{"line-length"}, cfg.KeysFor("tool.ruff"))
	assert.Equal(t, config.DefaultKeyOrder()["project"], cfg.KeysFor("project"), "defaults merge per table")
	assert.False(t, cfg.VerifyEnabled())
	assert.Equal(t, []string{filepath.Join(dir, ".tomlorder.yml")}, result.LoadedFrom)
}

func TestLoad_SearchesUpward(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		"tomlorder.toml":    "table_order = [\"a\"]\n",
		"sub/deeper/x.toml": "",
	})

	result, err := Load(context.Background(), isolated(filepath.Join(dir, "sub", "deeper")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Config.TableOrder)
}

func TestLoad_Pyproject(t *testing.T) {
	t.Parallel()

	t.Run("tool table is used", func(t *testing.T) {
		t.Parallel()

		dir := projectDir(t, map[string]string{
			"pyproject.toml": "[project]\nname = \"w\"\n\n[tool.tomlorder]\ntable_order = [\"project\"]\nstrict = true\n",
		})

		result, err := Load(context.Background(), isolated(dir))
		require.NoError(t, err)
		assert.Equal(t, []string{"project"}, result.Config.TableOrder)
		assert.True(t, result.Config.Strict)
	})

	t.Run("without tool table it is ignored", func(t *testing.T) {
		t.Parallel()

		dir := projectDir(t, map[string]string{
			"pyproject.toml": "[project]\nname = \"w\"\n",
		})

		result, err := Load(context.Background(), isolated(dir))
		require.NoError(t, err)
		assert.Empty(t, result.Paths.Project)
		assert.Equal(t, config.DefaultTableOrder(), result.Config.TableOrder)
	})

	t.Run("dedicated file wins", func(t *testing.T) {
		t.Parallel()

		dir := projectDir(t, map[string]string{
			"pyproject.toml":  "[tool.tomlorder]\ntable_order = [\"py\"]\n",
			".tomlorder.yaml": "table_order: [yaml]\n",
		})

		result, err := Load(context.Background(), isolated(dir))
		require.NoError(t, err)
		assert.Equal(t, []string{"yaml"}, result.Config.TableOrder)
	})
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".tomlorder.yml": "table_order: [project]\nbackups:\n  enabled: true\n",
		"explicit.toml":  "table_order = [\"explicit\"]\n",
	})

	opts := isolated(dir)
	opts.ExplicitPath = filepath.Join(dir, "explicit.toml")
	opts.CLIConfig = &config.Config{Check: true, Jobs: 2}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{"explicit"}, cfg.TableOrder)
	assert.True(t, cfg.BackupsEnabled(), "project setting survives an explicit file that omits it")
	assert.True(t, cfg.Check)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{".tomlorder.yml": "ignore: [\"[\"]\n"})

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "ignore[0]", validationErr.Field)
}

func TestLoad_UnreadableFile(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{"tomlorder.toml": "table_order = [\n"})

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".tomlorder.yml": "table_order: [project, tool.ruff.lint, project]\n",
	})

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `"tool.ruff.lint" never matches`)
	assert.Contains(t, result.Warnings[1], "duplicate entry")
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"TOMLORDER_TABLE_ORDER": "project, tool.ruff,,",
		"TOMLORDER_VERIFY":      "false",
		"TOMLORDER_JOBS":        "4",
		"TOMLORDER_FORMAT":      "json",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromLookup(cfg, lookup))
	assert.Equal(t, []string{"project", "tool.ruff"}, cfg.TableOrder)
	assert.False(t, cfg.VerifyEnabled())
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, config.FormatJSON, cfg.Format)

	env["TOMLORDER_STRICT"] = "maybe"
	err := loadFromLookup(cfg, lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOMLORDER_STRICT")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for idx := 1; idx < len(vars); idx++ {
		assert.Less(t, vars[idx-1][0], vars[idx][0])
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	override := &config.Config{
		Verify:   config.Bool(false),
		KeyOrder: map[string][]string{"project": {"version"}},
		Ignore:   []string{"vendor/**"},
	}

	merged := MergeAll(base, override, nil)
	assert.False(t, merged.VerifyEnabled())
	assert.Equal(t, []string{"version"}, merged.KeysFor("project"))
	assert.Equal(t, base.KeyOrder["build-system"], merged.KeysFor("build-system"))
	assert.Equal(t, []string{"vendor/**"}, merged.Ignore)
	assert.Equal(t, base.TableOrder, merged.TableOrder)

	assert.True(t, base.VerifyEnabled(), "inputs are not modified")
	assert.Nil(t, MergeAll())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Format:   "yaml",
		Jobs:     -1,
		KeyOrder: map[string][]string{"project": {"name", " ", "name"}},
	}

	result := ValidateWithFile(cfg, "cfg.yml")
	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "cfg.yml: format: invalid format \"yaml\"; must be one of: text, json, diff", result.Errors[0].Error())
	assert.Equal(t, "jobs", result.Errors[1].Field)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "key_order.project[1]", result.Warnings[0].Field)
	assert.Equal(t, "key_order.project[2]", result.Warnings[1].Field)
	assert.Len(t, result.AllMessages(), 4)

	assert.True(t, Validate(nil).Valid())
	assert.True(t, IsValidFormat(config.FormatDiff))
}
