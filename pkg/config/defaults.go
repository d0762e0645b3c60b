package config

// DefaultTableOrder returns the built-in table priority list, laid out
// the way Python packaging tools conventionally order pyproject.toml. The
// leading empty entry stands for the root table.
func DefaultTableOrder() []string {
	return []string{
		"",
		"build-system",
		"project",
		"dependency-groups",
		"tool.poetry",
		"tool.pdm",
		"tool.setuptools",
		"tool.hatch",
		"tool.uv",
		"tool.ruff",
		"tool.black",
		"tool.isort",
		"tool.flake8",
		"tool.pylint",
		"tool.mypy",
		"tool.pyright",
		"tool.pytest",
		"tool.coverage",
		"tool.tox",
	}
}

// DefaultKeyOrder returns the built-in key orders per table.
func DefaultKeyOrder() map[string][]string {
	return map[string][]string{
		"build-system": {"build-backend", "requires", "backend-path"},
		"project": {
			"name",
			"version",
			"description",
			"readme",
			"keywords",
			"license",
			"license-files",
			"maintainers",
			"authors",
			"requires-python",
			"classifiers",
			"dynamic",
			"dependencies",
			"optional-dependencies",
			"urls",
			"scripts",
			"gui-scripts",
			"entry-points",
		},
	}
}
