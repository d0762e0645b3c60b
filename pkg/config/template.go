package config

import (
	"bytes"
	"fmt"
)

// Template formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every default order instead of a commented skeleton.
	Full bool

	// Format is "yaml" or "toml".
	Format string
}

const templateHeader = `tomlorder configuration
See: https://github.com/yaklabco/tomlorder`

const minimalYAML = `# Priority list for top-level tables. An entry such as "tool.ruff"
# also places nested tables like [tool.ruff.lint] right after it.
# Tables not listed keep their relative order at the end.
table_order:
  - ""
  - build-system
  - project
  - dependency-groups
  # - tool.ruff

# Key order per table. Keys not listed keep their order after these.
# key_order:
#   project: [name, version, description]

# File patterns to process and to skip (glob patterns)
# include: ["*.toml"]
# ignore: ["vendor/**"]

# Also pick up files named like TOML without the extension (Pipfile)
# detect_filenames: false

# Fail on malformed entries instead of warning
# strict: false

# Check that a rewrite keeps the document's data unchanged
# verify: true

# Keep a .tomlorder.bak copy of every rewritten file
# backups:
#   enabled: false
`

const minimalTOML = `# Priority list for top-level tables. An entry such as "tool.ruff"
# also places nested tables like [tool.ruff.lint] right after it.
# Tables not listed keep their relative order at the end.
table_order = ["", "build-system", "project", "dependency-groups"]

# Fail on malformed entries instead of warning
# strict = false

# Check that a rewrite keeps the document's data unchanged
# verify = true

# File patterns to process and to skip (glob patterns)
# include = ["*.toml"]
# ignore = ["vendor/**"]
# detect_filenames = false

# Key order per table. Keys not listed keep their order after these.
# [key_order]
# project = ["name", "version", "description"]

# Keep a .tomlorder.bak copy of every rewritten file
# [backups]
# enabled = false
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range bytes.Split([]byte(templateHeader), []byte("\n")) {
		buf.WriteString("# ")
		buf.Write(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')

	var body []byte
	var err error
	switch opts.Format {
	case "", TemplateYAML:
		if opts.Full {
			body, err = NewConfig().ToYAML()
		} else {
			body = []byte(minimalYAML)
		}
	case TemplateTOML:
		if opts.Full {
			body, err = NewConfig().ToTOML()
		} else {
			body = []byte(minimalTOML)
		}
	default:
		return nil, fmt.Errorf("unknown template format %q; must be one of: yaml, toml", opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	buf.Write(body)
	return buf.Bytes(), nil
}
