package config

import (
	"bytes"
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// ToolTable is the pyproject.toml table holding embedded configuration.
const ToolTable = "tool.tomlorder"

// ToTOML serializes the persisted fields of the configuration.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromTOML parses a configuration from a standalone TOML file.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse toml: %w", describeTOMLError(err))
	}
	return cfg, nil
}

// FromPyproject extracts the [tool.tomlorder] table from a pyproject.toml.
// It returns nil without error when the table is absent.
func FromPyproject(data []byte) (*Config, error) {
	var doc struct {
		Tool struct {
			Tomlorder *Config `toml:"tomlorder"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse pyproject: %w", describeTOMLError(err))
	}
	return doc.Tool.Tomlorder, nil
}

// describeTOMLError adds the row and column go-toml knows about.
func describeTOMLError(err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	return err
}
