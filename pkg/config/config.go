// Package config defines the configuration types for tomlorder.
// These types are plain data; discovery and merging live in configloader.
package config

// OutputFormat specifies the report format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// BackupsConfig controls sidecar backups when files are rewritten.
type BackupsConfig struct {
	// Enabled is a pointer so a config file can turn backups off.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// TableOrder is the priority list for top-level tables. An entry
	// matches tables whose group key equals it.
	TableOrder []string `mapstructure:"table_order" yaml:"table_order,omitempty" toml:"table_order,omitempty"`

	// KeyOrder maps a table name to the order of its keys.
	KeyOrder map[string][]string `mapstructure:"key_order" yaml:"key_order,omitempty" toml:"key_order,omitempty"`

	// Include contains glob patterns selecting files during discovery.
	Include []string `mapstructure:"include" yaml:"include,omitempty" toml:"include,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// DetectFilenames also selects files recognised as TOML by their
	// name, such as Pipfile, during directory walks.
	DetectFilenames bool `mapstructure:"detect_filenames" yaml:"detect_filenames,omitempty" toml:"detect_filenames,omitempty"`

	// Strict fails on malformed entries instead of warning.
	Strict bool `mapstructure:"strict" yaml:"strict,omitempty" toml:"strict,omitempty"`

	// Verify decodes the result and compares it with the original.
	Verify *bool `mapstructure:"verify" yaml:"verify,omitempty" toml:"verify,omitempty"`

	// Backups configures sidecar backups.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups,omitempty" toml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Check reports files that would change and writes nothing.
	Check bool `mapstructure:"-" yaml:"-" toml:"-"`

	// DryRun shows the diff of each change without writing.
	DryRun bool `mapstructure:"-" yaml:"-" toml:"-"`

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-" toml:"-"`

	// NoBackups disables backups regardless of Backups.Enabled.
	NoBackups bool `mapstructure:"-" yaml:"-" toml:"-"`

	// NoVerify disables verification regardless of Verify.
	NoVerify bool `mapstructure:"-" yaml:"-" toml:"-"`
}

// NewConfig returns a Config with the default orders.
func NewConfig() *Config {
	return &Config{
		TableOrder: DefaultTableOrder(),
		KeyOrder:   DefaultKeyOrder(),
		Include:    []string{"*.toml"},
		Verify:     Bool(true),
		Backups:    BackupsConfig{Enabled: Bool(false)},
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// VerifyEnabled reports whether rewrites are checked for semantic changes.
func (c *Config) VerifyEnabled() bool {
	if c == nil || c.NoVerify {
		return false
	}
	return c.Verify == nil || *c.Verify
}

// BackupsEnabled reports whether backups are written before a rewrite.
func (c *Config) BackupsEnabled() bool {
	if c == nil || c.NoBackups {
		return false
	}
	return c.Backups.Enabled != nil && *c.Backups.Enabled
}

// KeysFor returns the key order configured for table.
func (c *Config) KeysFor(table string) []string {
	if c == nil {
		return nil
	}
	return c.KeyOrder[table]
}
