// Package am loads the semval configuration from TOML files and SEMVAL_
// environment variables.
package am

// Config represents the semval configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" yaml:"database" json:"database"`
	Cache    CacheConfig    `mapstructure:"cache" toml:"cache" yaml:"cache" json:"cache"`
	Values   ValuesConfig   `mapstructure:"values" toml:"values" yaml:"values" json:"values"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// DatabaseConfig configures the SQLite fact store
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
}

// CacheConfig configures the constraint and conversion cache
type CacheConfig struct {
	Backend string `mapstructure:"backend" toml:"backend" yaml:"backend" json:"backend"` // memory or sqlite
	Size    int    `mapstructure:"size" toml:"size" yaml:"size" json:"size"`          // entries kept by the memory backend
	Metrics bool   `mapstructure:"metrics" toml:"metrics" yaml:"metrics" json:"metrics"`
}

// Cache backends
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
)

// ValuesConfig holds the value parsing and formatting switches
type ValuesConfig struct {
	StrictLanguageCode bool     `mapstructure:"strict_language_code" toml:"strict_language_code" yaml:"strict_language_code" json:"strict_language_code"`
	AllowsPattern      bool     `mapstructure:"allows_pattern" toml:"allows_pattern" yaml:"allows_pattern" json:"allows_pattern"`
	Precision          int      `mapstructure:"precision" toml:"precision" yaml:"precision" json:"precision"`
	Language           string   `mapstructure:"language" toml:"language" yaml:"language" json:"language"`
	URISchemes         []string `mapstructure:"uri_schemes" toml:"uri_schemes" yaml:"uri_schemes" json:"uri_schemes"`
	TrueWords          []string `mapstructure:"true_words" toml:"true_words,omitempty" yaml:"true_words,omitempty" json:"true_words,omitempty"`
	FalseWords         []string `mapstructure:"false_words" toml:"false_words,omitempty" yaml:"false_words,omitempty" json:"false_words,omitempty"`
	MaxShortLength     int      `mapstructure:"max_short_length" toml:"max_short_length" yaml:"max_short_length" json:"max_short_length"`
	VocabularyFile     string   `mapstructure:"vocabulary_file" toml:"vocabulary_file,omitempty" yaml:"vocabulary_file,omitempty" json:"vocabulary_file,omitempty"` // YAML import vocabularies
	PatternFile        string   `mapstructure:"pattern_file" toml:"pattern_file,omitempty" yaml:"pattern_file,omitempty" json:"pattern_file,omitempty"`             // "name|regex" lines
}

// LogConfig configures the global logger
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Level string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
