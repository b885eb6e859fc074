package am

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/teranos/semval/dv"
	"github.com/teranos/semval/dv/cache"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "semval.db"

// DefaultCacheSize bounds the memory cache backend.
const DefaultCacheSize = cache.DefaultMemorySize

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.size", DefaultCacheSize)
	v.SetDefault("cache.metrics", false)

	d := dv.DefaultConfig()
	v.SetDefault("values.strict_language_code", d.StrictLanguageCode)
	v.SetDefault("values.allows_pattern", d.AllowsPattern)
	v.SetDefault("values.precision", d.Precision)
	v.SetDefault("values.language", d.Language)
	v.SetDefault("values.uri_schemes", d.URISchemes)
	v.SetDefault("values.max_short_length", d.MaxShortLength)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// BindSensitiveEnvVars explicitly binds configuration that is commonly
// overridden per deployment
func BindSensitiveEnvVars(v *viper.Viper) {
	_ = v.BindEnv("database.path", "SEMVAL_DATABASE_PATH")
	_ = v.BindEnv("cache.backend", "SEMVAL_CACHE_BACKEND")
	_ = v.BindEnv("values.language", "SEMVAL_LANGUAGE")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// ToEnvConfig converts the values section to the settings of a dv.Env.
// Unset fields keep their dv defaults.
func (c *Config) ToEnvConfig() dv.Config {
	out := dv.DefaultConfig()
	out.StrictLanguageCode = c.Values.StrictLanguageCode
	out.AllowsPattern = c.Values.AllowsPattern
	if c.Values.Precision > 0 {
		out.Precision = c.Values.Precision
	}
	if c.Values.Language != "" {
		out.Language = c.Values.Language
	}
	if len(c.Values.URISchemes) > 0 {
		out.URISchemes = c.Values.URISchemes
	}
	out.TrueWords = c.Values.TrueWords
	out.FalseWords = c.Values.FalseWords
	out.MaxShortLength = c.Values.MaxShortLength
	return out
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Cache: {Backend: %s, Size: %d}, Values: {Language: %s}}",
		c.Database.Path, c.Cache.Backend, c.Cache.Size, c.Values.Language)
}
