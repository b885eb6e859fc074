package am

import (
	"golang.org/x/text/language"

	"github.com/teranos/semval/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Empty database path falls back to DefaultDatabasePath

	switch c.Cache.Backend {
	case "", CacheMemory, CacheSQLite:
	default:
		return errors.Newf("cache.backend must be %q or %q, got %q", CacheMemory, CacheSQLite, c.Cache.Backend)
	}
	if c.Cache.Size < 0 {
		return errors.Newf("cache.size must be >= 0, got %d", c.Cache.Size)
	}

	// 0 precision means whole numbers, negative is invalid
	if c.Values.Precision < 0 {
		return errors.Newf("values.precision must be >= 0, got %d", c.Values.Precision)
	}
	if c.Values.MaxShortLength < 0 {
		return errors.Newf("values.max_short_length must be >= 0, got %d", c.Values.MaxShortLength)
	}
	if c.Values.Language != "" {
		if _, err := language.Parse(c.Values.Language); err != nil {
			return errors.Wrapf(err, "values.language %q", c.Values.Language)
		}
	}
	for _, s := range c.Values.URISchemes {
		if s == "" {
			return errors.New("values.uri_schemes cannot contain an empty scheme")
		}
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
