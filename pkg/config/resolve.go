package config

import "github.com/matzehuels/keyforge/pkg/cache"

// Overrides carries command-line values. A nil field leaves the file or
// default value in place.
type Overrides struct {
	OutputDir    *string
	MeshCells    *int
	Workers      *int
	Formats      []string
	Profile      *string
	PreviewSize  *int
	CacheBackend *string
	RedisAddr    *string
	NoCache      bool
}

// Resolve layers o over c: flags override the file, which already overrides
// the defaults.
func Resolve(c Config, o Overrides) (Config, error) {
	if o.OutputDir != nil {
		c.OutputDir = *o.OutputDir
	}
	if o.MeshCells != nil {
		c.MeshCells = *o.MeshCells
	}
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	if len(o.Formats) > 0 {
		c.Formats = append([]string(nil), o.Formats...)
	}
	if o.Profile != nil {
		c.Profile = *o.Profile
	}
	if o.PreviewSize != nil {
		c.Preview.Size = *o.PreviewSize
	}
	if o.CacheBackend != nil {
		c.Cache.Backend = *o.CacheBackend
	}
	if o.RedisAddr != nil {
		c.Cache.RedisAddr = *o.RedisAddr
	}
	if o.NoCache {
		c.Cache.Backend = cache.BackendNone
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
