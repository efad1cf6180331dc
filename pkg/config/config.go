// Package config loads the keyforge configuration file.
//
// The file lives at $XDG_CONFIG_HOME/keyforge/config.toml (falling back to
// ~/.config/keyforge/config.toml) and holds defaults for the build commands:
//
//	output_dir = "out"
//	mesh_cells = 200
//	workers    = 8
//	formats    = ["stl", "png"]
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//
// A missing file is not an error. Command-line flags take precedence over the
// file, which takes precedence over the built-in defaults; see [Resolve].
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/pipeline"
)

// AppName is used for the config and cache directory names.
const AppName = "keyforge"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds the file-level settings.
type Config struct {
	OutputDir string        `toml:"output_dir"`
	MeshCells int           `toml:"mesh_cells"`
	Workers   int           `toml:"workers"`
	Formats   []string      `toml:"formats"`
	Profile   string        `toml:"profile"`
	Preview   PreviewConfig `toml:"preview"`
	Cache     CacheConfig   `toml:"cache"`
}

// PreviewConfig holds preview render settings.
type PreviewConfig struct {
	Size  int     `toml:"size"`
	Yaw   float64 `toml:"yaw"`
	Pitch float64 `toml:"pitch"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file, redis, or none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputDir: ".",
		MeshCells: pipeline.DefaultMeshCells,
		Workers:   pipeline.DefaultWorkers,
		Formats:   []string{pipeline.FormatSTL},
		Profile:   "glk",
		Cache: CacheConfig{
			Backend:     cache.BackendFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: cache.DefaultRedisPrefix,
		},
	}
}

// Dir returns the config directory using XDG standard (~/.config/keyforge/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/keyforge/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative: %d", c.Workers)
	}
	if c.MeshCells != 0 {
		if err := pipeline.ValidateMeshCells(c.MeshCells); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mesh_cells")
		}
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// CacheOptions returns the options for [cache.Open]. The file backend uses
// CacheDir when no directory is configured.
func (c Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   c.Cache.RedisPrefix,
		},
	}
	if opts.Dir == "" && (opts.Backend == "" || opts.Backend == cache.BackendFile) {
		dir, err := CacheDir()
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache dir")
		}
		opts.Dir = dir
	}
	return opts, nil
}

// PipelineOptions returns build options carrying the resolved settings.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Formats:     append([]string(nil), c.Formats...),
		MeshCells:   c.MeshCells,
		Workers:     c.Workers,
		PreviewSize: c.Preview.Size,
		Yaw:         c.Preview.Yaw,
		Pitch:       c.Preview.Pitch,
	}
}
