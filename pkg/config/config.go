// Package config loads stackforge settings.
//
// Settings are layered: built-in defaults, then an optional TOML file, then
// STACKFORGE_* environment variables. Command-line flags are applied on top
// by the caller.
//
//	# ~/.config/stackforge/config.toml
//	catalog = "features.toml"
//	build_system = "gradle"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
// The same settings via the environment:
//
//	STACKFORGE_CACHE_BACKEND=redis STACKFORGE_CACHE_REDIS_URL=redis://localhost:6379/0
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/stackforge/pkg/cache"
	"github.com/matzehuels/stackforge/pkg/errors"
	"github.com/matzehuels/stackforge/pkg/integrations"
	"github.com/matzehuels/stackforge/pkg/integrations/gradle"
	"github.com/matzehuels/stackforge/pkg/integrations/maven"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "STACKFORGE_"

// Config holds all stackforge settings.
type Config struct {
	// Catalog is the path of the TOML feature catalog.
	Catalog string `toml:"catalog" env:"CATALOG"`

	// BuildSystem is the default build system ("maven" or "gradle").
	BuildSystem string `toml:"build_system" env:"BUILD_SYSTEM"`

	Cache      Cache      `toml:"cache" envPrefix:"CACHE_"`
	Registries Registries `toml:"registries" envPrefix:"REGISTRY_"`
	Server     Server     `toml:"server" envPrefix:"SERVER_"`
}

// Cache configures the version lookup cache.
type Cache struct {
	Backend   string        `toml:"backend" env:"BACKEND"`       // file, redis or none
	Dir       string        `toml:"dir" env:"DIR"`               // empty selects cache.DefaultDir
	TTL       time.Duration `toml:"ttl" env:"TTL"`               // lookup cache lifetime
	RedisURL  string        `toml:"redis_url" env:"REDIS_URL"`   // redis://host:6379/0
	KeyPrefix string        `toml:"key_prefix" env:"KEY_PREFIX"` // shared-Redis namespace
}

// Registries configures the registry endpoints.
type Registries struct {
	MavenSearchURL  string `toml:"maven_search_url" env:"MAVEN_SEARCH_URL"`
	PluginPortalURL string `toml:"plugin_portal_url" env:"PLUGIN_PORTAL_URL"`

	// MavenRepositoryURL switches Maven lookups from the search API to
	// maven-metadata.xml in this repository (e.g. a Nexus mirror).
	MavenRepositoryURL string `toml:"maven_repository_url" env:"MAVEN_REPOSITORY_URL"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" env:"ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BuildSystem: "maven",
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     integrations.DefaultCacheTTL,
		},
		Registries: Registries{
			MavenSearchURL:  maven.DefaultSearchURL,
			PluginPortalURL: gradle.DefaultPortalURL,
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns the user config file location
// ($XDG_CONFIG_HOME/stackforge/config.toml or ~/.config/stackforge/config.toml).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stackforge", "config.toml")
}

// Load builds the configuration. If path is empty, [DefaultPath] is read when
// it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := decodeFile(path, &cfg, explicit); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config, mustExist bool) error {
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		if mustExist {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %s", path, undecoded[0])
	}
	return nil
}

// Validate checks enumerations and URLs.
func (c Config) Validate() error {
	backends := []string{cache.BackendFile, cache.BackendRedis, cache.BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q (expected one of %v)", c.Cache.Backend, backends)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	for _, u := range []string{c.Registries.MavenSearchURL, c.Registries.PluginPortalURL} {
		if err := errors.ValidateURL(u); err != nil {
			return err
		}
	}
	if c.Registries.MavenRepositoryURL != "" {
		if err := errors.ValidateURL(c.Registries.MavenRepositoryURL); err != nil {
			return err
		}
	}
	return nil
}

// CacheOptions returns the options for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisURL: c.Cache.RedisURL}
}

// MavenOptions returns the Maven client options for the configured registries.
func (c Config) MavenOptions() []maven.Option {
	opts := []maven.Option{
		maven.WithSearchURL(c.Registries.MavenSearchURL),
		maven.WithKeyer(cache.NewKeyer(c.Cache.KeyPrefix)),
	}
	if c.Registries.MavenRepositoryURL != "" {
		opts = append(opts, maven.WithRepository(c.Registries.MavenRepositoryURL))
	}
	return opts
}
