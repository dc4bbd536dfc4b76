// Package config loads bigbang's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/bigbang/config.toml (see [DefaultPath]).
// Every key is optional: [Load] decodes on top of [Default], so a partial
// file only overrides what it names and a missing file yields the defaults.
//
//	[canvas]
//	width = 700
//	height = 500
//	margin = 50
//
//	[scale]
//	min_radius = 5
//	max_radius = 50
//
//	[forces]
//	category_strength = 0.4
//	alpha_decay = 0.015
//
//	[palette]
//	Sheldon = "#FF6B6B"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bigbang/pkg/cache"
	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/render"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds bigbang configuration.
type Config struct {
	Canvas  CanvasConfig      `toml:"canvas"`
	Scale   ScaleConfig       `toml:"scale"`
	Forces  ForcesConfig      `toml:"forces"`
	Palette map[string]string `toml:"palette"`
	Cache   CacheConfig       `toml:"cache"`
	Store   StoreConfig       `toml:"store"`
	Server  ServerConfig      `toml:"server"`
}

// CanvasConfig sets the layout area. Margin only pads rendered output.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin float64 `toml:"margin"`
}

// ScaleConfig is the bubble radius range in pixels.
type ScaleConfig struct {
	MinRadius float64 `toml:"min_radius"`
	MaxRadius float64 `toml:"max_radius"`
}

// ForcesConfig mirrors [bubble.Params].
type ForcesConfig struct {
	CategoryStrength    float64 `toml:"category_strength"`
	LargestStrength     float64 `toml:"largest_strength"`
	BoundaryStrength    float64 `toml:"boundary_strength"`
	CollisionIterations int     `toml:"collision_iterations"`
	CollisionPadding    float64 `toml:"collision_padding"`
	AlphaDecay          float64 `toml:"alpha_decay"`
	AlphaMin            float64 `toml:"alpha_min"`
	VelocityDecay       float64 `toml:"velocity_decay"`
	AnchorRatio         float64 `toml:"anchor_ratio"`
	SeedRadius          float64 `toml:"seed_radius"`
	MaxTicks            int     `toml:"max_ticks"`
	Seed                uint64  `toml:"seed"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // "file", "redis", "none"
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig configures the layout archive used by the server. An empty
// MongoURI keeps layouts in memory.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures `bigbang serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	p := bubble.DefaultParams()
	return &Config{
		Canvas: CanvasConfig{Width: 700, Height: 500, Margin: 50},
		Scale:  ScaleConfig{MinRadius: bubble.DefaultRadii.Min, MaxRadius: bubble.DefaultRadii.Max},
		Forces: ForcesConfig{
			CategoryStrength:    p.CategoryStrength,
			LargestStrength:     p.LargestStrength,
			BoundaryStrength:    p.BoundaryStrength,
			CollisionIterations: p.CollisionIterations,
			CollisionPadding:    p.CollisionPadding,
			AlphaDecay:          p.AlphaDecay,
			AlphaMin:            p.AlphaMin,
			VelocityDecay:       p.VelocityDecay,
			AnchorRatio:         p.AnchorRatio,
			SeedRadius:          p.SeedRadius,
			MaxTicks:            p.MaxTicks,
		},
		Palette: maps.Clone(render.DefaultColors),
		Cache:   CacheConfig{Backend: cache.BackendFile, Prefix: "bigbang:"},
		Store:   StoreConfig{Database: "bigbang", Collection: "layouts"},
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// Dir returns the bigbang config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if d, err := os.UserConfigDir(); err == nil {
			dir = d
		} else {
			home, _ := os.UserHomeDir()
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, "bigbang")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the config at path on top of the defaults. An empty path means
// [DefaultPath]. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the canvas, scale and force settings.
func (c *Config) Validate() error {
	if !(c.Canvas.Width > 0) {
		return errors.InvalidConfig("canvas.width", "must be positive, got %v", c.Canvas.Width)
	}
	if !(c.Canvas.Height > 0) {
		return errors.InvalidConfig("canvas.height", "must be positive, got %v", c.Canvas.Height)
	}
	if c.Canvas.Margin < 0 {
		return errors.InvalidConfig("canvas.margin", "must not be negative, got %v", c.Canvas.Margin)
	}
	if !(c.Scale.MinRadius > 0) || c.Scale.MaxRadius < c.Scale.MinRadius {
		return errors.InvalidConfig("scale", "need 0 < min_radius <= max_radius, got %v..%v",
			c.Scale.MinRadius, c.Scale.MaxRadius)
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.InvalidConfig("cache.backend", "unknown backend %q", c.Cache.Backend)
	}
	return c.Params().Validate()
}

// Params returns the force settings as engine parameters.
func (c *Config) Params() bubble.Params {
	f := c.Forces
	return bubble.Params{
		CategoryStrength:    f.CategoryStrength,
		LargestStrength:     f.LargestStrength,
		BoundaryStrength:    f.BoundaryStrength,
		CollisionIterations: f.CollisionIterations,
		CollisionPadding:    f.CollisionPadding,
		AlphaDecay:          f.AlphaDecay,
		AlphaMin:            f.AlphaMin,
		VelocityDecay:       f.VelocityDecay,
		AnchorRatio:         f.AnchorRatio,
		SeedRadius:          f.SeedRadius,
		MaxTicks:            f.MaxTicks,
	}
}

// Radii returns the configured radius range.
func (c *Config) Radii() bubble.RadiusRange {
	return bubble.RadiusRange{Min: c.Scale.MinRadius, Max: c.Scale.MaxRadius}
}

// CacheOptions returns the options for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
		Prefix:   c.Cache.Prefix,
	}
}

// NewPalette returns a render palette with the configured colors.
func (c *Config) NewPalette() *render.Palette {
	return render.NewPalette(c.Palette)
}
