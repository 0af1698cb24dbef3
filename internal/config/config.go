// Package config loads the tower application settings from defaults, an optional config file,
// TOWER_* environment variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
	"github.com/Carmen-Shannon/prism-tower/engine/tower"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TOWER_WIDTH.
const EnvPrefix = "TOWER"

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// LevelConfig is one color table entry. A nil or empty color leaves that half undrawn.
type LevelConfig struct {
	A *string `mapstructure:"a" yaml:"a"`
	B *string `mapstructure:"b" yaml:"b"`
}

// Config is the resolved application configuration.
type Config struct {
	Width      int           `mapstructure:"width" yaml:"width"`
	Height     int           `mapstructure:"height" yaml:"height"`
	Title      string        `mapstructure:"title" yaml:"title"`
	Rate       float64       `mapstructure:"rate" yaml:"rate"`
	Zoom       float32       `mapstructure:"zoom" yaml:"zoom"`
	Profile    bool          `mapstructure:"profile" yaml:"profile"`
	VSync      bool          `mapstructure:"vsync" yaml:"vsync"`
	MSAA       int           `mapstructure:"msaa" yaml:"msaa"`
	HalfWidth  float32       `mapstructure:"half_width" yaml:"half_width"`
	HalfHeight float32       `mapstructure:"half_height" yaml:"half_height"`
	Levels     []LevelConfig `mapstructure:"levels" yaml:"levels"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Width:      1280,
		Height:     720,
		Title:      "Prism Tower",
		Rate:       tower.DefaultRotationRate,
		Zoom:       30,
		VSync:      true,
		MSAA:       4,
		HalfWidth:  geometry.DefaultDimensions.S,
		HalfHeight: geometry.DefaultDimensions.H,
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("title", d.Title)
	v.SetDefault("rate", d.Rate)
	v.SetDefault("zoom", d.Zoom)
	v.SetDefault("profile", d.Profile)
	v.SetDefault("vsync", d.VSync)
	v.SetDefault("msaa", d.MSAA)
	v.SetDefault("half_width", d.HalfWidth)
	v.SetDefault("half_height", d.HalfHeight)
}

// Load resolves the configuration. The file format follows its extension (yaml, json, toml).
//
// Parameters:
//   - path: the config file path, empty to skip the file
//   - flags: the command flags to bind by name, may be nil
//
// Returns:
//   - Config: the validated configuration
//   - error: a read error or an error wrapping ErrInvalidConfig
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config: failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = Defaults().Title
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks sizes, rates and dimensions. Colors are checked by ColorTable.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Zoom <= 0:
		return fmt.Errorf("%w: zoom %v", ErrInvalidConfig, c.Zoom)
	case c.Rate < 0:
		return fmt.Errorf("%w: negative rotation rate %v", ErrInvalidConfig, c.Rate)
	}
	if err := c.Dimensions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ColorTable(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Dimensions() geometry.Dimensions {
	return geometry.Dimensions{S: c.HalfWidth, H: c.HalfHeight}
}

// ColorTable converts the configured levels into a tower color table. No levels selects the default table.
//
// Returns:
//   - []tower.Level: the table, bottom to top
//   - error: an error wrapping tower.ErrInvalidColor
func (c Config) ColorTable() ([]tower.Level, error) {
	if len(c.Levels) == 0 {
		return tower.DefaultColorTable(), nil
	}
	table := make([]tower.Level, len(c.Levels))
	for i, lc := range c.Levels {
		lvl, err := tower.ParseLevel(lc.A, lc.B)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		table[i] = lvl
	}
	return table, nil
}
