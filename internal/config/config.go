// Package config loads gorcc settings from defaults, a YAML file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/alexiusacademia/gorcc/internal/eurocode"
)

// EnvPrefix prefixes every environment variable read, e.g. GORCC_STEEL.
const EnvPrefix = "GORCC_"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Defaults
const (
	DefaultConcrete           = "C20/25"
	DefaultSteel              = "B500"
	DefaultConnection         = eurocode.PinnedFixed
	DefaultFormat             = FormatText
	DefaultCover              = 2.5 // cm
	DefaultTransverseDiameter = 6   // mm
	DefaultDotEnv             = ".env"
)

// Config holds the resolved settings.
type Config struct {
	Concrete           string  `koanf:"concrete"`
	Steel              string  `koanf:"steel"`
	Connection         string  `koanf:"connection"`
	Catalog            string  `koanf:"catalog"` // optional YAML catalog
	Format             string  `koanf:"format"`
	Workers            int     `koanf:"workers"`
	Verbose            bool    `koanf:"verbose"`
	Cover              float64 `koanf:"cover"`
	TransverseDiameter int     `koanf:"transverse_diameter"`
	Author             string  `koanf:"author"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// Options tells Load where to look.
type Options struct {
	File   string         // explicit config file, otherwise gorcc.yaml or gorcc.yml if present
	DotEnv string         // .env file, DefaultDotEnv when empty
	Flags  *pflag.FlagSet // flags explicitly set override everything else
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"transverse": "transverse_diameter",
}

// ValidationError reports a config value out of range.
type ValidationError struct {
	Key string
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Msg)
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars (.env included) > config file > defaults
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"concrete":            DefaultConcrete,
		"steel":               DefaultSteel,
		"connection":          DefaultConnection,
		"format":              DefaultFormat,
		"workers":             0,
		"verbose":             false,
		"cover":               DefaultCover,
		"transverse_diameter": DefaultTransverseDiameter,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	cfgFile := findConfigFile(opts.File)
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// 3. .env then environment: GORCC_TRANSVERSE_DIAMETER -> transverse_diameter
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = DefaultDotEnv
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", dotenv, err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = cfgFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"gorcc.yaml", "gorcc.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return &ValidationError{Key: "format", Msg: fmt.Sprintf("unknown format %q (want text, json or yaml)", c.Format)}
	}
	if c.Workers < 0 {
		return &ValidationError{Key: "workers", Msg: "must not be negative"}
	}
	if c.Cover < 0 {
		return &ValidationError{Key: "cover", Msg: "must not be negative"}
	}
	if c.TransverseDiameter <= 0 {
		return &ValidationError{Key: "transverse_diameter", Msg: "must be positive"}
	}
	return nil
}

// LoadCatalog returns the catalog file named in the config, or the
// built-in catalog.
func (c *Config) LoadCatalog() (*eurocode.Catalog, error) {
	if c.Catalog == "" {
		return eurocode.DefaultCatalog(), nil
	}
	return eurocode.LoadCatalog(c.Catalog)
}
