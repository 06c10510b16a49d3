package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcc/internal/eurocode"
)

// noDotEnv points Load at a .env that does not exist.
func noDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{DotEnv: noDotEnv(t)})
	require.NoError(t, err)

	assert.Equal(t, DefaultConcrete, cfg.Concrete)
	assert.Equal(t, DefaultSteel, cfg.Steel)
	assert.Equal(t, eurocode.PinnedFixed, cfg.Connection)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, 2.5, cfg.Cover)
	assert.Equal(t, 6, cfg.TransverseDiameter)
	assert.Zero(t, cfg.Workers)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.File)
}

func TestLoad_Verbose(t *testing.T) {
	cfg, err := Load(Options{File: writeFile(t, "gorcc.yaml", "verbose: true\n"), DotEnv: noDotEnv(t)})
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)

	t.Setenv("GORCC_VERBOSE", "true")
	cfg, err = Load(Options{DotEnv: noDotEnv(t)})
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Precedence(t *testing.T) {
	cfgFile := writeFile(t, "gorcc.yaml", `
concrete: C30/37
steel: A400
format: json
workers: 2
cover: 3.0
`)
	t.Setenv("GORCC_STEEL", "B500")
	t.Setenv("GORCC_TRANSVERSE_DIAMETER", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("format", "text", "")
	flags.Int("workers", 0, "")
	flags.Int("transverse", 6, "")
	require.NoError(t, flags.Parse([]string{"--config", cfgFile, "--format", "yaml", "--transverse", "10"}))

	cfg, err := Load(Options{File: cfgFile, DotEnv: noDotEnv(t), Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, cfgFile, cfg.File)
	assert.Equal(t, "C30/37", cfg.Concrete, "file over defaults")
	assert.Equal(t, "B500", cfg.Steel, "env over file")
	assert.Equal(t, FormatYAML, cfg.Format, "flag over file")
	assert.Equal(t, 2, cfg.Workers, "unset flag does not override file")
	assert.Equal(t, 10, cfg.TransverseDiameter, "flag over env")
	assert.Equal(t, 3.0, cfg.Cover)
	assert.Equal(t, DefaultConnection, cfg.Connection)
}

func TestLoad_DotEnv(t *testing.T) {
	dotenv := writeFile(t, ".env", "GORCC_AUTHOR=J. Doe\nGORCC_CONNECTION=encastre-encastre\n")
	t.Cleanup(func() {
		os.Unsetenv("GORCC_AUTHOR")
		os.Unsetenv("GORCC_CONNECTION")
	})

	cfg, err := Load(Options{DotEnv: dotenv})
	require.NoError(t, err)

	assert.Equal(t, "J. Doe", cfg.Author)
	assert.Equal(t, eurocode.FixedFixed, cfg.Connection)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml"), DotEnv: noDotEnv(t)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(Options{File: writeFile(t, "bad.yaml", "format: [\n"), DotEnv: noDotEnv(t)})
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			yaml string
			key  string
		}{
			{"format: xml\n", "format"},
			{"workers: -1\n", "workers"},
			{"cover: -2\n", "cover"},
			{"transverse_diameter: 0\n", "transverse_diameter"},
		}
		for _, tt := range tests {
			_, err := Load(Options{File: writeFile(t, "gorcc.yaml", tt.yaml), DotEnv: noDotEnv(t)})
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), tt.yaml)
			assert.Equal(t, tt.key, vErr.Key)
		}
	})
}

func TestConfig_LoadCatalog(t *testing.T) {
	cfg := &Config{}
	cat, err := cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, cat.ConcreteClasses, len(eurocode.ConcreteClasses))

	cfg.Catalog = writeFile(t, "catalog.yaml", "steel_types:\n  - name: B450C\n    fyk: 450\n    gamma_s: 1.15\n")
	cat, err = cfg.LoadCatalog()
	require.NoError(t, err)
	_, ok := cat.Steel("B450C")
	assert.True(t, ok)
}
