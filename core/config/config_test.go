package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intrabus/core/config"
)

type busConfig struct {
	DefaultCapacity int           `env:"TEST_BUS_CAPACITY" envDefault:"10"`
	ChannelsFile    string        `env:"TEST_BUS_CHANNELS"`
	Tick            time.Duration `env:"TEST_BUS_TICK" envDefault:"100ms"`
}

type requiredConfig struct {
	URL string `env:"TEST_REQUIRED_URL,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("parses values and defaults", func(t *testing.T) {
		t.Parallel()

		var cfg busConfig
		err := config.Load(&cfg, env.Options{Environment: map[string]string{
			"TEST_BUS_CAPACITY": "32",
			"TEST_BUS_CHANNELS": "channels.yaml",
		}})
		require.NoError(t, err)
		assert.Equal(t, 32, cfg.DefaultCapacity)
		assert.Equal(t, "channels.yaml", cfg.ChannelsFile)
		assert.Equal(t, 100*time.Millisecond, cfg.Tick)
	})

	t.Run("missing required value", func(t *testing.T) {
		t.Parallel()

		var cfg requiredConfig
		err := config.Load(&cfg, env.Options{Environment: map[string]string{}})
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()

		err := config.Load[busConfig](nil)
		require.ErrorIs(t, err, config.ErrNilConfig)
	})

	t.Run("caches per type", func(t *testing.T) {
		t.Parallel()

		var first cachedConfig
		require.NoError(t, config.Load(&first, env.Options{Environment: map[string]string{
			"TEST_CACHED_VALUE": "first",
		}}))

		var second cachedConfig
		require.NoError(t, config.Load(&second, env.Options{Environment: map[string]string{
			"TEST_CACHED_VALUE": "second",
		}}))

		assert.Equal(t, "first", second.Value)
	})
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	type mustConfig struct {
		Missing string `env:"TEST_MUST_MISSING,required"`
	}

	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg, env.Options{Environment: map[string]string{}})
	})
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	type entry struct {
		Name     string `yaml:"name"`
		Capacity int    `yaml:"capacity"`
	}
	type table struct {
		Channels []entry `yaml:"channels"`
	}

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "channels.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("decodes file", func(t *testing.T) {
		t.Parallel()

		path := write(t, "channels:\n  - name: /pose\n    capacity: 5\n  - name: /cmd\n    capacity: 1\n")

		var got table
		require.NoError(t, config.LoadYAML(path, &got))
		assert.Equal(t, []entry{{Name: "/pose", Capacity: 5}, {Name: "/cmd", Capacity: 1}}, got.Channels)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		path := write(t, "channels:\n  - name: /pose\n    capcity: 5\n")

		var got table
		require.ErrorIs(t, config.LoadYAML(path, &got), config.ErrDecodeFile)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := write(t, "")

		var got table
		require.NoError(t, config.LoadYAML(path, &got))
		assert.Empty(t, got.Channels)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var got table
		err := config.LoadYAML(filepath.Join(t.TempDir(), "absent.yaml"), &got)
		require.ErrorIs(t, err, config.ErrReadFile)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
