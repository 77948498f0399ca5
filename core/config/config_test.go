package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/roomcast/core/config"
)

type testConfig struct {
	Name     string        `env:"CONFIG_TEST_NAME" envDefault:"roomcast"`
	Port     int           `env:"CONFIG_TEST_PORT" envDefault:"8080"`
	Interval time.Duration `env:"CONFIG_TEST_INTERVAL" envDefault:"3s"`
}

type overrideConfig struct {
	Value string `env:"CONFIG_TEST_VALUE" envDefault:"default"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	// No t.Parallel: tests mutate the process environment.

	t.Run("applies defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "roomcast", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 3*time.Second, cfg.Interval)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_VALUE", "from-env")

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Value)
	})

	t.Run("caches per type", func(t *testing.T) {
		var first testConfig
		require.NoError(t, config.Load(&first))

		// A later env change must not affect the cached type.
		t.Setenv("CONFIG_TEST_NAME", "changed")

		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		require.Error(t, config.Load(&cfg))
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
