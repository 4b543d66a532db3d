package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 5, cfg.Analytics.TopItemsLimit)
	assert.Equal(t, 5, cfg.Analytics.DefaultCriticalStock)
	assert.Equal(t, "Uncategorized", cfg.Analytics.UncategorizedLabel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PORT", "9090")
	t.Setenv("TOP_ITEMS_LIMIT", "10")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 10, cfg.Analytics.TopItemsLimit)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_BadInteger(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("TOP_ITEMS_LIMIT", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StoreDriver: StoreDriverPostgres,
			Analytics: AnalyticsConfig{
				TopItemsLimit:        5,
				DefaultCriticalStock: 5,
				Timezone:             "UTC",
			},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.StoreDriver = "redis"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Analytics.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Analytics.TopItemsLimit = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Analytics.DefaultCriticalStock = -1
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", d.DSN())
}
