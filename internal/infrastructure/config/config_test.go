package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	keys := []string{
		"COTIZADOR_APP_ENV",
		"COTIZADOR_APP_PORT",
		"COTIZADOR_STORAGE_DRIVER",
		"COTIZADOR_DATABASE_PASSWORD",
		"COTIZADOR_DATABASE_SSLMODE",
		"COTIZADOR_QUOTE_MAX_ATTEMPTS",
		"COTIZADOR_QUOTE_BACKOFF",
		"COTIZADOR_QUOTE_WORKERS",
		"COTIZADOR_QUOTE_SIMULATOR_LATENCY",
		"COTIZADOR_NOTIFICATION_DRIVER",
	}
	original := map[string]string{}
	for _, k := range keys {
		original[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()
	clearEnv := func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "cotizador-seguros", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
		assert.Equal(t, 3, cfg.Quote.MaxAttempts)
		assert.Equal(t, []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}, cfg.Quote.BackoffSchedule())
		assert.Equal(t, 7*24*time.Hour, cfg.Quote.Expiry)
		assert.Equal(t, 4, cfg.Quote.Workers)
		assert.Equal(t, 256, cfg.Quote.QueueSize)
		assert.Equal(t, 3*time.Second, cfg.Quote.SimulatorLatency)
		assert.Equal(t, "@every 1m", cfg.Quote.SweepSchedule)
		assert.Equal(t, 10*time.Minute, cfg.Quote.StaleAfter)
		assert.Equal(t, NotificationMemory, cfg.Notification.Driver)
		assert.Equal(t, "chat.", cfg.Notification.ChannelPrefix)
		assert.True(t, cfg.Database.AutoMigrate)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("COTIZADOR_APP_PORT", "9090")
		os.Setenv("COTIZADOR_STORAGE_DRIVER", "SQLite")
		os.Setenv("COTIZADOR_QUOTE_BACKOFF", "1,1,3")
		os.Setenv("COTIZADOR_QUOTE_SIMULATOR_LATENCY", "250ms")
		os.Setenv("COTIZADOR_NOTIFICATION_DRIVER", "redis")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
		assert.Equal(t, []int{1, 1, 3}, cfg.Quote.Backoff)
		assert.Equal(t, 250*time.Millisecond, cfg.Quote.SimulatorLatency)
		assert.Equal(t, NotificationRedis, cfg.Notification.Driver)
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("COTIZADOR_STORAGE_DRIVER", "mongo")

		_, err := Load()
		assert.ErrorContains(t, err, "storage.driver")
	})

	t.Run("rejects decreasing backoff", func(t *testing.T) {
		clearEnv()
		os.Setenv("COTIZADOR_QUOTE_BACKOFF", "5,2")

		_, err := Load()
		assert.ErrorContains(t, err, "non-decreasing")
	})

	t.Run("rejects non numeric backoff", func(t *testing.T) {
		clearEnv()
		os.Setenv("COTIZADOR_QUOTE_BACKOFF", "two,five")

		_, err := Load()
		assert.ErrorContains(t, err, "quote.backoff")
	})

	t.Run("production postgres requires password and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("COTIZADOR_APP_ENV", "production")

		_, err := Load()
		assert.ErrorContains(t, err, "database.password")

		os.Setenv("COTIZADOR_DATABASE_PASSWORD", "secret")
		_, err = Load()
		assert.ErrorContains(t, err, "sslmode")

		os.Setenv("COTIZADOR_DATABASE_SSLMODE", "require")
		_, err = Load()
		assert.NoError(t, err)
	})

	t.Run("production dynamodb skips database checks", func(t *testing.T) {
		clearEnv()
		os.Setenv("COTIZADOR_APP_ENV", "production")
		os.Setenv("COTIZADOR_STORAGE_DRIVER", "dynamodb")

		_, err := Load()
		assert.NoError(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "cotizador", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/cotizador?sslmode=disable", d.DSN())
}
