package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDatabaseConfig_Defaults(t *testing.T) {
	config := NewDatabaseConfig()

	assert.Equal(t, "postgres", config.Driver)
	assert.Equal(t, "localhost", config.Host)
	assert.Equal(t, "5432", config.Port)
	assert.Equal(t, "postgres", config.Username)
	assert.Equal(t, "password", config.Password)
	assert.Equal(t, "influencers", config.Database)
	assert.Equal(t, "require", config.SSLMode)
	assert.Equal(t, 25, config.MaxOpenConns)
	assert.Equal(t, 5, config.MaxIdleConns)
	assert.Equal(t, time.Hour, config.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, config.ConnMaxIdleTime)
}

func TestNewDatabaseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USERNAME", "dashboard")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "dashboard_test")
	t.Setenv("DB_SSLMODE", "disable")

	config := NewDatabaseConfig()

	assert.Equal(t, "sqlite", config.Driver)
	assert.Equal(t, "db.internal", config.Host)
	assert.Equal(t, "6543", config.Port)
	assert.Equal(t, "dashboard", config.Username)
	assert.Equal(t, "secret", config.Password)
	assert.Equal(t, "dashboard_test", config.Database)
	assert.Equal(t, "disable", config.SSLMode)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	config := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		Username: "postgres",
		Password: "password",
		Database: "influencers",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=postgres password=password dbname=influencers sslmode=disable"
	assert.Equal(t, expected, config.DSN())
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Run("returns default when unset", func(t *testing.T) {
		assert.Equal(t, "fallback", getEnvOrDefault("UNSET_TEST_KEY", "fallback"))
	})

	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("SET_TEST_KEY", "value")
		assert.Equal(t, "value", getEnvOrDefault("SET_TEST_KEY", "fallback"))
	})

	t.Run("empty value falls back to default", func(t *testing.T) {
		t.Setenv("EMPTY_TEST_KEY", "")
		assert.Equal(t, "fallback", getEnvOrDefault("EMPTY_TEST_KEY", "fallback"))
	})
}

func TestConnectGormDB_SQLite(t *testing.T) {
	config := &DatabaseConfig{
		Driver:          "sqlite",
		Database:        ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	db, err := ConnectGormDB(config)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	assert.NoError(t, MigrateDB(db))

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
}

func TestConnectGormDB_InvalidConnection(t *testing.T) {
	config := &DatabaseConfig{
		Driver:   "postgres",
		Host:     "127.0.0.1",
		Port:     "1",
		Username: "nobody",
		Password: "wrong",
		Database: "missing",
		SSLMode:  "disable",
	}

	_, err := ConnectGormDB(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
