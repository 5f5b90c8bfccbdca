package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAWS_APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, 15, cfg.CatalogConfig.MaxAge)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadConfig.MaxBytes)
	assert.Equal(t, 15*time.Minute, cfg.JWTConfig.AccessTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaConfig.Brokers)
	assert.NotEmpty(t, cfg.JWTConfig.Secret)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PAWS_APP_ENV", "production")
	t.Setenv("PAWS_SERVICE_PORT", ":9000")
	t.Setenv("PAWS_JWT_SECRET", "s3cret")
	t.Setenv("PAWS_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("PAWS_CATALOG_MAX_AGE", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTConfig.Secret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, 20, cfg.CatalogConfig.MaxAge)
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("PAWS_APP_ENV", "production")
	t.Setenv("PAWS_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("PAWS_APP_ENV", "development")
	t.Setenv("PAWS_STORE_DRIVER", "firestore")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "paws", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=paws sslmode=disable", c.DSN())
}
