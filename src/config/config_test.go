package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	cfg, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
	assert.Equal(t, "chirper", cfg.Mongo.Database)
	assert.Equal(t, "chirper-media", cfg.S3.Bucket)
	assert.False(t, cfg.S3.UseSSL)
	assert.False(t, cfg.IsProduction())
}

func TestReadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MONGO_DB", "chirper_test")
	t.Setenv("S3_USE_SSL", "true")

	cfg, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "chirper_test", cfg.Mongo.Database)
	assert.True(t, cfg.S3.UseSSL)
	assert.True(t, cfg.IsProduction())
}
