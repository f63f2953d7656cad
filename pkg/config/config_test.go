package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DatasetConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("CASE_TABLE_PATH", "/data/cases.csv")
	os.Setenv("DISEASE_PROFILES_PATH", "/data/profiles.json")
	os.Setenv("PROFILE_SOURCE", "postgres")
	defer func() {
		os.Unsetenv("CASE_TABLE_PATH")
		os.Unsetenv("DISEASE_PROFILES_PATH")
		os.Unsetenv("PROFILE_SOURCE")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "/data/cases.csv", cfg.Dataset.CaseTablePath)
	assert.Equal(t, "/data/profiles.json", cfg.Dataset.DiseaseProfilesPath)
	assert.Equal(t, "postgres", cfg.Dataset.ProfileSource)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("CASE_TABLE_PATH")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("OTEL_ENABLED")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "data/disease_symptom_cases.csv", cfg.Dataset.CaseTablePath)
	assert.Equal(t, "file", cfg.Dataset.ProfileSource)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-port")
	defer os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "dxly",
		Password: "secret",
		Database: "dxly",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=dxly password=secret dbname=dxly sslmode=disable", cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
