package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Varsayilanlar(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "ik.notifications", cfg.Rabbit.NotificationQueue)
	assert.NotEmpty(t, cfg.JWT.Secret, "geliştirmede boş secret yerine varsayılan kullanılmalı")
}

func TestLoad_OrtamDegiskenleriOnceliklidir(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "MONGO")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}

func TestLoad_ProductionSecretZorunlu(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BilinmeyenSurucu(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNParolaKodlanir(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ik", Password: "p@ss:w/rd", DBName: "ik", SSLMode: "disable"}
	assert.Equal(t, "postgres://ik:p%40ss%3Aw%2Frd@db:5432/ik?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestHTTPConfig_AllowedOriginList(t *testing.T) {
	c := HTTPConfig{AllowedOrigins: " http://a.com, ,http://b.com "}
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, c.AllowedOriginList())
}
