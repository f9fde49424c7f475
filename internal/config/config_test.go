package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/config"
)

func TestParse_ServiceDefaults(t *testing.T) {
	cfg, err := config.Parse(config.Citas, nil)
	require.NoError(t, err)

	assert.Equal(t, "citas", cfg.App.Name)
	assert.Equal(t, "8082", cfg.HTTP.Port)
	assert.Equal(t, config.StorePostgres, cfg.DB.Driver)
	assert.Equal(t, 5*time.Second, cfg.UserService.Timeout)
	assert.Equal(t, "http://localhost:8081", cfg.UserService.URL)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.True(t, cfg.IsLocal())
}

func TestParse_EnvironmentOverridesDefaults(t *testing.T) {
	cfg, err := config.Parse(config.Usuarios, map[string]string{
		"HTTP_PORT":            "9000",
		"APP_ENV":              "PRODUCTION",
		"STORE_DRIVER":         "Memory",
		"USER_SERVICE_TIMEOUT": "250ms",
		"RABBITMQ_ENABLED":     "true",
	})
	require.NoError(t, err)

	assert.Equal(t, "usuarios", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr())
	assert.Equal(t, config.EnvProduction, cfg.App.Env)
	assert.Equal(t, config.StoreMemory, cfg.DB.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.UserService.Timeout)
	assert.True(t, cfg.RabbitMQ.Enabled)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":         {"STORE_DRIVER": "mongo"},
		"bad duration":           {"USER_SERVICE_TIMEOUT": "soon"},
		"zero timeout":           {"USER_SERVICE_TIMEOUT": "0s"},
		"bad rate":               {"RATE_LIMIT_RPS": "fast"},
		"admin without password": {"BOOTSTRAP_ADMIN_EMAIL": "root@mail.com"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(config.Citas, vars)
			assert.Error(t, err)
		})
	}
}

func TestParse_Bootstrap(t *testing.T) {
	cfg, err := config.Parse(config.Usuarios, map[string]string{
		"BOOTSTRAP_ADMIN_EMAIL":    "root@mail.com",
		"BOOTSTRAP_ADMIN_PASSWORD": "rootpw",
	})
	require.NoError(t, err)
	assert.Equal(t, "Administrador", cfg.Bootstrap.AdminName)
	assert.Equal(t, "root@mail.com", cfg.Bootstrap.AdminEmail)
}
