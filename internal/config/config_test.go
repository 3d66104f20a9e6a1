package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/furnimart?sslmode=disable")
	t.Setenv("PORT", "8081")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "postgres://localhost/furnimart?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "rzp_test_key", cfg.Razorpay.KeyID)
	assert.Equal(t, "rzp_secret", cfg.Razorpay.KeySecret)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/furnimart")

	_, err := LoadConfig()
	require.Error(t, err, "process must refuse to start without a signing secret")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_MissingDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_RazorpayOptional(t *testing.T) {
	var cfg Config
	cfg.JWT.Secret = "s"
	cfg.Database.DSN = "postgres://localhost/db"

	assert.NoError(t, cfg.Validate(), "missing gateway credentials only disable payment endpoints")
}
