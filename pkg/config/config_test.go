package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND", "firestore")
	t.Setenv("ADMIN_EMAIL", "bryan@greta.pe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "firestore", cfg.Backend)
	assert.Equal(t, "bryan@greta.pe", cfg.AdminEmail)
	assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND", "postgres")
	t.Setenv("CHECKOUT_DELAY", "150ms")
	t.Setenv("AUTH_RATE_LIMIT", "12")
	t.Setenv("LOCAL_STORE", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Backend)
	assert.Equal(t, 150*time.Millisecond, cfg.CheckoutDelay)
	assert.Equal(t, 12, cfg.AuthRateLimit)
	assert.Equal(t, "redis", cfg.LocalStore)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("CHECKOUT_DELAY", "soon")
	t.Setenv("AUTH_RATE_LIMIT", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
	assert.Equal(t, 5, cfg.AuthRateLimit)
}
