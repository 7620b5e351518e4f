package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/resgate/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOLANA_FEE_PAYER_PRIVATE_KEY", "key")
	for _, key := range []string{"PORT", "LISTENER_POLL_INTERVAL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ListenerPollInterval)
	assert.Equal(t, "key", cfg.SolanaFeePayerPrivateKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOLANA_FEE_PAYER_PRIVATE_KEY", "key")
	t.Setenv("PORT", "9090")
	t.Setenv("LISTENER_POLL_INTERVAL", "2s")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.ListenerPollInterval)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("SOLANA_FEE_PAYER_PRIVATE_KEY", "")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("SOLANA_FEE_PAYER_PRIVATE_KEY", "key")
	t.Setenv("LISTENER_POLL_INTERVAL", "soon")
	_, err = config.Load()
	assert.Error(t, err)
}
