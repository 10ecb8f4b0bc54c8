package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())

	require.NoError(t, Init())
	c := Get()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, int64(824), c.DefaultChainID)
	assert.Equal(t, 15*time.Second, c.RPCTimeout)
	assert.Equal(t, 2*time.Minute, c.ReceiptTimeout)
	assert.Equal(t, 1<<18, c.ScryptN)
	assert.True(t, c.PricesEnabled)
}

func TestInitOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DEFAULT_CHAIN_ID", "56")
	t.Setenv("RPC_TIMEOUT", "3s")
	t.Setenv("PRICES_ENABLED", "false")

	require.NoError(t, Init())
	assert.Equal(t, "9999", GetPort())
	assert.Equal(t, int64(56), Get().DefaultChainID)
	assert.Equal(t, 3*time.Second, Get().RPCTimeout)
	assert.False(t, Get().PricesEnabled)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }},
		{name: "zero chain", mutate: func(c *Config) { c.DefaultChainID = 0 }},
		{name: "negative cooldown", mutate: func(c *Config) { c.SendCooldown = -1 }},
		{name: "scrypt not power of two", mutate: func(c *Config) { c.ScryptN = 1000 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{DataDir: "x", DefaultChainID: 1, ScryptN: 1024}
			require.NoError(t, c.Validate())
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
