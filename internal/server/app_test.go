package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hopekeeper/internal/server/config"
)

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PublicKey = ""

	_, err := NewApp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public key is required")
}

func TestNewApp_WiresServices(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	assert.NotNil(t, app.userService)
	assert.NotNil(t, app.recordService)
	assert.NotNil(t, app.audioService)
	assert.NotEmpty(t, app.catalog.Education.Items)
}
