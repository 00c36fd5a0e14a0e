package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConf_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv("TRACKER_API_BASE_URL", "https://tracker.example.com/api/v1")

	cfg := NewConf("")
	assert.Equal(t, "https://tracker.example.com/api/v1", cfg.API.BaseURL)

	// 其余默认值不受影响
	assert.False(t, cfg.Realtime.Reconnect)
	assert.Equal(t, 8910, cfg.SSO.RedirectPort)
}
