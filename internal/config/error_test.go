package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Empty(t *testing.T) {
	e := &ConfigError{}
	assert.False(t, e.HasErrors())
	assert.Empty(t, e.Error())
}

func TestConfigError_Format(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/homefeed/config.toml",
		Missing: []string{"JELLYFIN_TOKEN", "JELLYFIN_URL"},
		Errors:  []string{"jellyfin.url: required"},
	}
	assert.True(t, e.HasErrors())
	assert.Equal(t, "config /etc/homefeed/config.toml:\n"+
		"missing environment variables: JELLYFIN_TOKEN, JELLYFIN_URL\n"+
		"validation failed:\n"+
		"  - jellyfin.url: required", e.Error())
}
