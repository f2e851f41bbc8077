package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(c, "TIMEOUT", 180))
	assert.Equal(t, 180, GetInt(c, "BAD", 180))
	assert.Equal(t, 180, GetInt(c, "MISSING", 180))
	assert.Equal(t, 180, GetInt(nil, "TIMEOUT", 180))
}

func TestGetBool(t *testing.T) {
	c := map[string]string{
		"CORS_ALLOW_CREDENTIALS": "false",
		"ENABLED":                "1",
		"BAD":                    "yes please",
	}

	assert.False(t, GetBool(c, "CORS_ALLOW_CREDENTIALS", true))
	assert.True(t, GetBool(c, "ENABLED", false))
	assert.True(t, GetBool(c, "BAD", true))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.False(t, GetBool(nil, "ENABLED", false))
}
