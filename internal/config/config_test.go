package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin123", cfg.AdminPassword)
}

func TestLoad_ServerPortFallback(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "8080")
	assert.Equal(t, "8080", Load().ServerPort)

	// PORT wins over SERVER_PORT when both are set
	t.Setenv("PORT", "9000")
	assert.Equal(t, "9000", Load().ServerPort)
}
