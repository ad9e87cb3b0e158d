package app

import (
	"testing"

	"github.com/astucieuxx/atenea-core/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"atenea.mx", "*.atenea.mx", "localhost:*"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://atenea.mx", true},
		{"https://app.atenea.mx", true},
		{"http://localhost:5173", true},
		{"https://atenea.mx.evil.com", false},
		{"https://otradominio.mx", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, originAllowed(patterns, tt.origin), "origin %s", tt.origin)
	}
}

func TestCorsConfigByEnvironment(t *testing.T) {
	t.Run("development allows any origin", func(t *testing.T) {
		cfg := &config.AppConfig{Env: "development"}
		allow := corsConfig(cfg).AllowOriginFunc
		assert.True(t, allow("http://localhost:5173"))
	})

	t.Run("production matches the configured patterns", func(t *testing.T) {
		cfg := &config.AppConfig{Env: "production", AllowedOrigins: []string{"*.atenea.mx"}}
		allow := corsConfig(cfg).AllowOriginFunc
		assert.True(t, allow("https://app.atenea.mx"))
		assert.False(t, allow("https://otradominio.mx"))
	})

	t.Run("production without an allowlist denies everything", func(t *testing.T) {
		cfg := &config.AppConfig{Env: "production"}
		allow := corsConfig(cfg).AllowOriginFunc
		assert.False(t, allow("https://cualquiera.mx"))
	})
}
