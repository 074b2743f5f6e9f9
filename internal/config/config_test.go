package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"development defaults pass", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"production with default jwt secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"production with short jwt secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"production with default db password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production fully configured", func(c *Config) {
			c.Env = "production"
		}, false},
		{"prod alias behaves like production", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        "development",
				Port:       "5000",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "secure-password",
				DBSSLMode:  "require",
				RedisURL:   "localhost:6379",
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("UPLOAD_DIR")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("UPLOAD_DIR", t.TempDir())

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "development", c.Env)
	assert.NotEqual(t, "/tmp/investkoree/upload", c.UploadDir)
	assert.Equal(t, "5000", c.Port)
}
