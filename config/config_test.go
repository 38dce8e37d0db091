package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: rideauth
  log:
    level: debug
    pretty: true
http:
  port: 8080
  timeouts:
    readTimeout: 5s
jwt:
  secret: file_secret
  expirySeconds: 1800
cookie:
  name: jwtToken
  secure: true
auth:
  bcryptCost: 10
  publicPaths:
    - /health
`

func writeConfigFile(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
}

func TestNew_LoadsYAML(t *testing.T) {
	writeConfigFile(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "rideauth", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, "file_secret", cfg.JWT.Secret)
	assert.Equal(t, 1800, cfg.JWT.ExpirySeconds)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL())
	assert.Equal(t, "jwtToken", cfg.Cookie.Name)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"/health"}, cfg.Auth.PublicPaths)
}

func TestNew_EnvOverridesFile(t *testing.T) {
	writeConfigFile(t)
	t.Setenv("JWT_SECRET", "env_secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "env_secret", cfg.JWT.Secret)
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	minimal := "jwt:\n  secret: s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(minimal), 0o600))
	t.Chdir(dir)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "jwtToken", cfg.Cookie.Name)
	assert.Equal(t, 3600, cfg.JWT.ExpirySeconds)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestNew_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := New()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
