package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultGitHubAPIURL, cfg.Platforms.GitHub.APIURL)
	assert.Equal(t, DefaultGitHubWebURL, cfg.Platforms.GitHub.WebURL)
	assert.Equal(t, DefaultBitbucketAPIURL, cfg.Platforms.Bitbucket.APIURL)
	assert.Equal(t, DefaultBitbucketWebURL, cfg.Platforms.Bitbucket.WebURL)
	assert.Equal(t, DefaultSourceForgeWebURL, cfg.Platforms.SourceForge.WebURL)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
logger:
  level: debug
http_client:
  timeout: 5s
  tls_client_config:
    verify: false
platforms:
  github:
    api_url: http://localhost:8080/
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5*time.Second, cfg.HTTPClient.Timeout)
	assert.False(t, GetBoolValue(cfg.HTTPClient.TLSClientConfig, "Verify", true))
	assert.Equal(t, "http://localhost:8080/", cfg.Platforms.GitHub.APIURL)
	assert.Equal(t, DefaultGitHubWebURL, cfg.Platforms.GitHub.WebURL)
}

func TestLoadConfigRejectsDirectory(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestEnvOverridesCredentials(t *testing.T) {
	t.Setenv("FBISSUE_BITBUCKET_USERNAME", "alice")
	t.Setenv("FBISSUE_BITBUCKET_TOKEN", "secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.Platforms.Bitbucket.Username)
	assert.Equal(t, "secret", cfg.Platforms.Bitbucket.Token)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative timeout", mutate: func(c *Config) { c.HTTPClient.Timeout = -time.Second }, wantErr: true},
		{name: "timeout too long", mutate: func(c *Config) { c.HTTPClient.Timeout = 2 * time.Minute }, wantErr: true},
		{name: "proxy port out of range", mutate: func(c *Config) { c.HTTPClient.Proxy = Proxy{Host: "proxy", Port: 70000} }, wantErr: true},
		{name: "proxy without scheme", mutate: func(c *Config) { c.HTTPClient.Proxy = Proxy{Host: "proxy", Port: 3128} }},
		{name: "relative api url", mutate: func(c *Config) { c.Platforms.GitHub.APIURL = "api.github.com" }, wantErr: true},
		{name: "bitbucket username without token", mutate: func(c *Config) { c.Platforms.Bitbucket.Username = "bob" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "fallback", SetThen("", "fallback"))
	assert.Equal(t, "value", SetThen("value", "fallback"))
	assert.Equal(t, 10*time.Second, SetThen(time.Duration(0), 10*time.Second))
}
