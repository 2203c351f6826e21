package config

import (
	"crypto/tls"
	"time"
)

const (
	DefaultGitHubAPIURL      = "https://api.github.com/"
	DefaultGitHubWebURL      = "https://github.com"
	DefaultBitbucketAPIURL   = "https://api.bitbucket.org"
	DefaultBitbucketWebURL   = "https://bitbucket.org"
	DefaultSourceForgeWebURL = "https://sourceforge.net"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	Timeout         time.Duration
	TLSClientConfig *tls.Config
	Proxy           string
}

// RestyHttpClientConfig holds additional configuration settings for the resty http client.
type RestyHttpClientConfig struct {
	BaseHTTPConfig
	Debug bool
}

// General base configuration applicable to all HTTP clients.
func DefaultHttpConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		Timeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12, // Enforce a minimum TLS version
		},
		Proxy: "",
	}
}

// DefaultRestyConfig function returns a specific http config to Resty
func DefaultRestyConfig() RestyHttpClientConfig {
	baseConfig := DefaultHttpConfig()
	return RestyHttpClientConfig{
		BaseHTTPConfig: baseConfig,
		Debug:          false,
	}
}

// ApplyDefaults fills unset platform endpoints.
func ApplyDefaults(cfg *Config) {
	p := &cfg.Platforms
	p.GitHub.APIURL = SetThen(p.GitHub.APIURL, DefaultGitHubAPIURL)
	p.GitHub.WebURL = SetThen(p.GitHub.WebURL, DefaultGitHubWebURL)
	p.Bitbucket.APIURL = SetThen(p.Bitbucket.APIURL, DefaultBitbucketAPIURL)
	p.Bitbucket.WebURL = SetThen(p.Bitbucket.WebURL, DefaultBitbucketWebURL)
	p.SourceForge.WebURL = SetThen(p.SourceForge.WebURL, DefaultSourceForgeWebURL)
}
