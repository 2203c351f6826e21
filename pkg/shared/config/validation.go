package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidatePlatformsConfig(&cfg.Platforms); err != nil {
		return fmt.Errorf("YAML global config: platforms directive is invalid: %w", err)
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if err := validateDuration(httpConfig.Timeout, "timeout", 100*time.Second); err != nil {
		return err
	}
	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}
	return nil
}

// ValidatePlatformsConfig checks that every configured endpoint is an absolute http(s) URL.
func ValidatePlatformsConfig(p *Platforms) error {
	if p == nil {
		return fmt.Errorf("platforms configuration is nil")
	}
	endpoints := map[string]string{
		"github.api_url":      p.GitHub.APIURL,
		"github.web_url":      p.GitHub.WebURL,
		"bitbucket.api_url":   p.Bitbucket.APIURL,
		"bitbucket.web_url":   p.Bitbucket.WebURL,
		"sourceforge.web_url": p.SourceForge.WebURL,
	}
	for name, raw := range endpoints {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
		}
	}
	if (p.Bitbucket.Username == "") != (p.Bitbucket.Token == "") {
		return fmt.Errorf("bitbucket username and token must be set together")
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	return validatePort(proxy.Port)
}

// validateHost ensures the proxy host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}
