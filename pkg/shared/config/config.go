package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigFile is used when neither --config nor FBISSUE_CONFIG is set.
const DefaultConfigFile = "config.yml"

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Platforms  Platforms  `yaml:"platforms"`
}

type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

type HTTPClient struct {
	Debug           *bool           `yaml:"debug"`
	Timeout         time.Duration   `yaml:"timeout"`
	TLSClientConfig TLSClientConfig `yaml:"tls_client_config"`
	Proxy           Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Platforms holds per-platform endpoints and optional static credentials.
type Platforms struct {
	GitHub      GitHubPlatform      `yaml:"github"`
	Bitbucket   BitbucketPlatform   `yaml:"bitbucket"`
	SourceForge SourceForgePlatform `yaml:"sourceforge"`
}

type GitHubPlatform struct {
	APIURL string `yaml:"api_url"`
	WebURL string `yaml:"web_url"`
	Token  string `yaml:"token"`
}

type BitbucketPlatform struct {
	APIURL   string `yaml:"api_url"`
	WebURL   string `yaml:"web_url"`
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
}

type SourceForgePlatform struct {
	WebURL string `yaml:"web_url"`
}

// ValidateConfigPath checks that path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML configuration from configPath. A missing file is
// not an error: the returned config then carries only defaults and
// environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(configPath); err == nil {
		if err := LoadYAML(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	ApplyDefaults(cfg)
	UpdateConfigFromEnv(cfg)
	return cfg, nil
}
