package config

import "os"

// UpdateConfigFromEnv sets configuration values from environment variables, if they are set.
func UpdateConfigFromEnv(cfg *Config) {
	envVars := map[string]*string{
		"FBISSUE_LOG_LEVEL":          &cfg.Logger.Level,
		"FBISSUE_GITHUB_TOKEN":       &cfg.Platforms.GitHub.Token,
		"FBISSUE_BITBUCKET_USERNAME": &cfg.Platforms.Bitbucket.Username,
		"FBISSUE_BITBUCKET_TOKEN":    &cfg.Platforms.Bitbucket.Token,
	}

	for env, val := range envVars {
		if v := os.Getenv(env); v != "" {
			*val = v
		}
	}
}
