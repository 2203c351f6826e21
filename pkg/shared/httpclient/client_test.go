package httpclient

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/kmindi/fbissueexport/pkg/shared/config"
)

func TestApplyHttpClientConfigDefaults(t *testing.T) {
	cfg := applyHttpClientConfig(nil)

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Empty(t, cfg.Proxy)
}

func TestApplyHttpClientConfigOverrides(t *testing.T) {
	verify := false
	debug := true
	cfg := applyHttpClientConfig(&config.HTTPClient{
		Debug:           &debug,
		Timeout:         3 * time.Second,
		TLSClientConfig: config.TLSClientConfig{Verify: &verify},
		Proxy:           config.Proxy{Host: "http://proxy.local", Port: 3128},
	})

	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
}

func TestInitializeRestyClientTimeout(t *testing.T) {
	client := InitializeRestyClient(hclog.NewNullLogger(), &config.Config{})

	assert.Equal(t, 10*time.Second, client.GetClient().Timeout)
	assert.Equal(t, 0, client.RetryCount)
}
