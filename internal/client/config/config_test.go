package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func noDotEnv(t *testing.T) {
	t.Helper()
	orig := loadDotEnv
	loadDotEnv = func() error { return nil }
	t.Cleanup(func() { loadDotEnv = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		ServerEndpointAddr:  "127.0.0.1:50051",
		OnlineCheckInterval: 3 * time.Second,
		RequestTimeout:      10 * time.Second,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnv(t *testing.T) {
	noDotEnv(t)
	t.Setenv("PANTRY_SERVER_ADDR", "pantry.internal:443")
	t.Setenv("PANTRY_ACCESS_TOKEN", "env-token")

	c := &Config{ServerEndpointAddr: "default:1"}
	parseEnv(c)

	assert.Equal(t, "pantry.internal:443", c.ServerEndpointAddr)
	assert.Equal(t, "env-token", c.AccessToken)
}

func TestParseEnv_EmptyKeepsValues(t *testing.T) {
	noDotEnv(t)
	t.Setenv("PANTRY_SERVER_ADDR", "")
	t.Setenv("PANTRY_ACCESS_TOKEN", "")

	c := &Config{ServerEndpointAddr: "default:1", AccessToken: "keep"}
	parseEnv(c)

	assert.Equal(t, "default:1", c.ServerEndpointAddr)
	assert.Equal(t, "keep", c.AccessToken)
}

func TestLoadConfig_Precedence(t *testing.T) {
	noDotEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr": "json:2",
		"request_timeout":      "4s",
	})
	t.Setenv("PANTRY_SERVER_ADDR", "env:1")
	t.Setenv("PANTRY_ACCESS_TOKEN", "env-token")
	t.Setenv(ConfigFileEnv, "")
	os.Args = []string{"pkcli", "-c", path, "-a", "flag:3"}

	c := LoadConfig()

	assert.Equal(t, "flag:3", c.ServerEndpointAddr)
	assert.Equal(t, "env-token", c.AccessToken)
	assert.Equal(t, 4*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}
