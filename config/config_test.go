package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
system:
  id: "alpha"
delegate:
  listen_addr: "0.0.0.0:7700"
  dial_timeout_ms: 5000
  max_conns_per_peer: 10
consul:
  addr: "127.0.0.1:8500"
redis:
  addr: "127.0.0.1:6379"
nsq:
  nsqd_addr: "127.0.0.1:4150"
  topic: "fluxion.notify"
`

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadParsesEveryField(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "alpha", cfg.System.ID)
	assert.Equal(t, "0.0.0.0:7700", cfg.Delegate.ListenAddr)
	assert.Equal(t, 5000, cfg.Delegate.DialTimeoutMS)
	assert.Equal(t, 10, cfg.Delegate.MaxConnsPerPeer)
	assert.Equal(t, "127.0.0.1:8500", cfg.Consul.Addr)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "127.0.0.1:4150", cfg.NSQ.NSQDAddr)
	assert.Equal(t, "fluxion.notify", cfg.NSQ.Topic)
}

func TestLoadRejectsMissingSystemID(t *testing.T) {
	_, err := Load(writeTempConfig(t, "delegate:\n  listen_addr: \"0.0.0.0:7700\"\n"))
	assert.Error(t, err)
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
