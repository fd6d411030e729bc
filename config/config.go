package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SystemConfig names this process's own actor system.
type SystemConfig struct {
	ID string `yaml:"id"`
}

// DelegateConfig configures the TCP boundary a process listens on and dials
// its peers through.
type DelegateConfig struct {
	ListenAddr      string `yaml:"listen_addr"`
	AdvertiseHost   string `yaml:"advertise_host,omitempty"`
	AdvertisePort   int    `yaml:"advertise_port,omitempty"`
	DialTimeoutMS   int    `yaml:"dial_timeout_ms,omitempty"`
	MaxConnsPerPeer int    `yaml:"max_conns_per_peer,omitempty"`
}

// ConsulConfig points at the Consul agent backing service discovery.
type ConsulConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig points at the Redis instance backing resolution caching.
type RedisConfig struct {
	Addr          string   `yaml:"addr"`
	Password      string   `yaml:"password,omitempty"`
	DB            int      `yaml:"db,omitempty"`
	MasterName    string   `yaml:"master_name,omitempty"`
	SentinelAddrs []string `yaml:"sentinel_addrs,omitempty"`
}

// NSQConfig points the notify package's Client at its nsqd instance(s).
type NSQConfig struct {
	NSQDAddr      string   `yaml:"nsqd_addr,omitempty"`
	NSQDAddresses []string `yaml:"nsqd_addresses,omitempty"`
	Topic         string   `yaml:"topic,omitempty"`
}

// Config is the top-level YAML document a process loads at startup.
type Config struct {
	System   SystemConfig   `yaml:"system"`
	Delegate DelegateConfig `yaml:"delegate"`
	Consul   ConsulConfig   `yaml:"consul"`
	Redis    RedisConfig    `yaml:"redis"`
	NSQ      NSQConfig      `yaml:"nsq"`
}

// Load reads and parses the YAML document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if cfg.System.ID == "" {
		return nil, fmt.Errorf("config: system.id is required")
	}
	return &cfg, nil
}
