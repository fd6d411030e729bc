package delegate

import (
	"fmt"

	consul "github.com/hashicorp/consul/api"
)

// servicePrefix names the Consul service a system with a given name
// registers itself under, so multiple unrelated Consul-backed
// applications can share one Consul without colliding on service names.
const servicePrefix = "fluxion-"

// Directory resolves a system name to a dialable address via Consul
// service discovery.
type Directory struct {
	client *consul.Client
}

// NewDirectory creates a Directory backed by a Consul agent at addr. An
// empty addr uses the client library's own default (the local agent).
func NewDirectory(addr string) (*Directory, error) {
	cfg := consul.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	client, err := consul.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("delegate: new consul client: %w", err)
	}
	return &Directory{client: client}, nil
}

// Register advertises this process as the home of the named system at
// host:port, so peers' Resolve calls can find it.
func (d *Directory) Register(system, id, host string, port int) error {
	reg := &consul.AgentServiceRegistration{
		ID:      id,
		Name:    servicePrefix + system,
		Address: host,
		Port:    port,
	}
	return d.client.Agent().ServiceRegister(reg)
}

// Deregister removes this process's registration for id.
func (d *Directory) Deregister(id string) error {
	return d.client.Agent().ServiceDeregister(id)
}

// Resolve returns a dialable "host:port" for one healthy instance of
// system. When more than one instance is healthy, it returns the first
// entry Consul's health check API reports; load distribution across
// peers is left to a future revision.
func (d *Directory) Resolve(system string) (string, error) {
	entries, _, err := d.client.Health().Service(servicePrefix+system, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("delegate: discover %q: %w", system, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: %s", ErrPeerUnknown, system)
	}
	svc := entries[0].Service
	addr := svc.Address
	if addr == "" && entries[0].Node != nil {
		addr = entries[0].Node.Address
	}
	return fmt.Sprintf("%s:%d", addr, svc.Port), nil
}
