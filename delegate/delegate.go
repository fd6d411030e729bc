// Package delegate implements the actor runtime's cross-system boundary:
// a TCP-based actor.Delegate backed by Consul service discovery, a Redis
// resolution cache, and the length-prefixed wire framing in package wire.
package delegate

import (
	"context"

	"github.com/phuhao00/fluxion/actor"
)

// TCPDelegate resolves foreign identifiers to peers over Consul (cached
// in Redis) and carries requests to them over pooled TCP connections. It
// also runs the inbound Server side so it can answer the same protocol
// from its own registered actors.
type TCPDelegate struct {
	system       string
	directory    *Directory
	cache        *Cache
	client       *Client
	serializer   actor.Serializer
	registration *Registration
	server       *Server
}

// Config bundles the pieces a TCPDelegate composes from. Serializer
// accepts any value satisfying actor.Serializer's method set; package
// wire's ProtoSerializer and GobSerializer both qualify without any
// explicit conversion, since interface satisfaction in Go is structural.
type Config struct {
	System       string
	Directory    *Directory
	Cache        *Cache // optional; nil disables caching
	Client       *Client
	Serializer   actor.Serializer
	Registration *Registration
}

// New assembles a TCPDelegate from Config, starting its inbound server.
func New(cfg Config) *TCPDelegate {
	d := &TCPDelegate{
		system:       cfg.System,
		directory:    cfg.Directory,
		cache:        cfg.Cache,
		client:       cfg.Client,
		serializer:   cfg.Serializer,
		registration: cfg.Registration,
	}
	d.server = NewServer(cfg.Registration)
	return d
}

// Listen starts the inbound server and registers this system in the
// directory under id, advertising host:port as where it can be reached.
func (d *TCPDelegate) Listen(listenAddr, advertiseHost string, advertisePort int, instanceID string) error {
	go func() {
		_ = d.server.Listen(listenAddr)
	}()
	return d.directory.Register(d.system, instanceID, advertiseHost, advertisePort)
}

// Close stops the inbound server, deregisters this instance, and closes
// pooled outbound connections.
func (d *TCPDelegate) Close(instanceID string) {
	_ = d.server.Close()
	_ = d.directory.Deregister(instanceID)
	d.client.CloseAll()
}

// Serializer satisfies actor.Delegate.
func (d *TCPDelegate) Serializer() actor.Serializer {
	return d.serializer
}

// ResolveForeign satisfies actor.Delegate: it resolves target.System to
// an address (cache first, Consul on a miss) and returns a sender bound
// to that address and actor id.
func (d *TCPDelegate) ResolveForeign(ctx context.Context, target actor.ForeignTarget) (actor.RawRemoteSender, bool) {
	addr, ok := d.resolve(ctx, target.System)
	if !ok {
		return nil, false
	}
	return &tcpRawSender{client: d.client, addr: addr, actorID: target.ActorID}, true
}

func (d *TCPDelegate) resolve(ctx context.Context, system string) (string, bool) {
	if d.cache != nil {
		if addr, ok := d.cache.Lookup(ctx, system); ok {
			return addr, true
		}
	}

	addr, err := d.directory.Resolve(system)
	if err != nil {
		return "", false
	}

	if d.cache != nil {
		_ = d.cache.Store(ctx, system, addr)
	}
	return addr, true
}

type tcpRawSender struct {
	client  *Client
	addr    string
	actorID uint64
}

func (s *tcpRawSender) SendRaw(ctx context.Context, messageTypeID string, payload []byte) ([]byte, error) {
	return s.client.Call(ctx, s.addr, s.actorID, messageTypeID, payload)
}
