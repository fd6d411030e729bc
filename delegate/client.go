package delegate

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phuhao00/fluxion/actor"
	"github.com/phuhao00/fluxion/wire"
)

const (
	defaultMaxConnsPerPeer = 10
	defaultDialTimeout     = 5 * time.Second
)

// Client pools TCP connections per peer address and performs the
// request/response round trip over the wire framing.
type Client struct {
	mu          sync.Mutex
	pools       map[string]chan net.Conn
	maxPerPeer  int
	dialTimeout time.Duration
}

// NewClient creates a Client. maxPerPeer <= 0 uses
// defaultMaxConnsPerPeer; dialTimeout <= 0 uses defaultDialTimeout.
func NewClient(maxPerPeer int, dialTimeout time.Duration) *Client {
	if maxPerPeer <= 0 {
		maxPerPeer = defaultMaxConnsPerPeer
	}
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &Client{
		pools:       make(map[string]chan net.Conn),
		maxPerPeer:  maxPerPeer,
		dialTimeout: dialTimeout,
	}
}

func (c *Client) pool(addr string) chan net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pools[addr]
	if !ok {
		p = make(chan net.Conn, c.maxPerPeer)
		c.pools[addr] = p
	}
	return p
}

func (c *Client) acquire(addr string) (net.Conn, error) {
	p := c.pool(addr)
	select {
	case conn := <-p:
		return conn, nil
	default:
		return net.DialTimeout("tcp", addr, c.dialTimeout)
	}
}

func (c *Client) release(addr string, conn net.Conn, healthy bool) {
	if conn == nil {
		return
	}
	if !healthy {
		conn.Close()
		return
	}
	select {
	case c.pool(addr) <- conn:
	default:
		conn.Close()
	}
}

// Call sends a request to addr and waits for its matching response.
func (c *Client) Call(ctx context.Context, addr string, actorID uint64, messageTypeID string, payload []byte) ([]byte, error) {
	conn, err := c.acquire(addr)
	if err != nil {
		return nil, fmt.Errorf("delegate: dial %s: %w", addr, err)
	}

	healthy := true
	defer func() { c.release(addr, conn, healthy) }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	req := wire.Request{
		RequestID:     uuid.New(),
		ActorID:       actorID,
		MessageTypeID: messageTypeID,
		Payload:       payload,
	}
	if err := wire.WriteRequest(conn, req); err != nil {
		healthy = false
		return nil, fmt.Errorf("delegate: write request: %w", err)
	}

	resp, err := wire.ReadResponse(conn)
	if err != nil {
		healthy = false
		return nil, fmt.Errorf("delegate: read response: %w", err)
	}
	if resp.RequestID != req.RequestID {
		healthy = false
		return nil, fmt.Errorf("delegate: response id mismatch from %s", addr)
	}
	if resp.Err != "" {
		if resp.ErrKind == wire.ErrKindNotRegistered {
			return nil, fmt.Errorf("%w: %s", actor.ErrForeignNotFound, resp.Err)
		}
		return nil, fmt.Errorf("delegate: remote error from %s: %s", addr, resp.Err)
	}
	return resp.Payload, nil
}

// CloseAll closes every pooled idle connection.
func (c *Client) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, p := range c.pools {
		close(p)
		for conn := range p {
			conn.Close()
		}
		delete(c.pools, addr)
	}
}
