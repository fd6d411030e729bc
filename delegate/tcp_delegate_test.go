package delegate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phuhao00/fluxion/actor"
)

// These tests exercise the wire-level round trip (Server + Client +
// Registration) over a real localhost TCP connection. Directory and Cache
// are backed by live Consul/Redis and are not exercised here.

func startTestServer(t *testing.T, reg *Registration) *Server {
	t.Helper()
	srv := NewServer(reg)
	go func() {
		_ = srv.Listen("localhost:0")
	}()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, time.Second, time.Millisecond)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func TestForeignRoundTripThroughRegisteredHandler(t *testing.T) {
	reg := NewRegistration()
	reg.RegisterInvoker(7, "test.Ping", func(_ context.Context, payload []byte) ([]byte, error) {
		return append([]byte("pong:"), payload...), nil
	})
	srv := startTestServer(t, reg)

	client := NewClient(0, 0)
	t.Cleanup(client.CloseAll)

	out, err := client.Call(context.Background(), srv.Addr().String(), 7, "test.Ping", []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "pong:hi", string(out))
}

func TestForeignCallToUnregisteredPairFails(t *testing.T) {
	reg := NewRegistration()
	srv := startTestServer(t, reg)

	client := NewClient(0, 0)
	t.Cleanup(client.CloseAll)

	_, err := client.Call(context.Background(), srv.Addr().String(), 99, "test.Missing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, actor.ErrForeignNotFound)
}

func TestForeignCallReusesPooledConnection(t *testing.T) {
	reg := NewRegistration()
	reg.RegisterInvoker(1, "test.Ping", func(context.Context, []byte) ([]byte, error) {
		return []byte("ok"), nil
	})
	srv := startTestServer(t, reg)

	client := NewClient(0, 0)
	t.Cleanup(client.CloseAll)

	for i := 0; i < 5; i++ {
		out, err := client.Call(context.Background(), srv.Addr().String(), 1, "test.Ping", nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", string(out))
	}

	// Sequential calls lease and return the same connection, so exactly one
	// idle connection is left in the pool.
	assert.Equal(t, 1, len(client.pool(srv.Addr().String())))
}
