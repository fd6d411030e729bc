package actor

import (
	"context"
	"errors"
	"sync"
)

// echoActor answers Ping with Pong and keeps a running count of messages it
// has handled, used across the package's tests to exercise ordering and
// lifecycle without pulling in a second test-only package.
type echoActor struct {
	mu    sync.Mutex
	count int
	seen  []string
}

type Ping struct{ Text string }
type Pong struct{ Text string }

func (a *echoActor) Initialize(context.Context) error { return nil }
func (a *echoActor) Deinitialize(context.Context)      {}

func (a *echoActor) Handle(_ context.Context, msg Ping, _ *Context) (Pong, error) {
	a.mu.Lock()
	a.count++
	a.seen = append(a.seen, msg.Text)
	a.mu.Unlock()
	return Pong{Text: msg.Text}, nil
}

func (a *echoActor) Handled() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// Seen returns the Text of every Ping handled so far, in handling order.
func (a *echoActor) Seen() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.seen...)
}

// failingInitActor always fails Initialize, used to verify Add never
// installs it.
type failingInitActor struct{}

var errInitBoom = errors.New("boom")

func (failingInitActor) Initialize(context.Context) error { return errInitBoom }
func (failingInitActor) Deinitialize(context.Context)      {}

// slowActor blocks in its handler until release is closed, used to test
// caller cancellation and a kill that lands while a handler is running.
type slowActor struct {
	release chan struct{}
}

type Block struct{}
type Unblocked struct{}

func (a *slowActor) Initialize(context.Context) error { return nil }
func (a *slowActor) Deinitialize(context.Context)      {}

func (a *slowActor) Handle(ctx context.Context, _ Block, _ *Context) (Unblocked, error) {
	select {
	case <-a.release:
	case <-ctx.Done():
		return Unblocked{}, ctx.Err()
	}
	return Unblocked{}, nil
}
