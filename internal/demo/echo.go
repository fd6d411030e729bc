// Package demo implements a minimal actor used to exercise a running node
// end to end: it answers Ping with Pong and keeps a running count of how
// many messages it has handled, the way a hand-built integration check
// would without needing a second real workload on hand.
package demo

import (
	"context"
	"sync"

	"github.com/phuhao00/fluxion/actor"
)

// Ping is the message EchoActor answers.
type Ping struct {
	Text string
}

// Pong is EchoActor's response to a Ping.
type Pong struct {
	Text  string
	Count uint64
}

// EchoActor implements actor.Handler[Ping, Pong].
type EchoActor struct {
	mu      sync.Mutex
	handled uint64
}

func NewEchoActor() *EchoActor { return &EchoActor{} }

func (a *EchoActor) Initialize(context.Context) error { return nil }
func (a *EchoActor) Deinitialize(context.Context)      {}

func (a *EchoActor) Handle(_ context.Context, msg Ping, _ *actor.Context) (Pong, error) {
	a.mu.Lock()
	a.handled++
	count := a.handled
	a.mu.Unlock()
	return Pong{Text: msg.Text, Count: count}, nil
}

// Handled returns how many Ping messages the actor has answered so far.
func (a *EchoActor) Handled() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handled
}
