// Package actor implements the registry, mailbox, and handle surface of a
// distributed actor runtime: the addressing and dispatch discipline that
// lets a caller hold a typed reference to a local or foreign actor and
// invoke it uniformly.
package actor

import "context"

// Actor is a user-supplied value that can receive messages. Handlers
// observe a shared reference to the actor (see Handler); any internal
// mutability is the actor's own responsibility, since the mailbox
// serializes calls into it but does not otherwise protect its fields.
type Actor interface {
	// Initialize runs once, in the caller's goroutine, before the actor is
	// installed in the registry. Returning an error aborts Add: no id is
	// consumed and the actor is never reachable.
	Initialize(ctx context.Context) error

	// Deinitialize runs once, during Kill or Shutdown, after the actor is
	// removed from the registry and its mailbox has stopped accepting new
	// messages.
	Deinitialize(ctx context.Context)
}

// Handler is implemented once per message type M an actor type A accepts.
// R is M's declared response type. An actor may implement Handler for any
// number of distinct (M, R) pairs; all of them share the actor's single
// mailbox.
type Handler[M any, R any] interface {
	Actor
	Handle(ctx context.Context, message M, actorCtx *Context) (R, error)
}

// Context is handed to a handler on every dispatched message. It carries
// the actor's own id and a back-reference to the System, so an actor can
// address peers (or itself) without capturing global state. It is built
// fresh for each call; the System it references outlives any one actor, so
// there is no ownership cycle back to the actor's own entry.
type Context struct {
	id     uint64
	system *System
}

func newContext(id uint64, system *System) *Context {
	return &Context{id: id, system: system}
}

// ID returns the id of the actor this context was built for.
func (c *Context) ID() uint64 {
	return c.id
}

// System returns the system the actor is running on.
func (c *Context) System() *System {
	return c.system
}
