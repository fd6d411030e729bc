package delegate

import (
	"context"
	"fmt"
	"sync"
)

// LocalInvoker runs one registered (actor id, message type id) pair
// against a raw payload and returns a raw response payload. It is the
// server side's type-erased analogue of actor.Send: built once per
// message type at registration time, so the connection handler never
// needs to know the concrete M/R either.
type LocalInvoker func(ctx context.Context, payload []byte) ([]byte, error)

type registrationKey struct {
	actorID       uint64
	messageTypeID string
}

// Registration is the server-side table a TCPDelegate consults for
// inbound requests: which local invoker answers a given (actor id,
// message type id) pair. RegisterInvoker is usually called once per
// Handler implementation an actor exposes foreign callers, right after
// the actor itself is installed with actor.Add.
type Registration struct {
	mu       sync.RWMutex
	invokers map[registrationKey]LocalInvoker
}

// NewRegistration creates an empty registration table.
func NewRegistration() *Registration {
	return &Registration{invokers: make(map[registrationKey]LocalInvoker)}
}

// RegisterInvoker installs invoker for (actorID, messageTypeID),
// overwriting any previous registration for the same pair.
func (r *Registration) RegisterInvoker(actorID uint64, messageTypeID string, invoker LocalInvoker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invokers[registrationKey{actorID, messageTypeID}] = invoker
}

// Unregister removes any invoker registered for (actorID, messageTypeID).
func (r *Registration) Unregister(actorID uint64, messageTypeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invokers, registrationKey{actorID, messageTypeID})
}

// UnregisterActor removes every registration for actorID, so stale entries
// for a killed actor don't accumulate. Killing an actor does not call it.
func (r *Registration) UnregisterActor(actorID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.invokers {
		if k.actorID == actorID {
			delete(r.invokers, k)
		}
	}
}

// Invoke runs the invoker registered for (actorID, messageTypeID), or
// returns ErrNotRegistered if there is none.
func (r *Registration) Invoke(ctx context.Context, actorID uint64, messageTypeID string, payload []byte) ([]byte, error) {
	r.mu.RLock()
	invoker, ok := r.invokers[registrationKey{actorID, messageTypeID}]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: actor %d message %q", ErrNotRegistered, actorID, messageTypeID)
	}
	return invoker(ctx, payload)
}
