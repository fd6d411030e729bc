package actor

import (
	"context"
	"fmt"
	"sync"
)

// entry is the registry's type-erased view of an installed actor. Each
// concrete *registryEntry[A] closes over its own deinitialize call and its
// own Mailbox[A] at Add time, so Kill needs no type parameter: the registry
// never has to know A again once the entry exists.
type entry interface {
	kill(ctx context.Context)
	// mailbox returns the underlying *Mailbox[A] as an any. GetLocal[A] is
	// the one place in the whole send path that asserts it back to
	// *Mailbox[A] — a single downcast, performed when a reference is
	// obtained, never per message.
	mailbox() any
}

type registryEntry[A Actor] struct {
	mb    *Mailbox[A]
	actor A
}

func (e *registryEntry[A]) kill(ctx context.Context) {
	e.mb.stop()
	e.actor.Deinitialize(ctx)
}

func (e *registryEntry[A]) mailbox() any {
	return e.mb
}

// Registry owns the actor table: a mapping from actor id to actor entry,
// protected by a read-write lock so that lookups never block each other or
// the dispatcher goroutines. It is not usually constructed directly; use
// System.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	nextID  uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint64]entry)}
}

// MailboxOption configures the mailbox created for an actor by Add.
type MailboxOption func(*mailboxOptions)

type mailboxOptions struct {
	size int
}

// WithMailboxSize overrides the default mailbox capacity (128) for one Add
// call.
func WithMailboxSize(size int) MailboxOption {
	return func(o *mailboxOptions) {
		o.size = size
	}
}

// AddTo runs a.Initialize in the caller's goroutine; on success it takes the
// write lock, allocates the next strictly-increasing id, installs the
// entry, and starts its dispatcher goroutine. On initialize failure, no id
// is consumed and the actor is never installed.
//
// buildCtx is called with the freshly allocated id to produce the Context
// the dispatcher hands to every one of the actor's handlers; it lets
// System.Add hand the actor a context carrying a back-reference to itself
// without Registry needing to know about System at all.
func AddTo[A Actor](ctx context.Context, r *Registry, a A, buildCtx func(id uint64) *Context, opts ...MailboxOption) (uint64, error) {
	if err := a.Initialize(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrActorInitFailed, err)
	}

	var o mailboxOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	mb := newMailbox[A](o.size)
	e := &registryEntry[A]{mb: mb, actor: a}
	r.entries[id] = e
	mb.wg.Add(1)
	r.mu.Unlock()

	go mb.run(a, buildCtx(id))

	return id, nil
}

// Kill removes the entry for id, if any, stopping its mailbox (future sends
// fail cleanly) and running its deinitialize hook.
func (r *Registry) Kill(ctx context.Context, id uint64) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if ok {
		e.kill(ctx)
	}
}

// GetLocal looks up id and, if the stored entry holds an actor of type A,
// returns a LocalRef to it. If id does not exist, or exists but was
// installed as a different actor type, GetLocal returns (nil, false) — not
// an error, per the tie-break rule.
func GetLocal[A Actor](r *Registry, id uint64) (*LocalRef[A], bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	mb, ok := e.mailbox().(*Mailbox[A])
	if !ok {
		return nil, false
	}

	return &LocalRef[A]{mailbox: mb, id: id}, true
}

// Shutdown removes and destroys every entry, equivalent to calling Kill on
// each one. It is idempotent: calling it again on an already-empty registry
// has no observable effect.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[uint64]entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.kill(ctx)
	}
}
