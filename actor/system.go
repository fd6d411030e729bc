package actor

import "context"

// Broadcaster is the minimal fire-and-forget publish contract a System can
// hold, independent of any particular pub/sub transport. It exists so a
// handler can publish through its Context without the actor package
// importing a message-broker client library; package notify's Client
// satisfies it structurally.
type Broadcaster interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

type noopBroadcaster struct{}

func (noopBroadcaster) Publish(context.Context, string, []byte) error { return nil }

// System is the facade a process-level driver holds: one Registry of local
// actors plus the Delegate that knows how to reach everyone else. Actors
// never see the System directly except through the *Context handed to their
// handlers.
type System struct {
	name        string
	registry    *Registry
	delegate    Delegate
	broadcaster Broadcaster
}

// New creates a System identified by name. A nil delegate is replaced with
// one that never resolves anything, so a System can be built standalone and
// grown into a cluster member later without changing call sites.
func New(name string, delegate Delegate) *System {
	if delegate == nil {
		delegate = noopDelegate{}
	}
	return &System{
		name:        name,
		registry:    NewRegistry(),
		delegate:    delegate,
		broadcaster: noopBroadcaster{},
	}
}

// SetBroadcaster attaches b as the System's Broadcaster. It is optional: a
// System built without one answers Publish calls with a no-op, so a handler
// can call through its Context whether or not broadcast is wired up.
func (s *System) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = noopBroadcaster{}
	}
	s.broadcaster = b
}

// Broadcaster returns the system's configured Broadcaster.
func (s *System) Broadcaster() Broadcaster {
	return s.broadcaster
}

// ID returns the system's own name, the value foreign peers use to address
// actors hosted here.
func (s *System) ID() string {
	return s.name
}

// Delegate returns the system's configured Delegate.
func (s *System) Delegate() Delegate {
	return s.delegate
}

// Registry returns the system's local actor registry. Most callers should
// prefer the System-level Add/Kill/GetLocalOn wrappers, which also wire up
// the Context an actor's handlers receive; Registry is exposed for callers
// that need the lower-level type, such as tests.
func (s *System) Registry() *Registry {
	return s.registry
}

// Add installs a onto the system's registry and starts its dispatcher. The
// Context passed to every one of a's handlers carries this System, so the
// actor can in turn call Get or GetLocalOn to reach its peers.
func Add[A Actor](ctx context.Context, s *System, a A, opts ...MailboxOption) (uint64, error) {
	return AddTo(ctx, s.registry, a, func(id uint64) *Context {
		return newContext(id, s)
	}, opts...)
}

// Kill stops and removes the actor with id from s, regardless of its
// concrete type.
func Kill(ctx context.Context, s *System, id uint64) {
	s.registry.Kill(ctx, id)
}

// GetLocalOn looks up id on s's own registry, bypassing the Delegate
// entirely. It is the right call when the caller already knows the actor is
// local, and unlike Get it returns a LocalRef that can send every message
// type the actor handles.
func GetLocalOn[A Actor](s *System, id uint64) (*LocalRef[A], bool) {
	return GetLocal[A](s.registry, id)
}

// Get resolves id uniformly, whether it names a local or a foreign actor,
// and returns a MessageSender[M, R] that hides which. When id is foreign,
// M and R are marshaled through the System's Delegate's Serializer;
// GetLocalOn skips that machinery entirely for actors already known to be
// local.
func Get[A Handler[M, R], M any, R any](ctx context.Context, s *System, id Identifier) (MessageSender[M, R], bool) {
	if id.IsLocal() {
		ref, ok := GetLocal[A](s.registry, id.ID())
		if !ok {
			return nil, false
		}
		return AsMessageSender[M, R](ref), true
	}
	return getForeign[M, R](ctx, s.delegate, ForeignTarget{ActorID: id.ID(), System: id.System()})
}

// Shutdown kills every locally registered actor.
func (s *System) Shutdown(ctx context.Context) {
	s.registry.Shutdown(ctx)
}
