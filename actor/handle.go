package actor

import "context"

// LocalRef is a cheaply-cloneable reference to a registry entry, typed by
// actor type A. It can send any message A handles via the package-level
// Send function. Dropping the last LocalRef does not destroy the actor —
// only Registry.Kill/Shutdown does.
type LocalRef[A Actor] struct {
	mailbox *Mailbox[A]
	id      uint64
}

// ID returns the referenced actor's id.
func (r *LocalRef[A]) ID() uint64 {
	return r.id
}

// Clone returns a reference to the same actor. Because LocalRef holds only
// a pointer and an id, a plain copy already behaves as a clone; Clone
// exists for readability at call sites that want to be explicit about it.
func (r *LocalRef[A]) Clone() *LocalRef[A] {
	if r == nil {
		return nil
	}
	return &LocalRef[A]{mailbox: r.mailbox, id: r.id}
}

// MessageSender is a type-erased handle: it knows how to send message M and
// receive response R, but not which actor type answers it or whether that
// actor is local or foreign. A caller obtains one through Get, or through
// AsMessageSender for a LocalRef it already holds; its concrete types are
// unexported.
type MessageSender[M any, R any] interface {
	Send(ctx context.Context, message M) (R, error)
}

// localSender narrows a LocalRef[A] to a single message type, realizing
// MessageSender[M, R] for a local actor.
type localSender[A Handler[M, R], M any, R any] struct {
	ref *LocalRef[A]
}

func (s *localSender[A, M, R]) Send(ctx context.Context, message M) (R, error) {
	return Send[M, R, A](ctx, s.ref, message)
}

// AsMessageSender narrows ref to a MessageSender[M, R] for one message type.
// This is the local realization of the erased handle surface; System.Get
// produces the foreign realization transparently through the same
// interface.
func AsMessageSender[M any, R any, A Handler[M, R]](ref *LocalRef[A]) MessageSender[M, R] {
	return &localSender[A, M, R]{ref: ref}
}
