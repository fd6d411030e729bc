package actor

import "errors"

// Error kinds returned from the send path and the registry. Handler-internal
// errors are never wrapped in these; it is up to the actor to fold its own
// errors into its response type.
var (
	// ErrActorInitFailed wraps the error returned by an actor's Initialize
	// method. The actor is not installed in the registry when this occurs.
	ErrActorInitFailed = errors.New("actor: initialization failed")

	// ErrSendFailed means the mailbox refused the message: the actor died
	// or was killed between lookup and send.
	ErrSendFailed = errors.New("actor: send failed")

	// ErrResponseFailed means the one-shot response was dropped before a
	// response was produced (actor panic, killed mid-handle).
	ErrResponseFailed = errors.New("actor: response failed")

	// ErrSerializeFailed and ErrDeserializeFailed are surfaced only on the
	// foreign path, by a wire.Serializer.
	ErrSerializeFailed   = errors.New("actor: serialize failed")
	ErrDeserializeFailed = errors.New("actor: deserialize failed")

	// ErrForeignNotFound means the delegate could not resolve the
	// identifier: no peer, or no registration for (actor id, message type).
	ErrForeignNotFound = errors.New("actor: foreign actor not found")
)
