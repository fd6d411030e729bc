package actor

import (
	"context"
	"fmt"
)

// Serializer converts a message or response value to and from its wire
// representation. The core depends only on this interface — never on a
// concrete encoding — so a Delegate can be backed by protobuf, gob, or
// anything else without the actor package knowing. Concrete
// implementations live in package wire.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// ForeignTarget is what System.Get hands a Delegate once an Identifier has
// been found not to be local: enough to address the actor on its home
// system, with nothing Go-generic left in it.
type ForeignTarget struct {
	ActorID uint64
	System  string
}

// RawRemoteSender is the byte-level round trip a Delegate returns once it
// has resolved a ForeignTarget for one message type. System.Get wraps it
// generically to produce a MessageSender[M, R]; the messageTypeID string
// lets the peer look up its own registration table without ever sharing
// Go's reflect.Type across the wire.
type RawRemoteSender interface {
	SendRaw(ctx context.Context, messageTypeID string, payload []byte) ([]byte, error)
}

// Delegate is the injected component responsible for all cross-system
// traffic, including the Serializer used to cross it. A Delegate that
// never wishes to bridge can always resolve nothing.
type Delegate interface {
	ResolveForeign(ctx context.Context, target ForeignTarget) (RawRemoteSender, bool)
	Serializer() Serializer
}

// noopDelegate never resolves anything. A System constructed without an
// explicit Delegate uses this, making it entirely self-contained.
type noopDelegate struct{}

func (noopDelegate) ResolveForeign(context.Context, ForeignTarget) (RawRemoteSender, bool) {
	return nil, false
}

func (noopDelegate) Serializer() Serializer { return nil }

// remoteSender realizes MessageSender[M, R] over a RawRemoteSender,
// marshaling M and unmarshaling R with the owning Delegate's Serializer.
// The wire-level message type id is the message's Go type name; this
// keeps M entirely unconstrained, at the cost of the id not surviving a
// rename across peers built from different source — acceptable since both
// ends of a foreign call are always built from the same module.
type remoteSender[M any, R any] struct {
	raw        RawRemoteSender
	serializer Serializer
}

func (s *remoteSender[M, R]) Send(ctx context.Context, msg M) (R, error) {
	var zero R

	payload, err := s.serializer.Marshal(msg)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrSerializeFailed, err)
	}

	respBytes, err := s.raw.SendRaw(ctx, fmt.Sprintf("%T", msg), payload)
	if err != nil {
		return zero, err
	}

	var r R
	if err := s.serializer.Unmarshal(respBytes, &r); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrDeserializeFailed, err)
	}
	return r, nil
}

func getForeign[M any, R any](ctx context.Context, d Delegate, target ForeignTarget) (MessageSender[M, R], bool) {
	raw, ok := d.ResolveForeign(ctx, target)
	if !ok {
		return nil, false
	}
	return &remoteSender[M, R]{raw: raw, serializer: d.Serializer()}, true
}
