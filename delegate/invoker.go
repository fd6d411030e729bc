package delegate

import (
	"context"
	"fmt"

	"github.com/phuhao00/fluxion/actor"
)

// RegisterHandler exposes actor id's Handler[M, R] implementation to
// foreign callers: it builds a LocalInvoker that unmarshals an incoming
// payload into M, sends it through the actor's own mailbox via
// actor.Send, and marshals the response back, then installs it in reg
// under (id, the Go type name of M) — the same message-type-id a
// System.Get-produced remote sender derives on the caller's side.
func RegisterHandler[M any, R any, A actor.Handler[M, R]](reg *Registration, ref *actor.LocalRef[A], id uint64, serializer actor.Serializer) {
	messageTypeID := fmt.Sprintf("%T", *new(M))

	reg.RegisterInvoker(id, messageTypeID, func(ctx context.Context, payload []byte) ([]byte, error) {
		var msg M
		if err := serializer.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("%w: %w", actor.ErrDeserializeFailed, err)
		}

		resp, err := actor.Send[M, R, A](ctx, ref, msg)
		if err != nil {
			return nil, err
		}

		out, err := serializer.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", actor.ErrSerializeFailed, err)
		}
		return out, nil
	})
}
