package actor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wirePing struct{ Text string }
type wirePong struct{ Text string }

type wireEchoActor struct{}

func (wireEchoActor) Initialize(context.Context) error { return nil }
func (wireEchoActor) Deinitialize(context.Context)      {}

func (wireEchoActor) Handle(_ context.Context, msg wirePing, _ *Context) (wirePong, error) {
	return wirePong{Text: msg.Text}, nil
}

// jsonSerializer is a Serializer good enough for tests; production
// delegates use package wire's protobuf- and gob-backed implementations.
type jsonSerializer struct{}

func (jsonSerializer) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonSerializer) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// echoRawSender hands back whatever payload it was given, standing in for
// a peer that round-trips the request unchanged.
type echoRawSender struct{}

func (echoRawSender) SendRaw(_ context.Context, _ string, payload []byte) ([]byte, error) {
	return payload, nil
}

// fakeDelegate resolves every foreign target to an echoRawSender unless
// refuse is set, in which case it resolves nothing.
type fakeDelegate struct {
	refuse bool
}

func (d fakeDelegate) ResolveForeign(context.Context, ForeignTarget) (RawRemoteSender, bool) {
	if d.refuse {
		return nil, false
	}
	return echoRawSender{}, true
}

func (fakeDelegate) Serializer() Serializer { return jsonSerializer{} }

func TestSystemGetResolvesLocalWithoutTouchingDelegate(t *testing.T) {
	sys := New("local", fakeDelegate{refuse: true})
	ctx := context.Background()

	id, err := Add(ctx, sys, wireEchoActor{})
	require.NoError(t, err)

	sender, ok := Get[wireEchoActor, wirePing, wirePong](ctx, sys, Local(id))
	require.True(t, ok)

	resp, err := sender.Send(ctx, wirePing{Text: "here"})
	require.NoError(t, err)
	assert.Equal(t, "here", resp.Text)
}

func TestSystemGetUnknownLocalIDFails(t *testing.T) {
	sys := New("local", fakeDelegate{refuse: true})
	_, ok := Get[wireEchoActor, wirePing, wirePong](context.Background(), sys, Local(123))
	assert.False(t, ok)
}

func TestSystemGetResolvesForeignThroughDelegate(t *testing.T) {
	sys := New("local", fakeDelegate{})
	ctx := context.Background()

	sender, ok := Get[wireEchoActor, wirePing, wirePong](ctx, sys, Foreign(7, "peer"))
	require.True(t, ok)

	resp, err := sender.Send(ctx, wirePing{Text: "far"})
	require.NoError(t, err)
	assert.Equal(t, "far", resp.Text)
}

func TestSystemGetForeignRefusedByDelegate(t *testing.T) {
	sys := New("local", fakeDelegate{refuse: true})
	_, ok := Get[wireEchoActor, wirePing, wirePong](context.Background(), sys, Foreign(7, "peer"))
	assert.False(t, ok)
}

func TestSystemNilDelegateDefaultsToNoop(t *testing.T) {
	sys := New("local", nil)
	_, ok := Get[wireEchoActor, wirePing, wirePong](context.Background(), sys, Foreign(1, "peer"))
	assert.False(t, ok)
}

func TestSystemAddKillShutdown(t *testing.T) {
	sys := New("local", nil)
	ctx := context.Background()

	id, err := Add(ctx, sys, wireEchoActor{})
	require.NoError(t, err)

	_, ok := GetLocalOn[wireEchoActor](sys, id)
	require.True(t, ok)

	Kill(ctx, sys, id)
	_, ok = GetLocalOn[wireEchoActor](sys, id)
	assert.False(t, ok)

	id2, err := Add(ctx, sys, wireEchoActor{})
	require.NoError(t, err)
	sys.Shutdown(ctx)
	_, ok = GetLocalOn[wireEchoActor](sys, id2)
	assert.False(t, ok)
}
