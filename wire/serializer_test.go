package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestProtoSerializerRoundTrip(t *testing.T) {
	var s ProtoSerializer

	data, err := s.Marshal(wrapperspb.String("hello"))
	require.NoError(t, err)

	var out wrapperspb.StringValue
	require.NoError(t, s.Unmarshal(data, &out))
	assert.Equal(t, "hello", out.GetValue())
}

func TestProtoSerializerRejectsNonProtoValue(t *testing.T) {
	var s ProtoSerializer
	_, err := s.Marshal(struct{ X int }{X: 1})
	assert.Error(t, err)
}

type gobPayload struct {
	Name  string
	Count int
}

func TestGobSerializerRoundTrip(t *testing.T) {
	var s GobSerializer

	data, err := s.Marshal(gobPayload{Name: "alpha", Count: 7})
	require.NoError(t, err)

	var out gobPayload
	require.NoError(t, s.Unmarshal(data, &out))
	assert.Equal(t, gobPayload{Name: "alpha", Count: 7}, out)
}

func TestGobSerializerRejectsGarbage(t *testing.T) {
	var s GobSerializer
	var out gobPayload
	assert.Error(t, s.Unmarshal([]byte("not gob data"), &out))
}
