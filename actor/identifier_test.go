package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierStringRoundTrip(t *testing.T) {
	local := Local(42)
	assert.True(t, local.IsLocal())
	assert.Equal(t, "42", local.String())
	parsedLocal, err := ParseIdentifier(local.String())
	require.NoError(t, err)
	assert.Equal(t, local, parsedLocal)

	foreign := Foreign(7, "peer-a")
	assert.False(t, foreign.IsLocal())
	assert.Equal(t, "peer-a:7", foreign.String())
	assert.Equal(t, "peer-a", foreign.System())
	parsedForeign, err := ParseIdentifier(foreign.String())
	require.NoError(t, err)
	assert.Equal(t, foreign, parsedForeign)
}

func TestParseIdentifierLocal(t *testing.T) {
	id, err := ParseIdentifier("42")
	require.NoError(t, err)
	assert.True(t, id.IsLocal())
	assert.Equal(t, uint64(42), id.ID())
}

func TestParseIdentifierForeign(t *testing.T) {
	id, err := ParseIdentifier("peer-a:7")
	require.NoError(t, err)
	assert.False(t, id.IsLocal())
	assert.Equal(t, uint64(7), id.ID())
	assert.Equal(t, "peer-a", id.System())
}

func TestParseIdentifierInvalid(t *testing.T) {
	_, err := ParseIdentifier("not-a-number")
	assert.Error(t, err)

	_, err = ParseIdentifier("peer-a:not-a-number")
	assert.Error(t, err)
}
