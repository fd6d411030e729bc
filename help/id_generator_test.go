package help

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDIsMonotonicWithinOneGenerator(t *testing.T) {
	g := NewIDGenerator(1)
	var last uint64
	for i := 0; i < 1000; i++ {
		id := g.GenerateID()
		assert.Greater(t, id, last)
		last = id
	}
}

func TestNewIDGeneratorRejectsOutOfRangeNodeID(t *testing.T) {
	assert.Panics(t, func() { NewIDGenerator(-1) })
	assert.Panics(t, func() { NewIDGenerator(maxNodeID + 1) })
}

func TestNewInstanceIDIsPrefixedWithSystemID(t *testing.T) {
	id := NewInstanceID("alpha", 1)
	assert.Regexp(t, `^alpha-\d+$`, id)
}
