package help

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator is a Snowflake-style generator: 41 bits of millisecond
// timestamp, 10 bits of node id, 12 bits of per-millisecond sequence.
type IDGenerator struct {
	mutex    sync.Mutex
	epoch    int64
	nodeID   int64
	sequence int64
	lastTime int64
}

const (
	sequenceBits  = 12
	nodeIDBits    = 10
	timestampBits = 41

	maxNodeID   = (1 << nodeIDBits) - 1
	maxSequence = (1 << sequenceBits) - 1

	nodeIDShift    = sequenceBits
	timestampShift = sequenceBits + nodeIDBits

	customEpoch = 1577836800000 // 2020-01-01 00:00:00 UTC, in milliseconds
)

// NewIDGenerator creates a generator for the given node id (0-1023). Two
// processes sharing a node id can produce colliding ids; callers assign
// node ids out of band (an ordinal from their own deployment config).
func NewIDGenerator(nodeID int64) *IDGenerator {
	if nodeID < 0 || nodeID > maxNodeID {
		panic(fmt.Sprintf("node ID must be between 0 and %d", maxNodeID))
	}
	return &IDGenerator{epoch: customEpoch, nodeID: nodeID}
}

// GenerateID returns the next id from the generator, blocking if the
// 12-bit sequence for the current millisecond is exhausted.
func (g *IDGenerator) GenerateID() uint64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	now := time.Now().UnixMilli()
	if now < g.lastTime {
		panic("clock moved backwards")
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			for now <= g.lastTime {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	timestamp := now - g.epoch
	id := (timestamp << timestampShift) | (g.nodeID << nodeIDShift) | g.sequence
	return uint64(id)
}

// NewInstanceID generates a Consul service instance id for a system named
// systemID, suitable for Directory.Register/Deregister.
func NewInstanceID(systemID string, nodeID int64) string {
	return fmt.Sprintf("%s-%d", systemID, NewIDGenerator(nodeID).GenerateID())
}
