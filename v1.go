package ruuid

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"
)

// epochStart is the count of 100-nanosecond intervals between the UUID
// epoch (1582-10-15, the Gregorian reform) and the Unix epoch (1970-01-01).
const epochStart = 0x01B21DD213814000

// v1State is the mutable version 1 generator state: the node identifier,
// the 14-bit clock sequence and the last emitted timestamp. The mutex
// guarantees no two calls observe the same (timestamp, clock sequence) pair.
type v1State struct {
	mu          sync.Mutex
	lastTime    uint64
	clockSeq    uint16
	clockSeqSet bool
	node        [6]byte
	nodeSet     bool
}

// NewV1 generates a time-based version 1 UUID from the current time.
// The 60-bit timestamp counts 100ns intervals since 1582-10-15 and the
// node field carries the generator's 48-bit node identifier.
//
// If no node identifier has been installed with SetNodeID and no hardware
// address can be found, NewV1 fails with ErrNodeIDUnavailable; it never
// fabricates a node id on its own.
func (g *Generator) NewV1() (UUID, error) {
	return g.NewV1At(g.epochFunc())
}

// NewV1At generates a version 1 UUID with the specified timestamp. It is
// primarily useful for tests that need deterministic time fields; the
// clock-sequence increment on a non-advancing timestamp still applies.
func (g *Generator) NewV1At(t time.Time) (UUID, error) {
	var uuid UUID

	g.v1.mu.Lock()
	defer g.v1.mu.Unlock()

	if !g.v1.nodeSet {
		hw, err := g.hwAddrFunc()
		if err != nil {
			return uuid, fmt.Errorf("%w: %v", ErrNodeIDUnavailable, err)
		}
		if len(hw) < 6 {
			return uuid, ErrNodeIDUnavailable
		}
		copy(g.v1.node[:], hw)
		g.v1.nodeSet = true
	}

	// The clock sequence starts at a random 14-bit value (RFC 4122 4.2.1)
	if !g.v1.clockSeqSet {
		var seed [2]byte
		if _, err := io.ReadFull(g.randReader, seed[:]); err != nil {
			return uuid, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
		}
		g.v1.clockSeq = binary.BigEndian.Uint16(seed[:]) & 0x3fff
		g.v1.clockSeqSet = true
	}

	// 100ns ticks since the UUID epoch, 60 bits
	timestamp := epochStart + uint64(t.UnixNano())/100

	// If the clock did not advance (or went backwards), bump the clock
	// sequence so the (timestamp, clock sequence) pair stays unique
	if timestamp <= g.v1.lastTime {
		g.v1.clockSeq = (g.v1.clockSeq + 1) & 0x3fff
	}
	g.v1.lastTime = timestamp

	// time_low (32 bits), time_mid (16 bits), time_hi (12 bits)
	binary.BigEndian.PutUint32(uuid[0:4], uint32(timestamp))
	binary.BigEndian.PutUint16(uuid[4:6], uint16(timestamp>>32))
	binary.BigEndian.PutUint16(uuid[6:8], uint16(timestamp>>48))

	binary.BigEndian.PutUint16(uuid[8:10], g.v1.clockSeq)
	copy(uuid[10:], g.v1.node[:])

	uuid.setVersion(VersionTimeBased)
	uuid.setVariant()

	return uuid, nil
}

// Timestamp extracts the 60-bit count of 100ns intervals since the UUID
// epoch from a version 1 UUID. It returns 0 for any other version.
func (u UUID) Timestamp() uint64 {
	if u.Version() != VersionTimeBased {
		return 0
	}
	return uint64(binary.BigEndian.Uint16(u[6:8])&0x0fff)<<48 |
		uint64(binary.BigEndian.Uint16(u[4:6]))<<32 |
		uint64(binary.BigEndian.Uint32(u[0:4]))
}

// Time returns the embedded timestamp of a version 1 UUID as a time.Time.
// It returns the zero time for any other version.
func (u UUID) Time() time.Time {
	if u.Version() != VersionTimeBased {
		return time.Time{}
	}
	ticks := u.Timestamp() - epochStart
	return time.Unix(int64(ticks/1e7), int64(ticks%1e7)*100)
}

// ClockSequence returns the 14-bit clock sequence of a version 1 UUID,
// or 0 for any other version
func (u UUID) ClockSequence() uint16 {
	if u.Version() != VersionTimeBased {
		return 0
	}
	return binary.BigEndian.Uint16(u[8:10]) & 0x3fff
}

// NodeID returns the 48-bit node identifier of a version 1 UUID,
// or all zeros for any other version
func (u UUID) NodeID() [6]byte {
	var node [6]byte
	if u.Version() == VersionTimeBased {
		copy(node[:], u[10:])
	}
	return node
}
