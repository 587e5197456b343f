package ruuid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// Generator produces version 1 and version 4 UUIDs. It owns the three
// external collaborators those versions need: a random source, a clock and
// a hardware-address source, all injectable for testing. The zero value is
// not usable; construct one with NewGenerator or NewGeneratorWithReader.
//
// A Generator is safe for concurrent use. Version 1 state (clock sequence,
// last timestamp, node id) is guarded by an internal mutex so two calls can
// never emit the same (timestamp, clock sequence) pair.
type Generator struct {
	randReader io.Reader
	epochFunc  func() time.Time
	hwAddrFunc func() (net.HardwareAddr, error)

	v1 v1State
}

// NewGenerator creates a new generator with crypto/rand as the random
// source, time.Now as the clock and the first hardware address found on a
// network interface as the node identifier.
func NewGenerator() *Generator {
	return NewGeneratorWithReader(rand.Reader)
}

// NewGeneratorWithReader creates a new generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{
		randReader: r,
		epochFunc:  time.Now,
		hwAddrFunc: defaultHWAddrFunc,
	}
}

// SetNodeID installs an explicit 48-bit node identifier for version 1
// generation, overriding the hardware-address lookup. Callers that run on
// hosts without a usable MAC address pass the value from RandomNodeID here.
func (g *Generator) SetNodeID(node [6]byte) {
	g.v1.mu.Lock()
	g.v1.node = node
	g.v1.nodeSet = true
	g.v1.mu.Unlock()
}

// SetClockSequence installs an explicit initial 14-bit clock sequence for
// version 1 generation instead of a random one. RFC 4122 section 4.2.1
// callers that keep generator state in stable storage read the saved
// sequence back, increment it and install it here on startup.
func (g *Generator) SetClockSequence(seq uint16) {
	g.v1.mu.Lock()
	g.v1.clockSeq = seq & 0x3fff
	g.v1.clockSeqSet = true
	g.v1.mu.Unlock()
}

// RandomNodeID returns a random 48-bit node identifier with the multicast
// bit set, as RFC 4122 section 4.1.6 prescribes for node ids that do not
// come from an IEEE 802 address. It is the explicit fallback for hosts
// where no hardware address can be obtained; version 1 generation never
// substitutes one silently.
func RandomNodeID(r io.Reader) ([6]byte, error) {
	var node [6]byte
	if _, err := io.ReadFull(r, node[:]); err != nil {
		return node, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	node[0] |= 0x01
	return node, nil
}

// defaultHWAddrFunc returns the hardware address of the first network
// interface that has one
func defaultHWAddrFunc() (net.HardwareAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) >= 6 {
			return iface.HardwareAddr, nil
		}
	}
	return nil, errors.New("no network interface with a hardware address")
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = ruuid.Must(ruuid.NewV4())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by the NewV* functions
var defaultGenerator = NewGenerator()

// NewV1 generates a time-based version 1 UUID using the default generator
func NewV1() (UUID, error) {
	return defaultGenerator.NewV1()
}

// NewV4 generates a random version 4 UUID using the default generator
func NewV4() (UUID, error) {
	return defaultGenerator.NewV4()
}
