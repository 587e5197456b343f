package ruuid

import (
	"fmt"
	"io"
)

// NewV4 generates a random version 4 UUID. All 122 payload bits come from
// the generator's random source; if the source cannot supply 16 bytes the
// call fails with ErrEntropyUnavailable rather than returning low-entropy
// or fixed data.
func (g *Generator) NewV4() (UUID, error) {
	var uuid UUID
	if _, err := io.ReadFull(g.randReader, uuid[:]); err != nil {
		return uuid, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	uuid.setVersion(VersionRandom)
	uuid.setVariant()
	return uuid, nil
}
