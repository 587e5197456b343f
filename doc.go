// Package ruuid implements Universally Unique Identifiers (UUIDs) according
// to RFC 4122: 128-bit values used as collision-resistant identifiers in
// distributed systems without central coordination.
//
// Four generation algorithms are supported:
//   - Version 1: time-based, from a 60-bit timestamp (100ns ticks since
//     1582-10-15), a 14-bit clock sequence and a 48-bit node identifier
//     (normally a hardware MAC address)
//   - Version 3: name-based, MD5 digest of a namespace UUID and a name
//   - Version 4: random, from a cryptographically secure random source
//   - Version 5: name-based, SHA-1 digest of a namespace UUID and a name
//
// Basic Usage:
//
//	// Generate a random UUIDv4
//	id, err := ruuid.NewV4()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(id.String())
//
//	// Parse a UUID from its canonical string form
//	id, err := ruuid.Parse("67e55044-10b1-426f-9247-bb680e5fe0c8")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Deterministic name-based UUIDs
//	a := ruuid.NewV5(ruuid.NamespaceDNS, "example.com")
//	b := ruuid.NewV5(ruuid.NamespaceDNS, "example.com")
//	// a == b always
//
// Custom Generator:
//
//	// Create a dedicated generator, e.g. with an explicit node id when
//	// no hardware address is available
//	gen := ruuid.NewGenerator()
//	node, _ := ruuid.RandomNodeID(rand.Reader)
//	gen.SetNodeID(node)
//	id, err := gen.NewV1()
//
// Thread Safety:
//
// All operations are thread-safe. The default generator can be used
// concurrently from multiple goroutines without additional synchronization;
// the version 1 clock sequence is guarded so no two calls ever emit the
// same (timestamp, clock sequence) pair.
//
// Standards Compliance:
//
// This implementation follows RFC 4122. Every generated UUID carries the
// 4-bit version tag in byte 6 and the RFC 4122 variant marker (binary 10)
// in the top bits of byte 8, stamped after all payload bits are filled.
// UUIDs are identifiers, not secrets: no cryptographic secrecy guarantee
// is made for any version, including version 4.
package ruuid
