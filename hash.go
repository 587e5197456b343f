package ruuid

import (
	"crypto/md5"
	"crypto/sha1"
	"hash"
)

// NewV3 generates a name-based version 3 UUID by hashing the namespace
// UUID followed by the name with MD5. The result is deterministic: the
// same (namespace, name) pair always yields the same UUID.
func NewV3(namespace UUID, name string) UUID {
	return hashUUID(md5.New(), namespace, name, VersionNameBasedMD5)
}

// NewV5 generates a name-based version 5 UUID by hashing the namespace
// UUID followed by the name with SHA-1. Only the first 16 bytes of the
// 20-byte digest are used. Like NewV3, the result is deterministic.
func NewV5(namespace UUID, name string) UUID {
	return hashUUID(sha1.New(), namespace, name, VersionNameBasedSHA1)
}

// hashUUID digests namespace||name, takes the first 16 bytes as payload
// and stamps the version and variant bits last so the digest never
// clobbers them
func hashUUID(h hash.Hash, namespace UUID, name string, v Version) UUID {
	h.Write(namespace[:])
	h.Write([]byte(name))

	var uuid UUID
	copy(uuid[:], h.Sum(nil))

	uuid.setVersion(v)
	uuid.setVariant()
	return uuid
}
