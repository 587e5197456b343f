package ruuid

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122.
// The UUID is a 128-bit (16 byte) value that is used to uniquely identify
// information without central coordination.
type UUID [16]byte

// Version represents the UUID version, stored in the top nibble of byte 6
type Version byte

const (
	_ Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
)

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

// Nil is the nil UUID (all zeros). It parses and formats like any other
// UUID and serves as the "absent" sentinel.
var Nil UUID

// Well-known namespace UUIDs for name-based (v3/v5) generation, as listed
// in RFC 4122 Appendix C.
var (
	NamespaceDNS  = MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	NamespaceURL  = MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	NamespaceOID  = MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	NamespaceX500 = MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")
)

// Version returns the version of the UUID
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// setVersion stores v in the top nibble of byte 6, keeping the payload bits
func (u *UUID) setVersion(v Version) {
	u[6] = (u[6] & 0x0f) | (byte(v) << 4)
}

// setVariant stamps the RFC 4122 variant marker (10xx xxxx) onto byte 8.
// Generators call it as the final step, after all payload bits are filled.
func (u *UUID) setVariant() {
	u[8] = (u[8] & 0x3f) | 0x80
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// Parse parses a UUID from its canonical string representation:
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx, 36 characters, hyphens at
// positions 8, 13, 18 and 23. Hex digits may be upper or lower case;
// any other/shorter/longer input is rejected with ErrInvalidFormat.
func Parse(s string) (UUID, error) {
	var uuid UUID

	if len(s) != 36 {
		return uuid, ErrInvalidFormat
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid, ErrInvalidFormat
	}
	// Decode each segment
	if err := decodeHexSegment(uuid[0:4], s[0:8]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[4:6], s[9:13]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[6:8], s[14:18]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[8:10], s[19:23]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[10:16], s[24:36]); err != nil {
		return uuid, err
	}
	return uuid, nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("ruuid: Parse(%q): %v", s, err))
	}
	return uuid
}

// decodeHexSegment decodes a hex string segment into a byte slice
func decodeHexSegment(dst []byte, src string) error {
	if _, err := hex.Decode(dst, []byte(src)); err != nil {
		return ErrInvalidFormat
	}
	return nil
}

// Bytes returns the UUID as a byte slice
func (u UUID) Bytes() []byte {
	return u[:]
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return ErrInvalidLength
	}
	copy(u[:], data)
	return nil
}

// Scan implements the sql.Scanner interface for database compatibility
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		id, err := Parse(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	case []byte:
		if len(src) == 16 {
			copy(u[:], src)
			return nil
		}
		if len(src) == 0 {
			return nil
		}
		id, err := Parse(string(src))
		if err != nil {
			return err
		}
		*u = id
		return nil
	default:
		return fmt.Errorf("ruuid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < 16; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
