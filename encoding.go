package ruuid

import (
	"encoding/base64"
	"encoding/hex"
)

// FromBytes creates a UUID from a 16-byte slice. The bytes are taken
// verbatim; no version or variant check is performed, so foreign or
// legacy byte patterns are accepted as-is.
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], b)
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}

// EncodeToHex encodes the UUID to a hexadecimal string without hyphens
func (u UUID) EncodeToHex() string {
	return hex.EncodeToString(u[:])
}

// DecodeFromHex decodes a 32-character hexadecimal string (no hyphens) to a UUID
func DecodeFromHex(s string) (UUID, error) {
	var uuid UUID
	if len(s) != 32 {
		return uuid, ErrInvalidFormat
	}
	if _, err := hex.Decode(uuid[:], []byte(s)); err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// EncodeToBase64 encodes the UUID to a base64 string (URL-safe, no padding)
func (u UUID) EncodeToBase64() string {
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// EncodeToBase64Std encodes the UUID to a standard base64 string
func (u UUID) EncodeToBase64Std() string {
	return base64.StdEncoding.EncodeToString(u[:])
}

// DecodeFromBase64 decodes a base64 string to UUID (URL-safe encoding)
func DecodeFromBase64(s string) (UUID, error) {
	var uuid UUID
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	if len(data) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], data)
	return uuid, nil
}

// DecodeFromBase64Std decodes a standard base64 string to UUID
func DecodeFromBase64Std(s string) (UUID, error) {
	var uuid UUID
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	if len(data) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], data)
	return uuid, nil
}
