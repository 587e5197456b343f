package ruuid

import (
	"testing"
)

func TestFromBytes(t *testing.T) {
	data := []byte{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}
	expected := UUID{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}

	got, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}

	if got != expected {
		t.Errorf("FromBytes() = %v, want %v", got, expected)
	}
}

func TestFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"too short", []byte{0x01, 0x02, 0x03}},
		{"15 bytes", make([]byte, 15)},
		{"17 bytes", make([]byte, 17)},
		{"too long", make([]byte, 20)},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.input)
			if err != ErrInvalidLength {
				t.Errorf("FromBytes() error = %v, want %v", err, ErrInvalidLength)
			}
		})
	}
}

func TestFromBytes_ForeignLayout(t *testing.T) {
	// Byte patterns that violate the version/variant convention are still
	// accepted verbatim; only generators enforce those bits
	foreign := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	uuid, err := FromBytes(foreign)
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}

	for i, b := range uuid.Bytes() {
		if b != foreign[i] {
			t.Errorf("byte %d = %#x, want %#x", i, b, foreign[i])
		}
	}
}

func TestMustFromBytes(t *testing.T) {
	data := []byte{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}

	uuid := MustFromBytes(data)
	if uuid.IsNil() {
		t.Error("MustFromBytes() returned nil UUID")
	}

	// Test panic
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustFromBytes() did not panic on invalid input")
		}
	}()
	MustFromBytes([]byte{0x01})
}

func TestUUID_EncodeToHex(t *testing.T) {
	uuid := UUID{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}
	expected := "f47ac10b58cc4372a5670e02b2c3d479"

	got := uuid.EncodeToHex()
	if got != expected {
		t.Errorf("EncodeToHex() = %v, want %v", got, expected)
	}
}

func TestDecodeFromHex(t *testing.T) {
	input := "f47ac10b58cc4372a5670e02b2c3d479"
	expected := UUID{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}

	got, err := DecodeFromHex(input)
	if err != nil {
		t.Fatalf("DecodeFromHex() error = %v", err)
	}

	if got != expected {
		t.Errorf("DecodeFromHex() = %v, want %v", got, expected)
	}
}

func TestDecodeFromHex_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "f47ac10b58cc4372"},
		{"too long", "f47ac10b58cc4372a5670e02b2c3d479ff"},
		{"invalid hex", "g47ac10b58cc4372a5670e02b2c3d479"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFromHex(tt.input)
			if err == nil {
				t.Errorf("DecodeFromHex() expected error for input %q", tt.input)
			}
		})
	}
}

func TestDecodeFromBase64(t *testing.T) {
	uuid := UUID{0xf4, 0x7a, 0xc1, 0x0b, 0x58, 0xcc, 0x43, 0x72, 0xa5, 0x67, 0x0e, 0x02, 0xb2, 0xc3, 0xd4, 0x79}

	decoded, err := DecodeFromBase64(uuid.EncodeToBase64())
	if err != nil {
		t.Fatalf("DecodeFromBase64() error = %v", err)
	}
	if decoded != uuid {
		t.Errorf("DecodeFromBase64() = %v, want %v", decoded, uuid)
	}

	decodedStd, err := DecodeFromBase64Std(uuid.EncodeToBase64Std())
	if err != nil {
		t.Fatalf("DecodeFromBase64Std() error = %v", err)
	}
	if decodedStd != uuid {
		t.Errorf("DecodeFromBase64Std() = %v, want %v", decodedStd, uuid)
	}
}

func TestDecodeFromBase64_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid base64", "!!!invalid!!!"},
		{"wrong length", "YWJj"}, // "abc" in base64, only 3 bytes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFromBase64(tt.input)
			if err == nil {
				t.Errorf("DecodeFromBase64() expected error for input %q", tt.input)
			}
		})
	}
}

func TestEncodingRoundTrips(t *testing.T) {
	gen := NewGenerator()

	for i := 0; i < 10; i++ {
		uuid, err := gen.NewV4()
		if err != nil {
			t.Fatalf("Failed to generate UUID: %v", err)
		}

		// Canonical string round-trip
		parsed, err := Parse(uuid.String())
		if err != nil {
			t.Errorf("String round-trip parse error: %v", err)
		}
		if uuid != parsed {
			t.Errorf("String round-trip failed: got %v, want %v", parsed, uuid)
		}

		// Hex round-trip
		fromHex, err := DecodeFromHex(uuid.EncodeToHex())
		if err != nil {
			t.Errorf("Hex round-trip decode error: %v", err)
		}
		if uuid != fromHex {
			t.Errorf("Hex round-trip failed: got %v, want %v", fromHex, uuid)
		}

		// Base64 round-trip
		fromB64, err := DecodeFromBase64(uuid.EncodeToBase64())
		if err != nil {
			t.Errorf("Base64 round-trip decode error: %v", err)
		}
		if uuid != fromB64 {
			t.Errorf("Base64 round-trip failed: got %v, want %v", fromB64, uuid)
		}

		// Bytes round-trip
		fromBytes, err := FromBytes(uuid.Bytes())
		if err != nil {
			t.Errorf("Bytes round-trip decode error: %v", err)
		}
		if uuid != fromBytes {
			t.Errorf("Bytes round-trip failed: got %v, want %v", fromBytes, uuid)
		}
	}
}
