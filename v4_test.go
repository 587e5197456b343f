package ruuid

import (
	"bytes"
	"errors"
	"testing"
)

// brokenReader is a reader that always returns an error
type brokenReader struct{}

func (br *brokenReader) Read(p []byte) (n int, err error) {
	return 0, bytes.ErrTooLarge
}

func TestNewV4(t *testing.T) {
	uuid, err := NewV4()
	if err != nil {
		t.Fatalf("NewV4() error = %v", err)
	}

	if uuid.IsNil() {
		t.Error("NewV4() returned nil UUID")
	}
	if uuid.Version() != VersionRandom {
		t.Errorf("NewV4() version = %v, want %v", uuid.Version(), VersionRandom)
	}
	if uuid.Variant() != VariantRFC4122 {
		t.Errorf("NewV4() variant = %v, want %v", uuid.Variant(), VariantRFC4122)
	}
}

func TestNewV4_Uniqueness(t *testing.T) {
	first, err := NewV4()
	if err != nil {
		t.Fatalf("NewV4() error = %v", err)
	}
	second, err := NewV4()
	if err != nil {
		t.Fatalf("NewV4() error = %v", err)
	}

	if first.Equal(second) {
		t.Errorf("two NewV4() calls returned the same UUID: %v", first)
	}
}

func TestGenerator_NewV4_EntropyFailure(t *testing.T) {
	gen := NewGeneratorWithReader(&brokenReader{})

	_, err := gen.NewV4()
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Errorf("NewV4() error = %v, want %v", err, ErrEntropyUnavailable)
	}
}

func TestGenerator_V4ConcurrentSafety(t *testing.T) {
	gen := NewGenerator()
	const goroutines = 10
	const uuidsPerGoroutine = 100

	results := make(chan UUID, goroutines*uuidsPerGoroutine)
	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			for j := 0; j < uuidsPerGoroutine; j++ {
				uuid, err := gen.NewV4()
				if err != nil {
					t.Errorf("Concurrent generation error: %v", err)
					return
				}
				results <- uuid
			}
			done <- true
		}()
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}
	close(results)

	seen := make(map[UUID]bool)
	for uuid := range results {
		if seen[uuid] {
			t.Errorf("Duplicate UUID generated in concurrent test: %v", uuid)
		}
		seen[uuid] = true
	}

	if len(seen) != goroutines*uuidsPerGoroutine {
		t.Errorf("Expected %d unique UUIDs, got %d", goroutines*uuidsPerGoroutine, len(seen))
	}
}

func TestMust(t *testing.T) {
	// Valid UUID should not panic
	uuid := Must(NewV4())
	if uuid.IsNil() {
		t.Error("Must() returned nil UUID")
	}

	// Error should panic
	defer func() {
		if r := recover(); r == nil {
			t.Error("Must() did not panic on error")
		}
	}()

	brokenGen := NewGeneratorWithReader(&brokenReader{})
	Must(brokenGen.NewV4())
}
