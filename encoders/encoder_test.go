package encoders

import (
	"bytes"
	"math/rand"
	"testing"
)

// Helper function to generate a slice of random uint16 values
func generateRandomUint16Values(n int) []uint16 {
	values := make([]uint16, n)
	for i := 0; i < n; i++ {
		values[i] = uint16(rand.Intn(65536))
	}
	return values
}

// Helper function to check if two slices are equal
func valuesAreEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestPlainEncoder_Serialization tests the PlainEncoder for both encoding and decoding
func TestPlainEncoder_Serialization(t *testing.T) {
	originalValues := generateRandomUint16Values(100)
	encoder := NewPlainEncoder()

	var buffer bytes.Buffer
	if err := encoder.Encode(originalValues, &buffer); err != nil {
		t.Fatalf("Failed to serialize with PlainEncoder: %v", err)
	}

	decoder := NewPlainEncoder()
	decodedValues, err := decoder.Decode(&buffer, len(originalValues))
	if err != nil {
		t.Fatalf("Failed to deserialize with PlainEncoder: %v", err)
	}

	if !valuesAreEqual(originalValues, decodedValues) {
		t.Fatalf("PlainEncoder serialization/deserialization failed: original and decoded values do not match.")
	}
}

// TestPlainEncoder_PreserveIntegrity checks that input and output are identical for PlainEncoder
func TestPlainEncoder_PreserveIntegrity(t *testing.T) {
	values := generateRandomUint16Values(100)
	encoder := NewPlainEncoder()

	var buffer bytes.Buffer
	if err := encoder.Encode(values, &buffer); err != nil {
		t.Fatalf("Failed to serialize with PlainEncoder: %v", err)
	}

	decoder := NewPlainEncoder()
	decodedValues, err := decoder.Decode(&buffer, len(values))
	if err != nil {
		t.Fatalf("Failed to deserialize with PlainEncoder: %v", err)
	}

	if !valuesAreEqual(values, decodedValues) {
		t.Fatalf("PlainEncoder failed to preserve integrity: original and decoded values do not match.")
	}
}

// TestPlainEncoder_EmptyInput checks that encoding and decoding an empty slice round-trips cleanly.
func TestPlainEncoder_EmptyInput(t *testing.T) {
	encoder := NewPlainEncoder()

	var buffer bytes.Buffer
	if err := encoder.Encode(nil, &buffer); err != nil {
		t.Fatalf("Failed to serialize empty input with PlainEncoder: %v", err)
	}
	if buffer.Len() != 0 {
		t.Fatalf("Expected empty buffer, got %d bytes", buffer.Len())
	}

	decoder := NewPlainEncoder()
	decodedValues, err := decoder.Decode(&buffer, 0)
	if err != nil {
		t.Fatalf("Failed to deserialize empty input with PlainEncoder: %v", err)
	}
	if len(decodedValues) != 0 {
		t.Fatalf("Expected 0 decoded values, got %d", len(decodedValues))
	}
}
