// Package encoders provides implementations for encoding and decoding arrays of uint16 values.
// Array containers keep their values in memory as a []uint16 and use one of these only to
// write and read their on-disk payload.
package encoders

import (
	"encoding/binary"
	"io"
)

// ArrayEncoder defines the interface for encoding an array of uint16 values to a writer.
type ArrayEncoder interface {
	// Encode encodes the given array of uint16 values and writes it to the provided writer.
	// It returns an error if any encoding or writing operation fails.
	Encode(values []uint16, writer io.Writer) error
}

// ArrayDecoder defines the interface for decoding an array of uint16 values from a reader.
type ArrayDecoder interface {
	// Decode reads a specified number of uint16 values from the reader and returns them as an array.
	// It returns an error if any reading or decoding operation fails.
	Decode(reader io.Reader, length int) ([]uint16, error)
}

// ArrayEncoderDecoder combines both encoding and decoding methods into one interface.
type ArrayEncoderDecoder interface {
	ArrayEncoder
	ArrayDecoder
}

// PlainEncoder implements ArrayEncoder and ArrayDecoder using plain encoding.
// Plain encoding writes the values as they are without any compression.
type PlainEncoder struct{}

// NewPlainEncoder creates and returns a new instance of PlainEncoder.
func NewPlainEncoder() *PlainEncoder {
	return &PlainEncoder{}
}

// Encode writes the given array of uint16 values directly to the writer without any compression.
func (p *PlainEncoder) Encode(values []uint16, writer io.Writer) error {
	for _, v := range values {
		if err := binary.Write(writer, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a specified number of uint16 values from the reader and returns them as an array.
func (p *PlainEncoder) Decode(reader io.Reader, length int) ([]uint16, error) {
	values := make([]uint16, length)
	for i := 0; i < length; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &values[i]); err != nil {
			return nil, err
		}
	}
	return values, nil
}
