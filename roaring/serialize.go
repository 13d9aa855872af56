package roaring

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Portable on-disk layout. A container serializes without its own typecode;
// the enclosing Bitmap records typecodes out of band so the bytes stay
// bit-exact with peer ports (Java, the reference Go/C implementations):
//
//   - array:  u16 cardinality, then that many little-endian u16 values.
//   - bitset: 1024 little-endian u64 words (8192 bytes), no header.
//   - run:    u16 n_runs, then that many (start u16, length_minus_one u16)
//     pairs, all little-endian.

func putUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func getUint16(b []byte) uint16    { return binary.LittleEndian.Uint16(b) }
func putUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func getUint32(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }
func putUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func getUint64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	putUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return getUint16(buf[:]), nil
}

// containerSizeInBytes returns the exact serialized size of c, matching
// whatever writeTo(c) would produce.
func containerSizeInBytes(c container, t typecode) int {
	c, t = unwrapShared(c, t)
	switch cc := c.(type) {
	case *arrayContainer:
		return cc.serializedSizeInBytes()
	case *bitsetContainer:
		return cc.serializedSizeInBytes()
	case *runContainer:
		return cc.serializedSizeInBytes()
	default:
		panic(fmt.Sprintf("roaring: containerSizeInBytes: unexpected typecode %v", t))
	}
}

// containerWriteTo serializes c (unwrapping any shared indirection first)
// and returns the number of bytes written.
func containerWriteTo(c container, t typecode, w io.Writer) (int, error) {
	c, t = unwrapShared(c, t)
	switch cc := c.(type) {
	case *arrayContainer:
		return cc.writeTo(w)
	case *bitsetContainer:
		return cc.writeTo(w)
	case *runContainer:
		return cc.writeTo(w)
	default:
		return 0, fmt.Errorf("roaring: containerWriteTo: unexpected typecode %v", t)
	}
}

// containerReadFrom deserializes a container of the given type from r. A
// malformed buffer (too short, an impossible header value, or runs/values
// that break the sortedness/adjacency invariants) is reported as an error;
// no partial container is ever returned.
func containerReadFrom(t typecode, r io.Reader) (container, error) {
	switch t {
	case typeArray:
		return readArrayContainer(r)
	case typeBitset:
		return readBitsetContainer(r)
	case typeRun:
		return readRunContainer(r)
	default:
		return nil, fmt.Errorf("roaring: containerReadFrom: unexpected typecode %v", t)
	}
}

// containerEqualsGeneric compares two containers of possibly different
// representations by denoted set, not by internal layout: array==bitset
// requires the array's values to be exactly the bitset's set bits, and so on
// for every unordered pair of representations.
func containerEqualsGeneric(a, b container) bool {
	if a.cardinality() != b.cardinality() {
		return false
	}
	equal := true
	a.iterate(func(v uint16) bool {
		if !b.contains(v) {
			equal = false
			return false
		}
		return true
	})
	return equal
}
