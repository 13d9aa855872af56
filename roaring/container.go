// Package roaring implements a compressed, in-memory set of 32-bit unsigned
// integers (a "roaring bitmap"). Values are split into a 16-bit high key and
// a 16-bit low value; the high key selects a container that holds the low
// 16 bits of every member sharing that key. A container is an array, a
// bitset or a run. Add turns an array into a bitset once it grows past the
// crossover; Remove never changes a container's representation. Run
// containers come only from RunOptimize and from set-operation results.
package roaring

import "fmt"

// DefaultMaxSize is the cardinality crossover between the array and bitset
// representations: a container at or below this cardinality is stored as a
// sorted array of uint16, one above it as a 65536-bit dense bitmap.
const DefaultMaxSize = 4096

// typecode tags the concrete representation behind a container handle.
type typecode uint8

const (
	typeArray typecode = iota + 1
	typeRun
	typeBitset
	typeShared
)

func (t typecode) String() string {
	switch t {
	case typeArray:
		return "array"
	case typeRun:
		return "run"
	case typeBitset:
		return "bitset"
	case typeShared:
		return "shared"
	default:
		return fmt.Sprintf("typecode(%d)", uint8(t))
	}
}

// container is the representation of a subset of {0, ..., 65535}. Every
// non-shared container (array, bitset, run) implements it; sharedContainer
// wraps one of the three for copy-on-write aliasing but is never itself
// nested inside another sharedContainer.
type container interface {
	clone() container
	contains(v uint16) bool
	cardinality() int

	// add reports whether v was newly inserted.
	add(v uint16) bool
	// remove reports whether v was present and is now gone.
	remove(v uint16) bool

	iterate(fn func(v uint16) bool)
	toUint32Slice(base uint32) []uint32

	minimum() uint16
	maximum() uint16

	typecode() typecode
	sizeInBytes() int
}

// singleton interval helpers used by run.go.
func minUint16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

func maxUint16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

// containerClone deep-copies c. It must never be called with typeShared —
// shared containers are aliased via refcount bump (getSharedContainer), not
// cloned; see shared.go.
func containerClone(c container, t typecode) container {
	if t == typeShared {
		panic("roaring: cloning a shared container directly is not allowed")
	}
	return c.clone()
}

// containerContains dispatches contains through a shared wrapper if needed.
func containerContains(c container, t typecode, v uint16) bool {
	c, _ = unwrapShared(c, t)
	return c.contains(v)
}

// containerCardinality dispatches cardinality through a shared wrapper.
func containerCardinality(c container, t typecode) int {
	c, _ = unwrapShared(c, t)
	return c.cardinality()
}

// containerIterate visits every element of c, in ascending order, as
// base+uint32(v), calling fn for each. Iteration stops early if fn returns
// false.
func containerIterate(c container, t typecode, base uint32, fn func(v uint32) bool) {
	c, _ = unwrapShared(c, t)
	c.iterate(func(v uint16) bool {
		return fn(base | uint32(v))
	})
}

// containerToUint32Slice returns every element of c, as base|v, in a new slice.
func containerToUint32Slice(c container, t typecode, base uint32) []uint32 {
	c, _ = unwrapShared(c, t)
	return c.toUint32Slice(base)
}
