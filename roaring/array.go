package roaring

import (
	"fmt"
	"io"
	"sort"

	"roaring/encoders"
)

// arrayContainer is a sorted, duplicate-free sequence of uint16 values. It is
// the cheapest representation for sparse containers (cardinality at or below
// DefaultMaxSize).
type arrayContainer struct {
	values  []uint16
	encoder encoders.ArrayEncoderDecoder
}

func newArrayContainer() *arrayContainer {
	return &arrayContainer{encoder: encoders.NewPlainEncoder()}
}

func newArrayContainerCapacity(n int) *arrayContainer {
	return &arrayContainer{values: make([]uint16, 0, n), encoder: encoders.NewPlainEncoder()}
}

func (ac *arrayContainer) clone() container {
	values := make([]uint16, len(ac.values))
	copy(values, ac.values)
	return &arrayContainer{values: values, encoder: ac.encoder}
}

func (ac *arrayContainer) search(v uint16) (int, bool) {
	i := sort.Search(len(ac.values), func(i int) bool { return ac.values[i] >= v })
	return i, i < len(ac.values) && ac.values[i] == v
}

func (ac *arrayContainer) contains(v uint16) bool {
	_, ok := ac.search(v)
	return ok
}

func (ac *arrayContainer) cardinality() int { return len(ac.values) }

// add inserts v, maintaining sort order, and reports whether it was new.
// Conversion to a bitset when cardinality would exceed DefaultMaxSize is the
// dispatcher's responsibility (see dispatch.go's containerAdd), not this
// method's — the container itself never converts on its own.
func (ac *arrayContainer) add(v uint16) bool {
	i, found := ac.search(v)
	if found {
		return false
	}
	ac.values = append(ac.values, 0)
	copy(ac.values[i+1:], ac.values[i:])
	ac.values[i] = v
	return true
}

func (ac *arrayContainer) remove(v uint16) bool {
	i, found := ac.search(v)
	if !found {
		return false
	}
	copy(ac.values[i:], ac.values[i+1:])
	ac.values = ac.values[:len(ac.values)-1]
	return true
}

func (ac *arrayContainer) iterate(fn func(v uint16) bool) {
	for _, v := range ac.values {
		if !fn(v) {
			return
		}
	}
}

func (ac *arrayContainer) toUint32Slice(base uint32) []uint32 {
	out := make([]uint32, len(ac.values))
	for i, v := range ac.values {
		out[i] = base | uint32(v)
	}
	return out
}

func (ac *arrayContainer) minimum() uint16 {
	if len(ac.values) == 0 {
		return 0
	}
	return ac.values[0]
}

func (ac *arrayContainer) maximum() uint16 {
	if len(ac.values) == 0 {
		return 0
	}
	return ac.values[len(ac.values)-1]
}

func (ac *arrayContainer) typecode() typecode { return typeArray }

// rank returns the number of values <= v.
func (ac *arrayContainer) rank(v uint16) int {
	return sort.Search(len(ac.values), func(i int) bool { return ac.values[i] > v })
}

func (ac *arrayContainer) equals(other container) bool {
	switch o := other.(type) {
	case *arrayContainer:
		if len(ac.values) != len(o.values) {
			return false
		}
		for i := range ac.values {
			if ac.values[i] != o.values[i] {
				return false
			}
		}
		return true
	default:
		return containerEqualsGeneric(ac, other)
	}
}

// toBitset converts ac to the equivalent bitset container.
func (ac *arrayContainer) toBitset() *bitsetContainer {
	bc := newBitsetContainer()
	for _, v := range ac.values {
		bc.setBit(v)
	}
	bc.card = len(ac.values)
	return bc
}

// toRun converts ac to the equivalent run container, merging adjacent values
// into intervals. Used by the efficient-conversion path.
func (ac *arrayContainer) toRun() *runContainer {
	rc := newRunContainer()
	if len(ac.values) == 0 {
		return rc
	}
	start := ac.values[0]
	prev := start
	for _, v := range ac.values[1:] {
		if v == prev+1 {
			prev = v
			continue
		}
		rc.appendRun(interval{start: start, lengthM1: prev - start})
		start, prev = v, v
	}
	rc.appendRun(interval{start: start, lengthM1: prev - start})
	return rc
}

// serializedSizeInBytes is the exact on-disk size of the portable layout: a
// little-endian u16 cardinality header followed by that many little-endian
// u16 values.
func (ac *arrayContainer) serializedSizeInBytes() int {
	return 2 + 2*len(ac.values)
}

func (ac *arrayContainer) sizeInBytes() int { return ac.serializedSizeInBytes() }

func (ac *arrayContainer) writeTo(w io.Writer) (int, error) {
	n := len(ac.values)
	if n > 1<<16-1 {
		return 0, fmt.Errorf("roaring: array container cardinality %d does not fit in u16 header", n)
	}
	if err := writeUint16(w, uint16(n)); err != nil {
		return 0, fmt.Errorf("roaring: writing array container length: %w", err)
	}
	if err := ac.encoder.Encode(ac.values, w); err != nil {
		return 0, fmt.Errorf("roaring: encoding array container: %w", err)
	}
	return ac.serializedSizeInBytes(), nil
}

func readArrayContainer(r io.Reader) (*arrayContainer, error) {
	n, err := readUint16(r)
	if err != nil {
		return nil, fmt.Errorf("roaring: reading array container length: %w", err)
	}
	ac := newArrayContainerCapacity(int(n))
	values, err := ac.encoder.Decode(r, int(n))
	if err != nil {
		return nil, fmt.Errorf("roaring: decoding array container: %w", err)
	}
	if len(values) != int(n) {
		return nil, fmt.Errorf("roaring: array container: expected %d values, decoded %d", n, len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return nil, fmt.Errorf("roaring: array container values not strictly ascending at index %d", i)
		}
	}
	ac.values = values
	return ac, nil
}
