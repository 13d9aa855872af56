package roaring

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunContainerAddMergesAdjacent(t *testing.T) {
	rc := newRunContainer()
	assert.True(t, rc.add(5))
	assert.True(t, rc.add(6))
	assert.True(t, rc.add(4))
	assert.False(t, rc.add(5), "re-adding an already-covered value should report no change")

	assert.Equal(t, 1, rc.numRuns(), "consecutive values must merge into a single run")
	assert.Equal(t, 3, rc.cardinality())
}

func TestRunContainerAddCreatesSeparateRuns(t *testing.T) {
	rc := newRunContainer()
	rc.add(1)
	rc.add(100)
	assert.Equal(t, 2, rc.numRuns())
	assert.True(t, rc.contains(1))
	assert.True(t, rc.contains(100))
	assert.False(t, rc.contains(50))
}

func TestRunContainerAddBridgesTwoRuns(t *testing.T) {
	rc := newRunContainer()
	rc.add(1)
	rc.add(3)
	assert.Equal(t, 2, rc.numRuns())

	rc.add(2)
	assert.Equal(t, 1, rc.numRuns(), "filling the gap must merge both runs into one")
	assert.Equal(t, 3, rc.cardinality())
}

func TestRunContainerRemoveSplitsRun(t *testing.T) {
	rc := newRunContainer()
	for v := uint16(0); v <= 10; v++ {
		rc.add(v)
	}
	assert.Equal(t, 1, rc.numRuns())

	assert.True(t, rc.remove(5))
	assert.Equal(t, 2, rc.numRuns())
	assert.False(t, rc.contains(5))
	assert.True(t, rc.contains(4))
	assert.True(t, rc.contains(6))
	assert.Equal(t, 10, rc.cardinality())
}

func TestRunContainerRemoveShrinksRunEdges(t *testing.T) {
	rc := newRunContainer()
	for v := uint16(0); v <= 5; v++ {
		rc.add(v)
	}

	assert.True(t, rc.remove(0))
	assert.True(t, rc.contains(1))
	assert.False(t, rc.contains(0))

	assert.True(t, rc.remove(5))
	assert.False(t, rc.contains(5))
	assert.True(t, rc.contains(4))
}

func TestRunContainerRemoveEntireRun(t *testing.T) {
	rc := newRunContainer()
	rc.add(7)
	assert.True(t, rc.remove(7))
	assert.Equal(t, 0, rc.numRuns())
	assert.Equal(t, 0, rc.cardinality())
}

func TestRunContainerIsFull(t *testing.T) {
	rc := newRunContainerRange(0, 0xFFFF)
	assert.True(t, rc.isFull())

	partial := newRunContainerRange(0, 100)
	assert.False(t, partial.isFull())
}

func TestRunContainerUnion(t *testing.T) {
	a := newRunContainer()
	for _, v := range []uint16{1, 2, 3, 10} {
		a.add(v)
	}
	b := newRunContainer()
	for _, v := range []uint16{3, 4, 20} {
		b.add(v)
	}

	u := a.union(b)
	assert.Equal(t, 6, u.cardinality())
	for _, v := range []uint16{1, 2, 3, 4, 10, 20} {
		assert.True(t, u.contains(v))
	}
}

func TestRunContainerIntersection(t *testing.T) {
	a := newRunContainerRange(0, 10)
	b := newRunContainerRange(5, 15)

	i := a.intersection(b)
	assert.Equal(t, 6, i.cardinality())
	for v := uint16(5); v <= 10; v++ {
		assert.True(t, i.contains(v))
	}
	assert.False(t, i.contains(4))
	assert.False(t, i.contains(11))
}

func TestRunContainerIntersectionDisjoint(t *testing.T) {
	a := newRunContainerRange(0, 5)
	b := newRunContainerRange(10, 15)

	i := a.intersection(b)
	assert.Equal(t, 0, i.cardinality())
}

func TestRunContainerToEfficientContainerPicksSmallest(t *testing.T) {
	// A single long run is far cheaper as a run container than as an array
	// or a fixed-size bitset.
	dense := newRunContainerRange(0, 60000)
	eff := dense.toEfficientContainer()
	assert.Equal(t, typeRun, eff.typecode())

	// A handful of scattered singleton runs is cheaper as an array.
	scattered := newRunContainer()
	for _, v := range []uint16{1, 1000, 2000, 3000, 4000} {
		scattered.add(v)
	}
	eff = scattered.toEfficientContainer()
	assert.Equal(t, typeArray, eff.typecode())
}

func TestRunContainerConversions(t *testing.T) {
	rc := newRunContainer()
	for _, v := range []uint16{1, 2, 3, 100} {
		rc.add(v)
	}

	ac := rc.toArray()
	assert.Equal(t, []uint16{1, 2, 3, 100}, ac.values)

	bc := rc.toBitset()
	assert.Equal(t, rc.cardinality(), bc.cardinality())
	for _, v := range ac.values {
		assert.True(t, bc.contains(v))
	}
}

func TestRunContainerSerializationRoundTrip(t *testing.T) {
	rc := newRunContainer()
	for _, v := range []uint16{1, 2, 3, 10, 20, 21, 22, 65535} {
		rc.add(v)
	}

	var buf bytes.Buffer
	n, err := rc.writeTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, rc.serializedSizeInBytes(), n)

	decoded, err := readRunContainer(&buf)
	require.NoError(t, err)
	assert.Equal(t, rc.runs, decoded.runs)
}

func TestRunContainerEquals(t *testing.T) {
	a := newRunContainer()
	b := newRunContainer()
	for _, v := range []uint16{1, 2, 3} {
		a.add(v)
		b.add(v)
	}
	assert.True(t, a.equals(b))

	b.add(100)
	assert.False(t, a.equals(b))
}
