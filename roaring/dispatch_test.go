package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// toUint16Slice extracts a sorted slice of uint16 values from any container,
// independent of its representation, for comparing dispatch results.
func toUint16Slice(c container) []uint16 {
	var out []uint16
	switch cc := c.(type) {
	case *arrayContainer:
		out = append(out, cc.values...)
	case *bitsetContainer:
		for v := 0; v <= 0xFFFF; v++ {
			if cc.contains(uint16(v)) {
				out = append(out, uint16(v))
			}
		}
	case *runContainer:
		for _, iv := range cc.runs {
			for v := int(iv.start); v <= int(iv.last()); v++ {
				out = append(out, uint16(v))
			}
		}
	}
	return out
}

func arrayOf(values ...uint16) *arrayContainer {
	ac := newArrayContainer()
	for _, v := range values {
		ac.add(v)
	}
	return ac
}

func bitsetOf(values ...uint16) *bitsetContainer {
	bc := newBitsetContainer()
	for _, v := range values {
		bc.setBit(v)
	}
	return bc
}

func runOf(values ...uint16) *runContainer {
	rc := newRunContainer()
	for _, v := range values {
		rc.add(v)
	}
	return rc
}

// operands returns one instance of each of the three representations holding
// the same values, so every dispatch cell of a 3x3 table can be driven from
// the same fixture.
func operands(values ...uint16) []struct {
	c container
	t typecode
} {
	return []struct {
		c container
		t typecode
	}{
		{arrayOf(values...), typeArray},
		{bitsetOf(values...), typeBitset},
		{runOf(values...), typeRun},
	}
}

func TestContainerAndAllRepresentationPairs(t *testing.T) {
	left := []uint16{1, 2, 3, 4, 5}
	right := []uint16{3, 4, 5, 6, 7}
	want := []uint16{3, 4, 5}

	for _, a := range operands(left...) {
		for _, b := range operands(right...) {
			result, _ := containerAnd(a.c, a.t, b.c, b.t)
			assert.Equal(t, want, toUint16Slice(result), "AND(%v, %v)", a.t, b.t)
		}
	}
}

func TestContainerOrAllRepresentationPairs(t *testing.T) {
	left := []uint16{1, 2, 3}
	right := []uint16{3, 4, 5}
	want := []uint16{1, 2, 3, 4, 5}

	for _, a := range operands(left...) {
		for _, b := range operands(right...) {
			result, _ := containerOr(a.c, a.t, b.c, b.t)
			assert.Equal(t, want, toUint16Slice(result), "OR(%v, %v)", a.t, b.t)
		}
	}
}

func TestContainerXorAllRepresentationPairs(t *testing.T) {
	left := []uint16{1, 2, 3, 4}
	right := []uint16{3, 4, 5, 6}
	want := []uint16{1, 2, 5, 6}

	for _, a := range operands(left...) {
		for _, b := range operands(right...) {
			result, _ := containerXor(a.c, a.t, b.c, b.t)
			assert.Equal(t, want, toUint16Slice(result), "XOR(%v, %v)", a.t, b.t)
		}
	}
}

func TestContainerAndNotAllRepresentationPairs(t *testing.T) {
	left := []uint16{1, 2, 3, 4}
	right := []uint16{3, 4, 5, 6}
	want := []uint16{1, 2}

	for _, a := range operands(left...) {
		for _, b := range operands(right...) {
			result, _ := containerAndNot(a.c, a.t, b.c, b.t)
			assert.Equal(t, want, toUint16Slice(result), "ANDNOT(%v, %v)", a.t, b.t)
		}
	}
}

// TestAndNotRunBitsetOperandOrder pins down that a run-container ANDNOT a
// bitset keeps run elements absent from the bitset, not the reverse: a
// transposed implementation would return the bitset-only elements instead.
func TestAndNotRunBitsetOperandOrder(t *testing.T) {
	rc := runOf(1, 2, 3, 4, 5)
	bc := bitsetOf(3, 4, 100, 101)

	result := andNotRunBitset(rc, bc)
	assert.Equal(t, []uint16{1, 2, 5}, toUint16Slice(result))
}

func TestContainerIAndConsumesC1(t *testing.T) {
	a := bitsetOf(1, 2, 3, 4)
	b := bitsetOf(2, 3)

	result, _ := containerIAnd(a, typeBitset, b, typeBitset)
	assert.Equal(t, []uint16{2, 3}, toUint16Slice(result))
}

func TestContainerIOrConsumesC1(t *testing.T) {
	a := bitsetOf(1, 2)
	b := arrayOf(3, 4)

	result, rt := containerIOr(a, typeBitset, b, typeArray)
	assert.Equal(t, typeBitset, rt)
	assert.Equal(t, []uint16{1, 2, 3, 4}, toUint16Slice(result))
}

func TestContainerIXorConsumesC1(t *testing.T) {
	a := bitsetOf(1, 2, 3)
	b := bitsetOf(2, 3, 4)

	result, _ := containerIXor(a, typeBitset, b, typeBitset)
	assert.Equal(t, []uint16{1, 4}, toUint16Slice(result))
}

func TestContainerIAndNotConsumesC1(t *testing.T) {
	a := bitsetOf(1, 2, 3)
	b := bitsetOf(2)

	result, _ := containerIAndNot(a, typeBitset, b, typeBitset)
	assert.Equal(t, []uint16{1, 3}, toUint16Slice(result))
}

func TestContainerLazyOrLeavesCardinalityStaleUntilRepair(t *testing.T) {
	// Cardinality is kept above DefaultMaxSize so repair's bitset/array
	// decision leaves the result as a bitset, exercising bc.stale directly.
	a := newBitsetContainer()
	for i := uint16(0); i < 5000; i += 2 {
		a.setBit(i)
	}
	b := newBitsetContainer()
	for i := uint16(1); i < 5000; i += 2 {
		b.setBit(i)
	}

	result, rt := containerLazyOr(a, typeBitset, b, typeBitset)
	bc := result.(*bitsetContainer)
	assert.True(t, bc.stale, "lazy OR must leave the cardinality cache marked stale")

	repaired, repairedType := containerRepairAfterLazy(result, rt)
	assert.Equal(t, typeBitset, repairedType)
	assert.False(t, repaired.(*bitsetContainer).stale)
	assert.Equal(t, repaired.cardinality(), len(toUint16Slice(repaired)))
}

func TestContainerLazyOrOnSmallBitsetsRepairsDownToArray(t *testing.T) {
	a := bitsetOf(1, 2, 3)
	b := bitsetOf(4, 5, 6)

	result, rt := containerLazyOr(a, typeBitset, b, typeBitset)
	assert.True(t, result.(*bitsetContainer).stale)

	repaired, repairedType := containerRepairAfterLazy(result, rt)
	assert.Equal(t, typeArray, repairedType)
	assert.Equal(t, []uint16{1, 2, 3, 4, 5, 6}, repaired.(*arrayContainer).values)
}

func TestContainerRepairAfterLazyDowngradesSmallBitsetToArray(t *testing.T) {
	bc := bitsetOf(1, 2, 3)
	bc.stale = true

	repaired, rt := containerRepairAfterLazy(bc, typeBitset)
	assert.Equal(t, typeArray, rt)
	assert.Equal(t, []uint16{1, 2, 3}, repaired.(*arrayContainer).values)
}

func TestContainerRepairAfterLazyKeepsLargeBitsetAsBitset(t *testing.T) {
	bc := newBitsetContainer()
	for i := uint16(0); i < 5000; i++ {
		bc.setBit(i)
	}
	bc.stale = true

	repaired, rt := containerRepairAfterLazy(bc, typeBitset)
	assert.Equal(t, typeBitset, rt)
	assert.Equal(t, 5000, repaired.cardinality())
}

func TestContainerRepairAfterLazyUnwrapsSoleOwnerShared(t *testing.T) {
	bc := bitsetOf(1, 2, 3)
	bc.stale = true
	shared, st := getSharedContainer(bc, typeBitset, 1)

	repaired, rt := containerRepairAfterLazy(shared, st)
	assert.Equal(t, typeArray, rt, "a sole-owner shared wrapper must unwrap after repair")
	assert.Equal(t, []uint16{1, 2, 3}, repaired.(*arrayContainer).values)
}

func TestContainerRepairAfterLazyKeepsSharedWrapperWhenRefcountAboveOne(t *testing.T) {
	bc := bitsetOf(1, 2, 3)
	bc.stale = true
	shared, st := getSharedContainer(bc, typeBitset, 2)

	repaired, rt := containerRepairAfterLazy(shared, st)
	assert.Equal(t, typeShared, rt)
	sc := repaired.(*sharedContainer)
	assert.Equal(t, 2, sc.refcount)
}

func TestContainerEqualsAcrossRepresentations(t *testing.T) {
	values := []uint16{1, 2, 3, 100, 101}
	for _, a := range operands(values...) {
		for _, b := range operands(values...) {
			assert.True(t, containerEquals(a.c, a.t, b.c, b.t), "equals(%v, %v)", a.t, b.t)
		}
	}
}

func TestContainerEqualsDetectsDifference(t *testing.T) {
	a := arrayOf(1, 2, 3)
	b := bitsetOf(1, 2, 4)
	assert.False(t, containerEquals(a, typeArray, b, typeBitset))
}

func TestContainerAddConvertsArrayToBitsetPastMaxSize(t *testing.T) {
	ac := newArrayContainer()
	for i := uint16(0); i < DefaultMaxSize; i++ {
		ac.add(i)
	}

	c, ct, changed := containerAdd(ac, typeArray, DefaultMaxSize)
	assert.True(t, changed)
	assert.Equal(t, typeBitset, ct)
	assert.True(t, c.contains(DefaultMaxSize))
}

func TestContainerAddReportsNoChangeOnDuplicate(t *testing.T) {
	ac := arrayOf(1, 2, 3)
	_, _, changed := containerAdd(ac, typeArray, 2)
	assert.False(t, changed)
}

func TestContainerRemoveDispatchesByType(t *testing.T) {
	for _, o := range operands(1, 2, 3) {
		c, ct, changed := containerRemove(o.c, o.t, 2)
		assert.True(t, changed)
		assert.Equal(t, o.t, ct)
		assert.False(t, c.contains(2))
	}
}

func TestContainerAddUnwrapsSharedContainer(t *testing.T) {
	ac := arrayOf(1, 2)
	shared, st := getSharedContainer(ac, typeArray, 1)

	c, ct, changed := containerAdd(shared, st, 3)
	assert.True(t, changed)
	assert.Equal(t, typeArray, ct)
	assert.Same(t, ac, c, "sole-owner shared container must be stolen, not cloned, on add")
}

func TestOrBitsetRunReturnsRunWhenFull(t *testing.T) {
	full := newRunContainerRange(0, 0xFFFF)
	bc := bitsetOf(1, 2, 3)

	result, rt := containerOr(bc, typeBitset, full, typeRun)
	assert.Equal(t, typeRun, rt)
	assert.Equal(t, 0x10000, result.cardinality())
}
