package roaring

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	putUint16(buf, 0xBEEF)
	assert.Equal(t, uint16(0xBEEF), getUint16(buf))
}

func TestPutGetUint32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	putUint32(buf, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), getUint32(buf))
}

func TestPutGetUint64RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	putUint64(buf, 0x0123456789ABCDEF)
	assert.Equal(t, uint64(0x0123456789ABCDEF), getUint64(buf))
}

func TestWriteReadUint16RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUint16(&buf, 12345))

	v, err := readUint16(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(12345), v)
}

func TestReadUint16ErrorsOnShortInput(t *testing.T) {
	buf := bytes.NewReader([]byte{0x01})
	_, err := readUint16(buf)
	assert.Error(t, err)
}

func TestContainerSizeInBytesMatchesEachRepresentation(t *testing.T) {
	values := []uint16{1, 2, 3, 1000}

	ac := arrayOf(values...)
	assert.Equal(t, ac.serializedSizeInBytes(), containerSizeInBytes(ac, typeArray))

	bc := bitsetOf(values...)
	assert.Equal(t, bc.serializedSizeInBytes(), containerSizeInBytes(bc, typeBitset))

	rc := runOf(values...)
	assert.Equal(t, rc.serializedSizeInBytes(), containerSizeInBytes(rc, typeRun))
}

func TestContainerSizeInBytesUnwrapsShared(t *testing.T) {
	ac := arrayOf(1, 2, 3)
	shared, st := getSharedContainer(ac, typeArray, 1)
	assert.Equal(t, ac.serializedSizeInBytes(), containerSizeInBytes(shared, st))
}

func TestContainerWriteToReadFromRoundTripPerTypecode(t *testing.T) {
	values := []uint16{1, 2, 3, 10, 20, 65535}

	cases := []struct {
		c container
		t typecode
	}{
		{arrayOf(values...), typeArray},
		{bitsetOf(values...), typeBitset},
		{runOf(values...), typeRun},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		n, err := containerWriteTo(tc.c, tc.t, &buf)
		require.NoError(t, err, tc.t)
		assert.Equal(t, containerSizeInBytes(tc.c, tc.t), n, tc.t)

		decoded, err := containerReadFrom(tc.t, &buf)
		require.NoError(t, err, tc.t)
		assert.True(t, containerEquals(tc.c, tc.t, decoded, tc.t), "round trip mismatch for %v", tc.t)
	}
}

func TestContainerWriteToUnwrapsShared(t *testing.T) {
	ac := arrayOf(1, 2, 3)
	shared, st := getSharedContainer(ac, typeArray, 1)

	var buf bytes.Buffer
	n, err := containerWriteTo(shared, st, &buf)
	require.NoError(t, err)
	assert.Equal(t, ac.serializedSizeInBytes(), n)
}

func TestContainerReadFromRejectsUnexpectedTypecode(t *testing.T) {
	_, err := containerReadFrom(typeShared, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestContainerEqualsGenericCrossRepresentation(t *testing.T) {
	ac := arrayOf(1, 2, 3, 100)
	bc := bitsetOf(1, 2, 3, 100)
	rc := runOf(1, 2, 3, 100)

	assert.True(t, containerEqualsGeneric(ac, bc))
	assert.True(t, containerEqualsGeneric(bc, rc))
	assert.True(t, containerEqualsGeneric(rc, ac))
}

func TestContainerEqualsGenericDetectsCardinalityMismatch(t *testing.T) {
	ac := arrayOf(1, 2, 3)
	bc := bitsetOf(1, 2, 3, 4)
	assert.False(t, containerEqualsGeneric(ac, bc))
}

func TestContainerEqualsGenericDetectsValueMismatchAtEqualCardinality(t *testing.T) {
	ac := arrayOf(1, 2, 3)
	bc := bitsetOf(1, 2, 4)
	assert.False(t, containerEqualsGeneric(ac, bc))
}
