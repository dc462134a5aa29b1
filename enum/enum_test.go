package enum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/prim"
	"github.com/binaryframe/frame/wire"
)

func int16Storage(t *testing.T) wire.Codec {
	t.Helper()
	c, ok := prim.New("int16")
	require.True(t, ok)
	return c
}

func TestDenseRoundTrip(t *testing.T) {
	c, err := Dense(int16Storage(t), []string{"red", "green", "blue"})
	require.NoError(t, err)

	buffers, err := c.Write("green")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1}, buffers[0])

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "green", res.Value)
}

func TestExplicitRoundTrip(t *testing.T) {
	c, err := Explicit(int16Storage(t), map[string]int64{"ok": 200, "notFound": 404})
	require.NoError(t, err)

	buffers, err := c.Write("notFound")
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "notFound", res.Value)
}

func TestSignedSixteenBitBoundaryValues(t *testing.T) {
	c, err := Explicit(int16Storage(t), map[string]int64{
		"min": math.MinInt16,
		"max": math.MaxInt16,
	})
	require.NoError(t, err)

	for _, tag := range []string{"min", "max"} {
		buffers, err := c.Write(tag)
		require.NoError(t, err)
		res, err := c.Read(bs.Wrap(buffers...))
		require.NoError(t, err)
		require.True(t, res.Done)
		assert.Equal(t, tag, res.Value)
	}
}

func TestExplicitRejectsOutOfRangeValue(t *testing.T) {
	_, err := Explicit(int16Storage(t), map[string]int64{"tooBig": math.MaxInt16 + 1})
	assert.Error(t, err)
}

func TestExplicitRejectsDuplicateValue(t *testing.T) {
	_, err := Explicit(int16Storage(t), map[string]int64{"a": 1, "b": 1})
	assert.Error(t, err)
}

func TestReadUnknownStoredValue(t *testing.T) {
	c, err := Dense(int16Storage(t), []string{"only"})
	require.NoError(t, err)

	raw, _ := int16Storage(t).Write(int16(99))
	_, err = c.Read(bs.Wrap(raw...))
	assert.ErrorIs(t, err, wire.ErrUnknownEnumValue)
}

func TestWriteUnknownTag(t *testing.T) {
	c, err := Dense(int16Storage(t), []string{"only"})
	require.NoError(t, err)

	_, err = c.Write("nope")
	assert.ErrorIs(t, err, wire.ErrUnknownEnumTag)
}

func TestSizeofDelegatesToStorage(t *testing.T) {
	c, err := Dense(int16Storage(t), []string{"a", "b"})
	require.NoError(t, err)
	n, ok := c.Sizeof()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}
