package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/prim"
	"github.com/binaryframe/frame/wire"
)

func mustPrim(t *testing.T, tag string) wire.Codec {
	t.Helper()
	c, ok := prim.New(tag)
	require.True(t, ok)
	return c
}

func TestTupleRoundTrip(t *testing.T) {
	c := Tuple([]wire.Codec{mustPrim(t, "int32"), mustPrim(t, "byte")})

	buffers, err := c.Write([]any{int32(7), int8(1)})
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, []any{int32(7), int8(1)}, res.Value)
}

func TestTupleShapeMismatch(t *testing.T) {
	c := Tuple([]wire.Codec{mustPrim(t, "int32")})
	_, err := c.Write([]any{int32(1), int32(2)})
	assert.ErrorIs(t, err, wire.ErrShapeMismatch)
}

func TestTupleSuspendsAcrossChildren(t *testing.T) {
	c := Tuple([]wire.Codec{mustPrim(t, "int32"), mustPrim(t, "int32")})
	buffers, err := c.Write([]any{int32(1), int32(2)})
	require.NoError(t, err)
	whole := bs.Wrap(buffers...).Contiguous()

	res, err := c.Read(bs.Wrap(whole[:5]))
	require.NoError(t, err)
	require.False(t, res.Done)

	for i := 5; i < len(whole); i++ {
		fed := res.Remainder.Append([]byte{whole[i]})
		res, err = res.Resumable.Read(fed)
		require.NoError(t, err)
		if res.Done {
			break
		}
	}
	require.True(t, res.Done)
	assert.Equal(t, []any{int32(1), int32(2)}, res.Value)
}

func TestOrderedMapRoundTrip(t *testing.T) {
	keys := []string{"id", "flag"}
	children := []wire.Codec{mustPrim(t, "int32"), mustPrim(t, "byte")}
	c := OrderedMap(keys, children)

	m := NewMap(keys)
	m.Set("id", int32(9))
	m.Set("flag", int8(1))

	buffers, err := c.Write(m)
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	got := res.Value.(*Map)
	v, ok := got.Get("id")
	require.True(t, ok)
	assert.Equal(t, int32(9), v)
	v, ok = got.Get("flag")
	require.True(t, ok)
	assert.Equal(t, int8(1), v)
}

func TestOrderedMapPreservesDeclarationOrderOnWire(t *testing.T) {
	keys := []string{"b", "a"}
	children := []wire.Codec{mustPrim(t, "byte"), mustPrim(t, "byte")}
	c := OrderedMap(keys, children)

	m := NewMap(keys)
	m.Set("a", int8(1))
	m.Set("b", int8(2))

	buffers, err := c.Write(m)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 1}, bs.Wrap(buffers...).Contiguous())
}

func TestOrderedMapMissingKey(t *testing.T) {
	keys := []string{"a"}
	c := OrderedMap(keys, []wire.Codec{mustPrim(t, "byte")})
	_, err := c.Write(NewMap(keys))
	assert.ErrorIs(t, err, wire.ErrShapeMismatch)
}

func TestPrefixRepeatedRoundTrip(t *testing.T) {
	c := PrefixRepeated(mustPrim(t, "int32"), mustPrim(t, "byte"))

	buffers, err := c.Write([]any{int8(1), int8(2), int8(3)})
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, []any{int8(1), int8(2), int8(3)}, res.Value)
}

func TestPrefixRepeatedZeroElements(t *testing.T) {
	c := PrefixRepeated(mustPrim(t, "int32"), mustPrim(t, "byte"))
	buffers, err := c.Write([]any{})
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, []any{}, res.Value)
}

func TestPrefixRepeatedSuspendsOnFastPath(t *testing.T) {
	c := PrefixRepeated(mustPrim(t, "int32"), mustPrim(t, "int16"))
	buffers, err := c.Write([]any{int16(1), int16(2)})
	require.NoError(t, err)
	whole := bs.Wrap(buffers...).Contiguous()

	// Feed only the prefix plus one byte of the first element: the fast
	// path should suspend without attempting a partial element read.
	res, err := c.Read(bs.Wrap(whole[:5]))
	require.NoError(t, err)
	assert.False(t, res.Done)

	for i := 5; i < len(whole); i++ {
		fed := res.Remainder.Append([]byte{whole[i]})
		res, err = res.Resumable.Read(fed)
		require.NoError(t, err)
		if res.Done {
			break
		}
	}
	require.True(t, res.Done)
	assert.Equal(t, []any{int16(1), int16(2)}, res.Value)
}

func TestDelimitedRepeatedRoundTrip(t *testing.T) {
	c := DelimitedRepeated(mustPrim(t, "byte"), [][]byte{[]byte("|")})

	buffers, err := c.Write([]any{int8(1), int8(2), int8(3)})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, '|'}, bs.Wrap(buffers...).Contiguous())

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, []any{int8(1), int8(2), int8(3)}, res.Value)
}

func TestDelimitedRepeatedEmpty(t *testing.T) {
	c := DelimitedRepeated(mustPrim(t, "byte"), [][]byte{[]byte("|")})
	buffers, err := c.Write([]any{})
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, []any{}, res.Value)
}
