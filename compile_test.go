package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryframe/frame/seq"
)

func TestCompilePrimitive(t *testing.T) {
	c := Must(Prim("int32"))
	roundTripDecode(t, c, int32(42), int32(42))
}

func TestCompileUnknownPrimitiveTag(t *testing.T) {
	_, err := Compile(Prim("int128"))
	assert.Error(t, err)
}

func TestCompileIsIdempotentOverAnAlreadyCompiledCodec(t *testing.T) {
	c := Must(Prim("int32"))
	f := FromCodec(c)
	again, err := Compile(f)
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestCompileSeqTuple(t *testing.T) {
	c := Must(Seq(Prim("int32"), Prim("byte")))
	val := []any{int32(7), int8(1)}
	roundTripDecode(t, c, val, val)
}

func TestCompileConstLiteral(t *testing.T) {
	c := Must(Const("MAGIC"))
	buffers, err := Encode(c, "MAGIC")
	require.NoError(t, err)
	assert.Empty(t, buffers)

	got, err := Decode(c)
	require.NoError(t, err)
	assert.Equal(t, "MAGIC", got)

	_, err = Encode(c, "WRONG")
	assert.ErrorIs(t, err, ErrLiteralMismatch)
}

func TestCompileTupleWithLiteralInterspersed(t *testing.T) {
	c := Must(Seq(Const("HDR"), Prim("int32")))
	buffers, err := Encode(c, []any{"HDR", int32(9)})
	require.NoError(t, err)

	got, err := Decode(c, buffers...)
	require.NoError(t, err)
	assert.Equal(t, []any{"HDR", int32(9)}, got)
}

func TestCompileOrderedMap(t *testing.T) {
	f := OrderedMap(
		Field{Key: "id", Frame: Prim("int32")},
		Field{Key: "flag", Frame: Prim("byte")},
	)
	c := Must(f)

	m := seq.NewMap([]string{"id", "flag"})
	m.Set("id", int32(1))
	m.Set("flag", int8(1))

	buffers, err := Encode(c, m)
	require.NoError(t, err)

	got, err := Decode(c, buffers...)
	require.NoError(t, err)
	gotMap := got.(*seq.Map)
	v, ok := gotMap.Get("id")
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
}

func TestCompileNaturalMapSortsKeys(t *testing.T) {
	f := NaturalMap(map[string]Frame{
		"z": Prim("byte"),
		"a": Prim("byte"),
	})
	c := Must(f)
	n, ok := c.Sizeof()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	m := seq.NewMap([]string{"a", "z"})
	m.Set("z", int8(2))
	m.Set("a", int8(1))
	buffers, err := Encode(c, m)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, ToByteBuffer(buffers))
}

func TestCompileStringFixed(t *testing.T) {
	c := Must(StringFixed("utf-8", 5))
	roundTripDecode(t, c, "hello", "hello")
}

func TestCompileEnum(t *testing.T) {
	c := Must(Enum("red", "green", "blue"))
	roundTripDecode(t, c, "green", "green")
}

func TestCompileEnumStoredAsByte(t *testing.T) {
	c := Must(EnumStoredAs(Prim("byte"), []string{"off", "on"}, nil))
	n, ok := c.Sizeof()
	require.True(t, ok)
	assert.Equal(t, 1, n)
	roundTripDecode(t, c, "on", "on")
}

func TestCompileFiniteFrame(t *testing.T) {
	c := Must(FiniteFrame(DefaultPrefix(), Seq(Prim("int16"), Prim("int16"))))
	val := []any{int16(1), int16(2)}
	roundTripDecode(t, c, val, val)
}

func TestCompileDelimitedFrame(t *testing.T) {
	c := Must(DelimitedFrame(StringUnbounded("utf-8"), []byte("\n")))
	roundTripDecode(t, c, "hello", "hello")
}

func TestCompileRepeatedWithPrefix(t *testing.T) {
	c := Must(Repeated(Prim("byte"), RepeatOpts{Prefix: DefaultPrefix()}))
	val := []any{int8(1), int8(2)}
	roundTripDecode(t, c, val, val)
}

func TestCompileRepeatedWithDelimiter(t *testing.T) {
	c := Must(Repeated(Prim("byte"), RepeatOpts{Delimiters: [][]byte{[]byte("|")}}))
	val := []any{int8(1), int8(2)}
	roundTripDecode(t, c, val, val)
}

// TestCompileRepeatedReadToEnd exercises a repeated frame with
// neither an outer prefix nor an outer delimiter, relying on its
// self-delimiting element to mark each boundary.
func TestCompileRepeatedReadToEnd(t *testing.T) {
	element := DelimitedFrame(StringInteger("utf-8"), []byte("x"))
	c := Must(Repeated(element, RepeatOpts{}))

	buffers, err := Encode(c, []any{int64(1), int64(23), int64(456), int64(7890)})
	require.NoError(t, err)
	assert.Equal(t, []byte("1x23x456x7890x"), ToByteBuffer(buffers))

	got, err := Decode(c, buffers...)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(23), int64(456), int64(7890)}, got)
}

func TestMustPanicsOnCompileError(t *testing.T) {
	assert.Panics(t, func() {
		Must(Prim("not-a-tag"))
	})
}

// roundTripDecode encodes encodeVal with c, decodes the result, and asserts
// the decoded value equals wantDecoded.
func roundTripDecode(t *testing.T, c Codec, encodeVal, wantDecoded any) {
	t.Helper()
	buffers, err := Encode(c, encodeVal)
	require.NoError(t, err)
	got, err := Decode(c, buffers...)
	require.NoError(t, err)
	assert.Equal(t, wantDecoded, got)
}

