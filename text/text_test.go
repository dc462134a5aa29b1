package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/charset"
)

func utf8(t *testing.T) *charset.Charset {
	t.Helper()
	cs, err := charset.Resolve("utf-8")
	require.NoError(t, err)
	return cs
}

func TestUnboundedConsumesEverything(t *testing.T) {
	c := Unbounded(utf8(t))
	res, err := c.Read(bs.Wrap([]byte("hello")))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "hello", res.Value)
	assert.True(t, res.Remainder.IsEmpty())
}

func TestUnboundedWrite(t *testing.T) {
	c := Unbounded(utf8(t))
	buffers, err := c.Write("hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), buffers[0])
}

func TestFiniteReadsExactlyN(t *testing.T) {
	c := Finite(utf8(t), 5)
	res, err := c.Read(bs.Wrap([]byte("hellothere")))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "hello", res.Value)
	assert.Equal(t, []byte("there"), res.Remainder.Contiguous())
}

func TestFiniteSuspendsWhenShort(t *testing.T) {
	c := Finite(utf8(t), 5)
	res, err := c.Read(bs.Wrap([]byte("hel")))
	require.NoError(t, err)
	assert.False(t, res.Done)

	fed := res.Remainder.Append([]byte("lo"))
	res, err = res.Resumable.Read(fed)
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "hello", res.Value)
}

func TestFiniteWriteLengthMismatch(t *testing.T) {
	c := Finite(utf8(t), 3)
	_, err := c.Write("hello")
	assert.Error(t, err)
}

func TestStringIntegerRoundTrip(t *testing.T) {
	c := StringInteger(utf8(t))
	buffers, err := c.Write(int32(-42))
	require.NoError(t, err)
	assert.Equal(t, []byte("-42"), buffers[0])

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, int64(-42), res.Value)
}

func TestStringFloatRoundTrip(t *testing.T) {
	c := StringFloat(utf8(t))
	buffers, err := c.Write(3.5)
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, 3.5, res.Value)
}

func TestStringIntegerParseError(t *testing.T) {
	c := StringInteger(utf8(t))
	_, err := c.Read(bs.Wrap([]byte("not-a-number")))
	assert.Error(t, err)
}
