package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/charset"
	"github.com/binaryframe/frame/text"
)

func TestWrapDelimitedFrameRoundTrip(t *testing.T) {
	cs, err := charset.Resolve("utf-8")
	require.NoError(t, err)
	c := WrapDelimitedFrame([][]byte{[]byte("\n")}, text.Unbounded(cs))

	buffers, err := c.Write("hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\n"), bs.Wrap(buffers...).Contiguous())

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "hello", res.Value)
}

func TestWrapDelimitedFrameOverrunIsFatal(t *testing.T) {
	cs, err := charset.Resolve("utf-8")
	require.NoError(t, err)
	c := WrapDelimitedFrame([][]byte{[]byte("\n")}, text.Finite(cs, 3))

	// "hello" before the delimiter is 5 bytes, but the body codec only
	// consumes 3, so the remaining 2 make this an overrun.
	_, err = c.Read(bs.Wrap([]byte("hello\n")))
	assert.Error(t, err)
}
