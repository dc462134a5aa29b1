package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/prim"
	"github.com/binaryframe/frame/wire"
)

func TestWrapFiniteBlockRoundTrip(t *testing.T) {
	prefix, ok := prim.New("int32")
	require.True(t, ok)
	c := WrapFiniteBlock(prefix, rawBytesCodec{})

	buffers, err := c.Write([]byte("hello"))
	require.NoError(t, err)

	res, err := c.Read(bs.Wrap(buffers...))
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, []byte("hello"), res.Value)
	assert.True(t, res.Remainder.IsEmpty())
}

func TestWrapFiniteBlockSuspendsAcrossPrefixAndBody(t *testing.T) {
	prefix, _ := prim.New("int32")
	c := WrapFiniteBlock(prefix, rawBytesCodec{})

	buffers, err := c.Write([]byte("hello world"))
	require.NoError(t, err)
	whole := bs.Wrap(buffers...).Contiguous()

	res, err := c.Read(bs.Wrap(whole[:3]))
	require.NoError(t, err)
	require.False(t, res.Done)

	for i := 3; i < len(whole); i++ {
		fed := res.Remainder.Append([]byte{whole[i]})
		res, err = res.Resumable.Read(fed)
		require.NoError(t, err)
		if res.Done {
			break
		}
	}
	require.True(t, res.Done)
	assert.Equal(t, []byte("hello world"), res.Value)
}

func TestWrapFiniteBlockOverrunIsFatal(t *testing.T) {
	prefix, _ := prim.New("int32")
	// A body codec that only consumes half of what it's given.
	c := WrapFiniteBlock(prefix, halfConsumingCodec{})
	buffers, err := c.Write([]byte("abcd"))
	require.NoError(t, err)
	_, err = c.Read(bs.Wrap(buffers...))
	assert.Error(t, err)
}

// rawBytesCodec treats []byte as an opaque body: Read consumes
// whatever bs.BS it is handed (already bounded by WrapFiniteBlock),
// Write passes the bytes through unchanged.
type rawBytesCodec struct{}

func (rawBytesCodec) Read(in bs.BS) (wire.ReadResult, error) {
	return wire.Result(in.Contiguous(), bs.Empty()), nil
}

func (rawBytesCodec) Write(val any) ([][]byte, error) {
	return [][]byte{val.([]byte)}, nil
}

func (rawBytesCodec) Sizeof() (int, bool) { return 0, false }

// halfConsumingCodec always claims done after consuming half its
// input, leaving the rest as remainder, used to exercise
// WrapFiniteBlock's overrun check.
type halfConsumingCodec struct{}

func (halfConsumingCodec) Read(in bs.BS) (wire.ReadResult, error) {
	half := in.ByteCount() / 2
	head, err := in.Take(half)
	if err != nil {
		return wire.ReadResult{}, err
	}
	rest, err := in.Drop(half)
	if err != nil {
		return wire.ReadResult{}, err
	}
	return wire.Result(head.Contiguous(), rest), nil
}

func (halfConsumingCodec) Write(val any) ([][]byte, error) {
	return [][]byte{val.([]byte)}, nil
}

func (halfConsumingCodec) Sizeof() (int, bool) { return 0, false }
