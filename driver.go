package frame

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/binaryframe/frame/bs"
)

// Def compiles f and logs the binding at debug level. It exists
// mainly so a package can declare `var FooCodec = frame.Def("foo",
// fooFrame)` as package-level state.
func Def(name string, f Frame) Codec {
	c := Must(f)
	logger.Debug("frame: defined codec", zap.String("name", name))
	return c
}

// Encode returns the sequence of buffers produced by writing val with
// codec.
func Encode(codec Codec, val any) ([][]byte, error) {
	if val == nil {
		return nil, nil
	}
	return codec.Write(val)
}

// EncodeAll concatenates Encode(codec, v) for each v in vals.
func EncodeAll(codec Codec, vals []any) ([][]byte, error) {
	var out [][]byte
	for _, v := range vals {
		buffers, err := Encode(codec, v)
		if err != nil {
			return nil, err
		}
		out = append(out, buffers...)
	}
	return out, nil
}

// Decode decodes exactly one value from data. It is an error for the
// read to suspend (ErrTruncated) or for bytes to remain afterward
// (ErrResidualBytes), each reported through its own sentinel so
// callers can tell the two failure modes apart.
func Decode(codec Codec, data ...[]byte) (any, error) {
	res, err := codec.Read(bs.Wrap(data...))
	if err != nil {
		return nil, err
	}
	if !res.Done {
		return nil, ErrTruncated
	}
	if !res.Remainder.IsEmpty() {
		return nil, fmt.Errorf("%w: %d bytes left over", ErrResidualBytes, res.Remainder.ByteCount())
	}
	return res.Value, nil
}

// DecodeAll decodes as many values as data holds, requiring the input
// to be fully consumed by whole values: a Need left dangling at the
// end of input is ErrTruncated, matching Decode.
func DecodeAll(codec Codec, data ...[]byte) ([]any, error) {
	in := bs.Wrap(data...)
	var out []any
	for !in.IsEmpty() {
		res, err := codec.Read(in)
		if err != nil {
			return nil, err
		}
		if !res.Done {
			return nil, ErrTruncated
		}
		out = append(out, res.Value)
		in = res.Remainder
	}
	return out, nil
}

// Contiguous materializes bs into a single buffer.
func Contiguous(b bs.BS) []byte { return b.Contiguous() }

// ToByteBuffer concatenates a sequence of buffers into one.
func ToByteBuffer(buffers [][]byte) []byte {
	n := 0
	for _, b := range buffers {
		n += len(b)
	}
	out := make([]byte, 0, n)
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}

// ToBufSeq wraps a sequence of buffers into a bs.BS, one segment per
// non-empty buffer, without copying them.
func ToBufSeq(buffers [][]byte) bs.BS {
	return bs.Wrap(buffers...)
}
