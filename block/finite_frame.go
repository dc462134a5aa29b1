package block

import (
	"fmt"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

// wrapFiniteBlock reads a length-prefixed block: a prefix codec
// produces an integer N, then N bytes are read and handed whole to
// the body codec, which must consume all of them.
type wrapFiniteBlock struct {
	prefix wire.Codec
	body   wire.Codec
	raw    wire.Codec // non-nil once N is known and the raw N-byte read is in progress
}

// WrapFiniteBlock returns a codec that decodes a length using prefix,
// reads exactly that many bytes, and decodes the body from them.
// prefix's decoded value must be (or be convertible to) an integer.
func WrapFiniteBlock(prefix, body wire.Codec) wire.Codec {
	return &wrapFiniteBlock{prefix: prefix, body: body}
}

func (c *wrapFiniteBlock) Read(in bs.BS) (wire.ReadResult, error) {
	if c.raw == nil {
		res, err := c.prefix.Read(in)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			return wire.Suspend(&wrapFiniteBlock{prefix: res.Resumable, body: c.body}, res.Remainder), nil
		}
		n, err := asInt(res.Value)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if n < 0 {
			return wire.ReadResult{}, fmt.Errorf("block: negative finite-block length %d", n)
		}
		return (&wrapFiniteBlock{body: c.body, raw: FiniteBlock(n)}).Read(res.Remainder)
	}

	res, err := c.raw.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&wrapFiniteBlock{body: c.body, raw: res.Resumable}, res.Remainder), nil
	}

	closed := res.Value.(bs.BS)
	bodyRes, err := c.body.Read(closed)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !bodyRes.Done || !bodyRes.Remainder.IsEmpty() {
		return wire.ReadResult{}, wire.ErrBodyOverrun
	}
	return wire.Result(bodyRes.Value, res.Remainder), nil
}

func (c *wrapFiniteBlock) Write(val any) ([][]byte, error) {
	bodyBuffers, err := c.body.Write(val)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, b := range bodyBuffers {
		n += len(b)
	}
	prefixBuffers, err := c.prefix.Write(n)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(prefixBuffers)+len(bodyBuffers))
	out = append(out, prefixBuffers...)
	out = append(out, bodyBuffers...)
	return out, nil
}

func (c *wrapFiniteBlock) Sizeof() (int, bool) {
	pn, pok := c.prefix.Sizeof()
	bn, bok := c.body.Sizeof()
	if pok && bok {
		return pn + bn, true
	}
	return 0, false
}

func asInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("block: expected an integer length, got %T", val)
	}
}
