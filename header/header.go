// Package header implements the header combinator and its prefix
// specialization: a header codec decodes a value H, then derives and
// runs a body codec from H; a prefix codec is a header whose
// decoded/encoded value is converted to and from a plain integer via
// two user functions, so it can serve as the length input to
// frame/seq's length-prefixed repetition and frame/block's
// finite-block wrapper.
package header

import (
	"fmt"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

type headerCodec struct {
	h            wire.Codec
	headerToBody func(any) (wire.Codec, error)
	bodyToHeader func(any) (any, error)
	body         wire.Codec // non-nil once the header has been decoded and body decode is in progress
}

// Header returns a codec that decodes a header value with h, derives
// a body codec from it via headerToBody, and decodes the body with
// that codec. The header's own value does not appear in the decoded
// result: it exists only to select which body codec runs, as when a
// tag selects a tagged-union variant whose own literal tag is part of
// the body.
//
// On Write, bodyToHeader recovers the header value from the value
// being encoded, so the header and the body it selects stay in sync.
func Header(h wire.Codec, headerToBody func(any) (wire.Codec, error), bodyToHeader func(any) (any, error)) wire.Codec {
	return &headerCodec{h: h, headerToBody: headerToBody, bodyToHeader: bodyToHeader}
}

func (c *headerCodec) Read(in bs.BS) (wire.ReadResult, error) {
	if c.body == nil {
		res, err := c.h.Read(in)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			return wire.Suspend(&headerCodec{h: res.Resumable, headerToBody: c.headerToBody, bodyToHeader: c.bodyToHeader}, res.Remainder), nil
		}
		body, err := c.headerToBody(res.Value)
		if err != nil {
			return wire.ReadResult{}, err
		}
		return (&headerCodec{headerToBody: c.headerToBody, bodyToHeader: c.bodyToHeader, body: body}).Read(res.Remainder)
	}

	res, err := c.body.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&headerCodec{headerToBody: c.headerToBody, bodyToHeader: c.bodyToHeader, body: res.Resumable}, res.Remainder), nil
	}
	return wire.Result(res.Value, res.Remainder), nil
}

func (c *headerCodec) Write(val any) ([][]byte, error) {
	h, err := c.bodyToHeader(val)
	if err != nil {
		return nil, err
	}
	body, err := c.headerToBody(h)
	if err != nil {
		return nil, err
	}
	hBuffers, err := c.h.Write(h)
	if err != nil {
		return nil, err
	}
	bodyBuffers, err := body.Write(val)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(hBuffers)+len(bodyBuffers))
	out = append(out, hBuffers...)
	out = append(out, bodyBuffers...)
	return out, nil
}

func (c *headerCodec) Sizeof() (int, bool) { return 0, false }

type prefixCodec struct {
	h       wire.Codec
	toInt   func(any) (int, error)
	fromInt func(int) any
}

// Prefix specializes Header for the common case where the header's
// only purpose is to carry a length: toInt recovers a plain int from
// the header's decoded value, and fromInt builds the value to encode
// from a plain int. Both may be identity-like (see IdentityPrefix) or
// pick one field out of a larger header tuple.
func Prefix(h wire.Codec, toInt func(any) (int, error), fromInt func(int) any) wire.Codec {
	return &prefixCodec{h: h, toInt: toInt, fromInt: fromInt}
}

// IdentityPrefix returns a Prefix whose header codec's decoded value
// is itself already the length (e.g. `prefix(:int32)`).
func IdentityPrefix(h wire.Codec) wire.Codec {
	return Prefix(h, toInt, func(n int) any { return n })
}

func (c *prefixCodec) Read(in bs.BS) (wire.ReadResult, error) {
	res, err := c.h.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&prefixCodec{h: res.Resumable, toInt: c.toInt, fromInt: c.fromInt}, res.Remainder), nil
	}
	n, err := c.toInt(res.Value)
	if err != nil {
		return wire.ReadResult{}, err
	}
	return wire.Result(n, res.Remainder), nil
}

func (c *prefixCodec) Write(val any) ([][]byte, error) {
	n, err := toInt(val)
	if err != nil {
		return nil, err
	}
	return c.h.Write(c.fromInt(n))
}

func (c *prefixCodec) Sizeof() (int, bool) { return c.h.Sizeof() }

func toInt(val any) (int, error) {
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
		return 0, fmt.Errorf("header: expected an integer, got %T", val)
	}
}
