// Package text implements the charset-tagged string codec: an
// unbounded variant that consumes an entire byte-sequence (used only
// inside a delimited or finite-length wrapper) and a finite-length
// variant that reads exactly N bytes.
package text

import (
	"fmt"
	"strconv"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/charset"
	"github.com/binaryframe/frame/wire"
)

type unbounded struct {
	cs *charset.Charset
}

// Unbounded returns a codec that decodes its entire input as a string
// in the given charset. It has no independent notion of "not enough
// bytes"; it is meant to run only inside a delimited-frame or
// finite-frame wrapper that has already bounded the input.
func Unbounded(cs *charset.Charset) wire.Codec {
	return &unbounded{cs: cs}
}

func (c *unbounded) Read(in bs.BS) (wire.ReadResult, error) {
	s, err := c.cs.Decode(in.Contiguous())
	if err != nil {
		return wire.ReadResult{}, fmt.Errorf("%w: %v", wire.ErrCharsetError, err)
	}
	return wire.Result(s, bs.Empty()), nil
}

func (c *unbounded) Write(val any) ([][]byte, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("text: expected string, got %T", val)
	}
	out, err := c.cs.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrCharsetError, err)
	}
	return [][]byte{out}, nil
}

func (c *unbounded) Sizeof() (int, bool) { return 0, false }

type finite struct {
	cs *charset.Charset
	n  int
}

// Finite returns a codec that reads exactly n bytes and decodes them
// as a string in the given charset.
func Finite(cs *charset.Charset, n int) wire.Codec {
	return &finite{cs: cs, n: n}
}

func (c *finite) Read(in bs.BS) (wire.ReadResult, error) {
	if in.ByteCount() < c.n {
		return wire.Suspend(c, in), nil
	}
	head, err := in.TakeContiguous(c.n)
	if err != nil {
		return wire.ReadResult{}, err
	}
	rest, err := in.Drop(c.n)
	if err != nil {
		return wire.ReadResult{}, err
	}
	s, err := c.cs.Decode(head.Contiguous())
	if err != nil {
		return wire.ReadResult{}, fmt.Errorf("%w: %v", wire.ErrCharsetError, err)
	}
	return wire.Result(s, rest), nil
}

func (c *finite) Write(val any) ([][]byte, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("text: expected string, got %T", val)
	}
	out, err := c.cs.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrCharsetError, err)
	}
	if len(out) != c.n {
		return nil, fmt.Errorf("text: encoded length %d does not match declared length %d", len(out), c.n)
	}
	return [][]byte{out}, nil
}

func (c *finite) Sizeof() (int, bool) { return c.n, true }

// numericString wraps an unbounded string codec, parsing the decoded
// digits into a number on read and formatting a number into digits on
// write. It is meant to run inside a delimited-frame wrapper, exactly
// like Unbounded.
type numericString struct {
	inner wire.Codec
	kind  numericKind
}

type numericKind int

const (
	kindInt numericKind = iota
	kindFloat
)

// StringInteger returns a codec that reads its (delimiter-bounded)
// body as digits in the given charset and yields an int64.
func StringInteger(cs *charset.Charset) wire.Codec {
	return &numericString{inner: Unbounded(cs), kind: kindInt}
}

// StringFloat returns a codec that reads its (delimiter-bounded) body
// as digits in the given charset and yields a float64.
func StringFloat(cs *charset.Charset) wire.Codec {
	return &numericString{inner: Unbounded(cs), kind: kindFloat}
}

func (c *numericString) Read(in bs.BS) (wire.ReadResult, error) {
	res, err := c.inner.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&numericString{inner: res.Resumable, kind: c.kind}, res.Remainder), nil
	}
	s := res.Value.(string)
	switch c.kind {
	case kindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return wire.ReadResult{}, fmt.Errorf("text: parsing %q as integer: %w", s, err)
		}
		return wire.Result(n, res.Remainder), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return wire.ReadResult{}, fmt.Errorf("text: parsing %q as float: %w", s, err)
		}
		return wire.Result(f, res.Remainder), nil
	}
}

func (c *numericString) Write(val any) ([][]byte, error) {
	var s string
	switch c.kind {
	case kindInt:
		n, err := asInt64(val)
		if err != nil {
			return nil, err
		}
		s = strconv.FormatInt(n, 10)
	default:
		f, ok := val.(float64)
		if !ok {
			f32, ok2 := val.(float32)
			if !ok2 {
				return nil, fmt.Errorf("text: expected float value, got %T", val)
			}
			f = float64(f32)
		}
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return c.inner.Write(s)
}

func (c *numericString) Sizeof() (int, bool) { return 0, false }

func asInt64(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("text: expected an integer value, got %T", val)
	}
}
