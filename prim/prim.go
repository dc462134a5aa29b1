// Package prim implements the fixed-width primitive codecs: signed
// byte, 16/32/64-bit big- and little-endian integers, and IEEE-754
// big- and little-endian floats.
package prim

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

type width struct {
	name string
	n    int
	// read decodes exactly n bytes (already validated) into a value.
	read func([]byte) any
	// write encodes val into a buffer of length n, or fails if val is
	// not a compatible type or out of range.
	write func(val any, out []byte) error
}

// codec adapts a width table entry to the wire.Codec interface.
// Primitives are the base case of Need: when short, the resumable
// codec is simply the primitive itself, since it carries no partial
// state.
type codec struct{ w *width }

// New returns the compiled codec for a wire primitive tag.
func New(tag string) (wire.Codec, bool) {
	w, ok := table[tag]
	if !ok {
		return nil, false
	}
	return &codec{w: w}, true
}

func (c *codec) Read(in bs.BS) (wire.ReadResult, error) {
	if in.ByteCount() < c.w.n {
		return wire.Suspend(c, in), nil
	}
	head, err := in.TakeContiguous(c.w.n)
	if err != nil {
		return wire.ReadResult{}, err
	}
	rest, err := in.Drop(c.w.n)
	if err != nil {
		return wire.ReadResult{}, err
	}
	return wire.Result(c.w.read(head.Contiguous()), rest), nil
}

func (c *codec) Write(val any) ([][]byte, error) {
	out := make([]byte, c.w.n)
	if err := c.w.write(val, out); err != nil {
		return nil, fmt.Errorf("prim: encoding %s: %w", c.w.name, err)
	}
	return [][]byte{out}, nil
}

func (c *codec) Sizeof() (int, bool) { return c.w.n, true }

// Tags lists every primitive tag this package knows how to build.
func Tags() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	return out
}

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
	case uint8:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("prim: expected an integer value, got %T", val)
	}
}

func asUint64(val any) (uint64, error) {
	switch v := val.(type) {
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("prim: negative value %d for unsigned primitive", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("prim: expected an unsigned integer value, got %T", val)
	}
}

var table = map[string]*width{
	"byte": {
		name: "byte", n: 1,
		read: func(b []byte) any { return int8(b[0]) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			out[0] = byte(int8(v))
			return nil
		},
	},
	"int16": {
		name: "int16", n: 2,
		read: func(b []byte) any { return int16(binary.BigEndian.Uint16(b)) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint16(out, uint16(int16(v)))
			return nil
		},
	},
	"int16le": {
		name: "int16le", n: 2,
		read: func(b []byte) any { return int16(binary.LittleEndian.Uint16(b)) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint16(out, uint16(int16(v)))
			return nil
		},
	},
	"uint16": {
		name: "uint16", n: 2,
		read: func(b []byte) any { return binary.BigEndian.Uint16(b) },
		write: func(val any, out []byte) error {
			v, err := asUint64(val)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint16(out, uint16(v))
			return nil
		},
	},
	"uint16le": {
		name: "uint16le", n: 2,
		read: func(b []byte) any { return binary.LittleEndian.Uint16(b) },
		write: func(val any, out []byte) error {
			v, err := asUint64(val)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint16(out, uint16(v))
			return nil
		},
	},
	"int32": {
		name: "int32", n: 4,
		read: func(b []byte) any { return int32(binary.BigEndian.Uint32(b)) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint32(out, uint32(int32(v)))
			return nil
		},
	},
	"int32le": {
		name: "int32le", n: 4,
		read: func(b []byte) any { return int32(binary.LittleEndian.Uint32(b)) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint32(out, uint32(int32(v)))
			return nil
		},
	},
	"uint32": {
		name: "uint32", n: 4,
		read: func(b []byte) any { return binary.BigEndian.Uint32(b) },
		write: func(val any, out []byte) error {
			v, err := asUint64(val)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint32(out, uint32(v))
			return nil
		},
	},
	"uint32le": {
		name: "uint32le", n: 4,
		read: func(b []byte) any { return binary.LittleEndian.Uint32(b) },
		write: func(val any, out []byte) error {
			v, err := asUint64(val)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint32(out, uint32(v))
			return nil
		},
	},
	"int64": {
		name: "int64", n: 8,
		read: func(b []byte) any { return int64(binary.BigEndian.Uint64(b)) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint64(out, uint64(v))
			return nil
		},
	},
	"int64le": {
		name: "int64le", n: 8,
		read: func(b []byte) any { return int64(binary.LittleEndian.Uint64(b)) },
		write: func(val any, out []byte) error {
			v, err := asInt64(val)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint64(out, uint64(v))
			return nil
		},
	},
	"uint64": {
		name: "uint64", n: 8,
		read: func(b []byte) any { return binary.BigEndian.Uint64(b) },
		write: func(val any, out []byte) error {
			v, err := asUint64(val)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint64(out, v)
			return nil
		},
	},
	"uint64le": {
		name: "uint64le", n: 8,
		read: func(b []byte) any { return binary.LittleEndian.Uint64(b) },
		write: func(val any, out []byte) error {
			v, err := asUint64(val)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint64(out, v)
			return nil
		},
	},
	"float32": {
		name: "float32", n: 4,
		read: func(b []byte) any { return math.Float32frombits(binary.BigEndian.Uint32(b)) },
		write: func(val any, out []byte) error {
			v, ok := val.(float32)
			if !ok {
				f, ok2 := val.(float64)
				if !ok2 {
					return fmt.Errorf("prim: expected float32, got %T", val)
				}
				v = float32(f)
			}
			binary.BigEndian.PutUint32(out, math.Float32bits(v))
			return nil
		},
	},
	"float32le": {
		name: "float32le", n: 4,
		read: func(b []byte) any { return math.Float32frombits(binary.LittleEndian.Uint32(b)) },
		write: func(val any, out []byte) error {
			v, ok := val.(float32)
			if !ok {
				f, ok2 := val.(float64)
				if !ok2 {
					return fmt.Errorf("prim: expected float32, got %T", val)
				}
				v = float32(f)
			}
			binary.LittleEndian.PutUint32(out, math.Float32bits(v))
			return nil
		},
	},
	"float64": {
		name: "float64", n: 8,
		read: func(b []byte) any { return math.Float64frombits(binary.BigEndian.Uint64(b)) },
		write: func(val any, out []byte) error {
			v, ok := val.(float64)
			if !ok {
				f, ok2 := val.(float32)
				if !ok2 {
					return fmt.Errorf("prim: expected float64, got %T", val)
				}
				v = float64(f)
			}
			binary.BigEndian.PutUint64(out, math.Float64bits(v))
			return nil
		},
	},
	"float64le": {
		name: "float64le", n: 8,
		read: func(b []byte) any { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
		write: func(val any, out []byte) error {
			v, ok := val.(float64)
			if !ok {
				f, ok2 := val.(float32)
				if !ok2 {
					return fmt.Errorf("prim: expected float64, got %T", val)
				}
				v = float64(f)
			}
			binary.LittleEndian.PutUint64(out, math.Float64bits(v))
			return nil
		},
	},
}
