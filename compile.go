package frame

import (
	"fmt"

	"github.com/binaryframe/frame/block"
	"github.com/binaryframe/frame/charset"
	"github.com/binaryframe/frame/enum"
	"github.com/binaryframe/frame/header"
	"github.com/binaryframe/frame/prim"
	"github.com/binaryframe/frame/seq"
	"github.com/binaryframe/frame/text"
	"github.com/binaryframe/frame/wire"
)

// Codec re-exports wire.Codec as the outer package's public codec
// type, keeping the interface's single definition in frame/wire
// (which breaks what would otherwise be an import cycle between the
// outer frame package and its combinator subpackages) while giving
// callers the natural frame.Codec spelling.
type Codec = wire.Codec

// ReadResult re-exports wire.ReadResult; see Codec.
type ReadResult = wire.ReadResult

// Suspend and Result build ReadResult values; see wire.Suspend/wire.Result.
var (
	Suspend         = wire.Suspend
	Result          = wire.Result
	ComposeCallback = wire.ComposeCallback
)

// Fatal error kinds, re-exported from frame/wire.
var (
	ErrResidualBytes    = wire.ErrResidualBytes
	ErrTruncated        = wire.ErrTruncated
	ErrLiteralMismatch  = wire.ErrLiteralMismatch
	ErrUnknownEnumValue = wire.ErrUnknownEnumValue
	ErrUnknownEnumTag   = wire.ErrUnknownEnumTag
	ErrBodyOverrun      = wire.ErrBodyOverrun
	ErrCharsetError     = wire.ErrCharsetError
	ErrShapeMismatch    = wire.ErrShapeMismatch
)

// Compile turns a Frame into a Codec. It is pure and idempotent:
// compiling an already-compiled codec frame returns that codec
// unchanged.
func Compile(f Frame) (Codec, error) {
	switch v := f.(type) {

	case codecFrame:
		return v.codec, nil

	case primitiveFrame:
		c, ok := prim.New(v.tag)
		if !ok {
			return nil, fmt.Errorf("frame: unknown primitive tag %q", v.tag)
		}
		return c, nil

	case tupleFrame:
		children := make([]Codec, len(v.children))
		for i, child := range v.children {
			c, err := Compile(child)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		return seq.Tuple(children), nil

	case mapFrame:
		keys := make([]string, len(v.fields))
		children := make([]Codec, len(v.fields))
		for i, field := range v.fields {
			c, err := Compile(field.Frame)
			if err != nil {
				return nil, err
			}
			keys[i] = field.Key
			children[i] = c
		}
		return seq.OrderedMap(keys, children), nil

	case literalFrame:
		return &literalCodec{value: v.value}, nil

	case stringFrame:
		cs, err := charset.Resolve(v.charset)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wire.ErrCharsetError, err)
		}
		if v.fixed {
			return text.Finite(cs, v.length), nil
		}
		return text.Unbounded(cs), nil

	case numericStringFrame:
		cs, err := charset.Resolve(v.charset)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wire.ErrCharsetError, err)
		}
		if v.float {
			return text.StringFloat(cs), nil
		}
		return text.StringInteger(cs), nil

	case enumFrame:
		storage, err := Compile(v.storage)
		if err != nil {
			return nil, err
		}
		if v.mapping != nil {
			return enum.Explicit(storage, v.mapping)
		}
		return enum.Dense(storage, v.dense)

	case headerFrame:
		hCodec, err := Compile(v.header)
		if err != nil {
			return nil, err
		}
		headerToBody := func(h any) (Codec, error) {
			bodyFrame, err := v.headerToBody(h)
			if err != nil {
				return nil, err
			}
			return Compile(bodyFrame)
		}
		return header.Header(hCodec, headerToBody, v.bodyToHeader), nil

	case prefixFrame:
		hCodec, err := Compile(v.header)
		if err != nil {
			return nil, err
		}
		if v.toInt == nil && v.fromInt == nil {
			return header.IdentityPrefix(hCodec), nil
		}
		return header.Prefix(hCodec, v.toInt, v.fromInt), nil

	case finiteFrame:
		prefixCodec, err := Compile(v.prefix)
		if err != nil {
			return nil, err
		}
		bodyCodec, err := Compile(v.body)
		if err != nil {
			return nil, err
		}
		return block.WrapFiniteBlock(prefixCodec, bodyCodec), nil

	case finiteBlockFrame:
		return block.FiniteBlock(v.length), nil

	case delimitedBlockFrame:
		return block.DelimitedBlock(v.delims, v.strip), nil

	case delimitedFrameWrap:
		inner, err := Compile(v.inner)
		if err != nil {
			return nil, err
		}
		return block.WrapDelimitedFrame(v.delims, inner), nil

	case repeatedFrame:
		element, err := Compile(v.element)
		if err != nil {
			return nil, err
		}
		switch {
		case v.opts.Prefix != nil:
			prefixCodec, err := Compile(v.opts.Prefix)
			if err != nil {
				return nil, err
			}
			return seq.PrefixRepeated(prefixCodec, element), nil
		case len(v.opts.Delimiters) > 0:
			return seq.DelimitedRepeated(element, v.opts.Delimiters), nil
		default:
			// Neither prefix nor delimiters: decode element repeatedly
			// until the input is exhausted, relying on element to mark
			// its own boundary.
			return seq.ReadToEnd(element), nil
		}

	default:
		return nil, fmt.Errorf("frame: unknown frame type %T", f)
	}
}

// Must compiles f and panics on error, for package-level codec
// declarations where a compile failure is a programmer error rather
// than something to recover from.
func Must(f Frame) Codec {
	c, err := Compile(f)
	if err != nil {
		panic(err)
	}
	return c
}
