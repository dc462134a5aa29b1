package frame

import (
	"sort"

	"github.com/binaryframe/frame/wire"
)

// Frame is a recursive declarative description of a binary layout.
// Frame values are built with the constructors in this file and
// turned into a Codec by Compile.
type Frame interface {
	frame()
}

type primitiveFrame struct{ tag string }

// Prim returns a frame for one of the wire primitive tags: byte,
// int16/uint16, int32/uint32, int64/uint64, float32, float64, and
// their -le little-endian counterparts.
func Prim(tag string) Frame { return primitiveFrame{tag: tag} }

func (primitiveFrame) frame() {}

type tupleFrame struct{ children []Frame }

// Seq returns an ordered-tuple frame. Decodes to a []any of
// len(children).
func Seq(children ...Frame) Frame { return tupleFrame{children: children} }

func (tupleFrame) frame() {}

// Field is one key/frame pair of an ordered-map frame.
type Field struct {
	Key   string
	Frame Frame
}

type mapFrame struct{ fields []Field }

// OrderedMap returns a keyed-map frame that preserves declaration
// order on the wire and on decode.
func OrderedMap(fields ...Field) Frame { return mapFrame{fields: fields} }

func (mapFrame) frame() {}

// NaturalMap is a convenience constructor over a Go map literal. Its
// iteration order is NOT declaration order, since Go map iteration is
// randomized, so NaturalMap compiles with keys sorted
// lexicographically, which is stable within and across processes.
// Prefer OrderedMap when byte-level field order matters.
func NaturalMap(fields map[string]Frame) Frame {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make([]Field, len(keys))
	for i, k := range keys {
		ordered[i] = Field{Key: k, Frame: fields[k]}
	}
	return mapFrame{fields: ordered}
}

type codecFrame struct{ codec wire.Codec }

// FromCodec wraps an already-compiled codec as a Frame. Compile is
// idempotent over it.
func FromCodec(c wire.Codec) Frame { return codecFrame{codec: c} }

func (codecFrame) frame() {}

type literalFrame struct{ value any }

// Const returns a zero-byte frame that decodes as value and, on
// write, asserts the encoded value equals value.
func Const(value any) Frame { return literalFrame{value: value} }

func (literalFrame) frame() {}

type stringFrame struct {
	charset string
	fixed   bool
	length  int
}

// StringUnbounded returns a frame that decodes its entire input as a
// string in the named charset. It must only be used inside a
// DelimitedFrame or FiniteFrame wrapper.
func StringUnbounded(charsetName string) Frame {
	return stringFrame{charset: charsetName}
}

// StringFixed returns a frame that reads exactly n bytes and decodes
// them as a string in the named charset.
func StringFixed(charsetName string, n int) Frame {
	return stringFrame{charset: charsetName, fixed: true, length: n}
}

func (stringFrame) frame() {}

type numericStringFrame struct {
	charset string
	float   bool
}

// StringInteger returns a frame that decodes its (delimiter- or
// length-bounded) body as ASCII/UTF-8 digits into an int64.
func StringInteger(charsetName string) Frame { return numericStringFrame{charset: charsetName} }

// StringFloat returns a frame that decodes its (delimiter- or
// length-bounded) body as digits into a float64.
func StringFloat(charsetName string) Frame {
	return numericStringFrame{charset: charsetName, float: true}
}

func (numericStringFrame) frame() {}

type enumFrame struct {
	storage Frame
	dense   []string
	mapping map[string]int64
}

// Enum returns a frame with a default dense 0..n-1 assignment over
// tags, stored as int16 on the wire.
func Enum(tags ...string) Frame {
	return enumFrame{storage: Prim("int16"), dense: tags}
}

// EnumWithValues returns a frame with an explicit tag->value mapping.
func EnumWithValues(mapping map[string]int64) Frame {
	return enumFrame{storage: Prim("int16"), mapping: mapping}
}

// EnumStoredAs is Enum/EnumWithValues with a caller-chosen storage
// primitive instead of the int16 default.
func EnumStoredAs(storage Frame, tags []string, mapping map[string]int64) Frame {
	return enumFrame{storage: storage, dense: tags, mapping: mapping}
}

func (enumFrame) frame() {}

type headerFrame struct {
	header       Frame
	headerToBody func(any) (Frame, error)
	bodyToHeader func(any) (any, error)
}

// Header returns a frame that decodes a header value with h, derives
// a body frame from it via headerToBody, decodes the body, and (on
// write) recovers the header value from the body value via
// bodyToHeader.
func Header(h Frame, headerToBody func(any) (Frame, error), bodyToHeader func(any) (any, error)) Frame {
	return headerFrame{header: h, headerToBody: headerToBody, bodyToHeader: bodyToHeader}
}

func (headerFrame) frame() {}

type prefixFrame struct {
	header  Frame
	toInt   func(any) (int, error)
	fromInt func(int) any
}

// Prefix returns a header frame specialized to carry a length: toInt
// and fromInt convert the header's own value to and from a plain int.
// Pass nil for both to get identity conversions (`prefix(:int32)`).
func Prefix(h Frame, toInt func(any) (int, error), fromInt func(int) any) Frame {
	return prefixFrame{header: h, toInt: toInt, fromInt: fromInt}
}

func (prefixFrame) frame() {}

type finiteFrame struct {
	prefix Frame
	body   Frame
}

// FiniteFrame returns a frame that decodes a length with prefix (a
// Prefix frame, or one whose decoded value is already an int), reads
// exactly that many bytes, and decodes body from them, requiring body
// to consume all of them.
func FiniteFrame(prefix, body Frame) Frame {
	return finiteFrame{prefix: prefix, body: body}
}

func (finiteFrame) frame() {}

type finiteBlockFrame struct{ length int }

// FiniteBlock returns a frame that reads exactly length raw bytes.
func FiniteBlock(length int) Frame { return finiteBlockFrame{length: length} }

func (finiteBlockFrame) frame() {}

type delimitedBlockFrame struct {
	delims [][]byte
	strip  bool
}

// DelimitedBlock returns a frame that reads raw bytes up to the first
// occurrence of any of delims.
func DelimitedBlock(strip bool, delims ...[]byte) Frame {
	return delimitedBlockFrame{delims: delims, strip: strip}
}

func (delimitedBlockFrame) frame() {}

type delimitedFrameWrap struct {
	delims [][]byte
	inner  Frame
}

// DelimitedFrame returns a frame that extracts the body preceding the
// first occurrence of any of delims and decodes inner from it,
// requiring inner to consume the entire body.
func DelimitedFrame(inner Frame, delims ...[]byte) Frame {
	return delimitedFrameWrap{delims: delims, inner: inner}
}

func (delimitedFrameWrap) frame() {}

// RepeatOpts configures Repeated. Set Prefix for length-prefixed
// repetition, Delimiters for delimiter-terminated repetition, or
// leave both zero for read-to-end repetition: element decodes
// repeatedly until the input is exhausted, relying on element being
// self-delimiting.
type RepeatOpts struct {
	Prefix     Frame
	Delimiters [][]byte
}

type repeatedFrame struct {
	element Frame
	opts    RepeatOpts
}

// Repeated returns a sequence frame: length-prefixed (opts.Prefix),
// delimiter-terminated (opts.Delimiters), or read-to-end (neither
// set), decoding to a []any.
func Repeated(element Frame, opts RepeatOpts) Frame {
	return repeatedFrame{element: element, opts: opts}
}

func (repeatedFrame) frame() {}

// DefaultPrefix is the default sequence prefix: int32 big-endian.
func DefaultPrefix() Frame { return Prefix(Prim("int32"), nil, nil) }
