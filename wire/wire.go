// Package wire defines the codec capability set shared by every
// combinator package: the Codec interface, its ReadResult variant,
// the compose-callback primitive used to thread state through
// combinators, and the fatal error kinds every combinator can raise.
//
// It exists as its own package, separate from the outer frame
// package, purely to break the import cycle that would otherwise
// result from frame/prim, frame/text, frame/block, frame/seq,
// frame/header and frame/enum all needing the Codec type while the
// outer frame package needs to import all of them to implement
// compile-frame.
package wire

import (
	"errors"

	"github.com/binaryframe/frame/bs"
)

// Codec is a compiled, immutable, freely-shareable capability object.
// The only mutable state involved in decoding lives in the Resumable
// codec a Need result carries, and that value belongs to exactly one
// in-progress decode.
type Codec interface {
	// Read attempts to decode one value from the front of in. If in
	// holds enough bytes, it returns a Done result. If not, it
	// returns a Need result whose Resumable codec continues the
	// decode once more bytes are appended to Remainder. All other
	// failures are returned as a non-nil error.
	Read(in bs.BS) (ReadResult, error)

	// Write encodes val into a sequence of buffers.
	Write(val any) ([][]byte, error)

	// Sizeof returns the exact byte length of every value this codec
	// can encode, and true, or (0, false) if the length is
	// value-dependent.
	Sizeof() (int, bool)
}

// ReadResult is the outcome of Codec.Read: either Done, carrying the
// decoded value and the unconsumed remainder, or a suspension,
// carrying a Resumable codec and the bytes it has not yet consumed.
type ReadResult struct {
	Done      bool
	Value     any
	Remainder bs.BS
	Resumable Codec
}

// Result builds a Done ReadResult.
func Result(value any, remainder bs.BS) ReadResult {
	return ReadResult{Done: true, Value: value, Remainder: remainder}
}

// Suspend builds a Need ReadResult.
func Suspend(resumable Codec, remainder bs.BS) ReadResult {
	return ReadResult{Done: false, Resumable: resumable, Remainder: remainder}
}

// callbackCodec threads state through combinators by re-invoking fn
// on every Done result, including ones produced after resumption.
type callbackCodec struct {
	inner Codec
	fn    func(value any, remainder bs.BS) (ReadResult, error)
}

// ComposeCallback returns a codec whose Read invokes inner.Read, and
// on a Done result invokes fn with the decoded value and remainder;
// fn itself returns a ReadResult (typically another Done, but it may
// itself suspend). On Need, the callback is re-attached to the
// resumable codec so it fires again once that resumes to Done.
func ComposeCallback(inner Codec, fn func(value any, remainder bs.BS) (ReadResult, error)) Codec {
	return &callbackCodec{inner: inner, fn: fn}
}

func (c *callbackCodec) Read(in bs.BS) (ReadResult, error) {
	res, err := c.inner.Read(in)
	if err != nil {
		return ReadResult{}, err
	}
	if !res.Done {
		return Suspend(&callbackCodec{inner: res.Resumable, fn: c.fn}, res.Remainder), nil
	}
	return c.fn(res.Value, res.Remainder)
}

func (c *callbackCodec) Write(val any) ([][]byte, error) {
	return c.inner.Write(val)
}

func (c *callbackCodec) Sizeof() (int, bool) {
	return c.inner.Sizeof()
}

// Fatal error kinds. Insufficient bytes is never one of these; it is
// represented by ReadResult.Done == false, not an error.
var (
	// ErrResidualBytes is returned by Decode when a value was fully
	// decoded but bytes remain unconsumed at the top level.
	ErrResidualBytes = errors.New("frame: residual bytes after decode")

	// ErrTruncated is returned by Decode/DecodeAll when the input ends
	// while a frame is still suspended on Need.
	ErrTruncated = errors.New("frame: input truncated mid-frame")

	// ErrLiteralMismatch is returned when a value written through a
	// literal frame differs from its constant. A literal's Read
	// consumes no bytes and always yields the constant.
	ErrLiteralMismatch = errors.New("frame: literal value mismatch")

	// ErrUnknownEnumValue is returned when a decoded integer has no
	// corresponding enum tag.
	ErrUnknownEnumValue = errors.New("frame: unknown enum value")

	// ErrUnknownEnumTag is returned when an enum tag has no
	// corresponding integer value on encode.
	ErrUnknownEnumTag = errors.New("frame: unknown enum tag")

	// ErrBodyOverrun is returned when a finite block's body codec does
	// not exactly consume the block's declared length.
	ErrBodyOverrun = errors.New("frame: body codec did not exactly consume its block")

	// ErrCharsetError is returned when bytes cannot be decoded (or a
	// string cannot be encoded) in a declared charset, or when
	// compile-frame cannot resolve a charset name.
	ErrCharsetError = errors.New("frame: charset error")

	// ErrShapeMismatch is returned when a tuple or map value's
	// cardinality does not match the codec's declared shape on write.
	ErrShapeMismatch = errors.New("frame: shape mismatch")
)
