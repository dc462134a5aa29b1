package frame

import (
	"fmt"
	"reflect"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

// literalCodec is the compiled form of a Const frame: it occupies
// zero bytes, always decodes as its constant, and asserts equality on
// write.
type literalCodec struct{ value any }

func (c *literalCodec) Read(in bs.BS) (wire.ReadResult, error) {
	return wire.Result(c.value, in), nil
}

func (c *literalCodec) Write(val any) ([][]byte, error) {
	if !reflect.DeepEqual(val, c.value) {
		return nil, fmt.Errorf("%w: expected %v, got %v", wire.ErrLiteralMismatch, c.value, val)
	}
	return nil, nil
}

func (c *literalCodec) Sizeof() (int, bool) { return 0, true }
