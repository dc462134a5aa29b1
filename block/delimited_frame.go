package block

import (
	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

// wrapDelimitedFrame extracts the body preceding a delimiter, then
// decodes a single value from it with body, requiring body to consume
// the entire extracted region. This is the delimiter-bounded
// counterpart to WrapFiniteBlock's length-prefixed form.
type wrapDelimitedFrame struct {
	delims [][]byte
	scan   wire.Codec
	body   wire.Codec
}

// WrapDelimitedFrame returns a codec that reads the delimited body and
// decodes body from it.
func WrapDelimitedFrame(delims [][]byte, body wire.Codec) wire.Codec {
	return &wrapDelimitedFrame{delims: delims, scan: DelimitedBlock(delims, true), body: body}
}

func (c *wrapDelimitedFrame) Read(in bs.BS) (wire.ReadResult, error) {
	res, err := c.scan.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&wrapDelimitedFrame{delims: c.delims, scan: res.Resumable, body: c.body}, res.Remainder), nil
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

func (c *wrapDelimitedFrame) Write(val any) ([][]byte, error) {
	bodyBuffers, err := c.body.Write(val)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(bodyBuffers)+1)
	out = append(out, bodyBuffers...)
	out = append(out, c.delims[0])
	return out, nil
}

func (c *wrapDelimitedFrame) Sizeof() (int, bool) { return 0, false }
