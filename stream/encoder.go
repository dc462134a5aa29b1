package stream

import (
	"bufio"
	"io"

	"github.com/binaryframe/frame"
)

// Encoder writes successive values to w, each framed by codec, the way
// baseIO.Write stages an encoded message into an output buffer before
// a Flush copies it to the underlying conn.
type Encoder struct {
	w     *bufio.Writer
	codec frame.Codec
}

// NewEncoder returns an Encoder writing values framed by codec to w.
func NewEncoder(w io.Writer, codec frame.Codec) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), codec: codec}
}

// Encode stages val's encoding without flushing to w.
func (e *Encoder) Encode(val any) error {
	buffers, err := frame.Encode(e.codec, val)
	if err != nil {
		return err
	}
	for _, b := range buffers {
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes any staged bytes to the underlying writer.
func (e *Encoder) Flush() error { return e.w.Flush() }
