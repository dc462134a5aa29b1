// Package stream adapts frame's resumable Codec to an io.Reader,
// pulling in more bytes only when a Read suspends with Need: grow the
// input buffer and retry the same codec, generalized to any io.Reader
// and to the bs.BS/ReadResult protocol instead of a mutable byte
// buffer.
package stream

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/binaryframe/frame"
	"github.com/binaryframe/frame/bs"
)

const defaultChunkSize = 4096

// Decoder pulls successive values off r, decoding each with codec.
// It is not safe for concurrent use.
type Decoder struct {
	r         io.Reader
	original  frame.Codec
	resumable frame.Codec
	pending   bs.BS
	chunk     []byte
	logger    *zap.Logger
	eof       bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithChunkSize sets the size of each read from r. The default is 4096.
func WithChunkSize(n int) Option {
	return func(d *Decoder) { d.chunk = make([]byte, n) }
}

// WithLogger attaches a zap logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) { d.logger = logger }
}

// NewDecoder returns a Decoder that reads values framed by codec out
// of r.
func NewDecoder(r io.Reader, codec frame.Codec, opts ...Option) *Decoder {
	d := &Decoder{
		r:         r,
		original:  codec,
		resumable: codec,
		pending:   bs.Empty(),
		chunk:     make([]byte, defaultChunkSize),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Next decodes and returns the next value. It returns io.EOF once r is
// exhausted on a value boundary, and wraps frame.ErrTruncated if r is
// exhausted mid-value.
func (d *Decoder) Next() (any, error) {
	for {
		if !d.pending.IsEmpty() {
			res, err := d.resumable.Read(d.pending)
			if err != nil {
				return nil, err
			}
			if res.Done {
				d.pending = res.Remainder
				d.resumable = d.original
				return res.Value, nil
			}
			d.resumable = res.Resumable
			d.pending = res.Remainder
		} else if d.eof {
			return nil, io.EOF
		}

		if d.eof {
			return nil, fmt.Errorf("%w: input ended mid-value", frame.ErrTruncated)
		}

		n, err := d.r.Read(d.chunk)
		if n > 0 {
			got := make([]byte, n)
			copy(got, d.chunk[:n])
			d.pending = d.pending.Append(got)
			d.logger.Debug("stream: read chunk", zap.Int("bytes", n))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.eof = true
				continue
			}
			return nil, err
		}
	}
}

// All drains the Decoder until io.EOF, returning every value decoded.
func (d *Decoder) All() ([]any, error) {
	var out []any
	for {
		v, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}
