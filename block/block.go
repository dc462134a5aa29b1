// Package block implements finite-length and delimiter-terminated
// byte blocks: a fixed-N raw block, a delimiter scan that never
// rescans already-inspected bytes across resumptions, a finite block
// wrapped around a length prefix and a body codec, and a helper that
// decodes a repeated sequence out of an already-closed body (used by
// the delimiter-terminated repetition in frame/seq).
package block

import (
	"fmt"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

type finiteBlock struct{ n int }

// FiniteBlock returns a codec that reads exactly n raw bytes,
// yielding a bs.BS (zero-copy view of the source). Write accepts
// either a bs.BS or a []byte of exactly n bytes.
func FiniteBlock(n int) wire.Codec {
	return &finiteBlock{n: n}
}

func (c *finiteBlock) Read(in bs.BS) (wire.ReadResult, error) {
	if in.ByteCount() < c.n {
		return wire.Suspend(c, in), nil
	}
	head, err := in.Take(c.n)
	if err != nil {
		return wire.ReadResult{}, err
	}
	rest, err := in.Drop(c.n)
	if err != nil {
		return wire.ReadResult{}, err
	}
	return wire.Result(head, rest), nil
}

func (c *finiteBlock) Write(val any) ([][]byte, error) {
	switch v := val.(type) {
	case bs.BS:
		if v.ByteCount() != c.n {
			return nil, fmt.Errorf("block: value has %d bytes, want %d", v.ByteCount(), c.n)
		}
		return v.Segments(), nil
	case []byte:
		if len(v) != c.n {
			return nil, fmt.Errorf("block: value has %d bytes, want %d", len(v), c.n)
		}
		return [][]byte{v}, nil
	default:
		return nil, fmt.Errorf("block: expected bs.BS or []byte, got %T", val)
	}
}

func (c *finiteBlock) Sizeof() (int, bool) { return c.n, true }

// delimiterMaxLen returns the length of the longest delimiter in the
// set; the scan carries a tail-window of this size minus one across
// resumptions so a delimiter straddling old and new bytes is still
// detected exactly once.
func delimiterMaxLen(delims [][]byte) int {
	max := 0
	for _, d := range delims {
		if len(d) > max {
			max = len(d)
		}
	}
	return max
}

func matchAt(in bs.BS, pos int, d []byte) bool {
	for i, want := range d {
		got, ok := in.ByteAt(pos + i)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// findDelimiter returns the position and index (within delims) of the
// first match at or after from. Ties at the same position are broken
// by delimiter-list order.
func findDelimiter(in bs.BS, delims [][]byte, from int) (pos, delimIdx int, found bool) {
	total := in.ByteCount()
	for p := from; p < total; p++ {
		for di, d := range delims {
			if p+len(d) > total {
				continue
			}
			if matchAt(in, p, d) {
				return p, di, true
			}
		}
	}
	return 0, 0, false
}

type delimitedBlock struct {
	delims   [][]byte
	strip    bool
	scanFrom int
}

// DelimitedBlock scans for the first occurrence of any delimiter in
// delims. If strip is true the returned body excludes the matched
// delimiter; otherwise the body includes it. Write appends the first
// delimiter in the set to the body.
func DelimitedBlock(delims [][]byte, strip bool) wire.Codec {
	return &delimitedBlock{delims: delims, strip: strip}
}

func (c *delimitedBlock) Read(in bs.BS) (wire.ReadResult, error) {
	pos, delimIdx, found := findDelimiter(in, c.delims, c.scanFrom)
	if !found {
		next := in.ByteCount() - delimiterMaxLen(c.delims) + 1
		if next < 0 {
			next = 0
		}
		return wire.Suspend(&delimitedBlock{delims: c.delims, strip: c.strip, scanFrom: next}, in), nil
	}

	delim := c.delims[delimIdx]
	consumeTo := pos + len(delim)
	rest, err := in.Drop(consumeTo)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if c.strip {
		body, err := in.Take(pos)
		if err != nil {
			return wire.ReadResult{}, err
		}
		return wire.Result(body, rest), nil
	}
	body, err := in.Take(consumeTo)
	if err != nil {
		return wire.ReadResult{}, err
	}
	return wire.Result(body, rest), nil
}

func (c *delimitedBlock) Write(val any) ([][]byte, error) {
	if len(c.delims) == 0 {
		return nil, fmt.Errorf("block: delimited block has no delimiters configured")
	}
	var body [][]byte
	switch v := val.(type) {
	case bs.BS:
		body = v.Segments()
	case []byte:
		body = [][]byte{v}
	default:
		return nil, fmt.Errorf("block: expected bs.BS or []byte, got %T", val)
	}
	out := make([][]byte, 0, len(body)+1)
	out = append(out, body...)
	out = append(out, c.delims[0])
	return out, nil
}

func (c *delimitedBlock) Sizeof() (int, bool) { return 0, false }

// DecodeClosedSequence repeatedly runs element against an
// already-closed byte-sequence (one with no further Need possible,
// because its length was fixed by an outer delimiter or length
// prefix) until it is fully consumed, returning the decoded elements.
// Leftover bytes that don't form a complete element is a fatal error.
func DecodeClosedSequence(body bs.BS, element wire.Codec) ([]any, error) {
	out := []any{}
	for !body.IsEmpty() {
		res, err := element.Read(body)
		if err != nil {
			return nil, err
		}
		if !res.Done {
			return nil, fmt.Errorf("block: incomplete element at end of closed sequence body")
		}
		out = append(out, res.Value)
		body = res.Remainder
	}
	return out, nil
}
