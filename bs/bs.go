// Package bs implements the byte-sequence: an immutable logical
// concatenation of read-only buffer segments with O(1) Take/Drop and
// single-copy materialization.
//
// A BS never copies on Take, Drop or Dup: those operations only
// reslice the segments they're given, which shares the underlying
// arrays with whoever produced them. Only Contiguous and
// TakeContiguous copy, and each copies at most once.
package bs

import "fmt"

// BS is an ordered, immutable view over zero or more byte slices.
// The zero value is the empty sequence.
type BS struct {
	segs [][]byte
}

// Wrap builds a BS over the given segments in order. The segments are
// not copied; callers must not mutate them after handing them to Wrap.
func Wrap(segments ...[]byte) BS {
	segs := make([][]byte, 0, len(segments))
	for _, s := range segments {
		if len(s) == 0 {
			continue
		}
		segs = append(segs, s)
	}
	return BS{segs: segs}
}

// Empty returns the zero-length byte-sequence.
func Empty() BS { return BS{} }

// ByteCount returns the total number of bytes remaining in bs.
func (b BS) ByteCount() int {
	n := 0
	for _, s := range b.segs {
		n += len(s)
	}
	return n
}

// IsEmpty reports whether bs holds no bytes.
func (b BS) IsEmpty() bool { return b.ByteCount() == 0 }

// Dup returns a byte-sequence that aliases the same underlying
// segments but owns an independent logical position: advancing the
// returned value (via Take/Drop, which never mutate in place) has no
// effect on b.
func (b BS) Dup() BS {
	segs := make([][]byte, len(b.segs))
	copy(segs, b.segs)
	return BS{segs: segs}
}

// Take returns a byte-sequence of exactly n bytes taken from the
// front of b, sharing memory with b's segments. It fails if b has
// fewer than n bytes.
func (b BS) Take(n int) (BS, error) {
	if n < 0 {
		return BS{}, fmt.Errorf("bs: negative take %d", n)
	}
	if n == 0 {
		return BS{}, nil
	}
	if b.ByteCount() < n {
		return BS{}, fmt.Errorf("bs: take %d, only %d available", n, b.ByteCount())
	}

	out := make([][]byte, 0, len(b.segs))
	remaining := n
	for _, s := range b.segs {
		if remaining == 0 {
			break
		}
		if len(s) <= remaining {
			out = append(out, s)
			remaining -= len(s)
			continue
		}
		out = append(out, s[:remaining])
		remaining = 0
	}
	return BS{segs: out}, nil
}

// Drop returns the tail of b after its first n bytes are removed. It
// fails if b has fewer than n bytes.
func (b BS) Drop(n int) (BS, error) {
	if n < 0 {
		return BS{}, fmt.Errorf("bs: negative drop %d", n)
	}
	if n == 0 {
		return b, nil
	}
	if b.ByteCount() < n {
		return BS{}, fmt.Errorf("bs: drop %d, only %d available", n, b.ByteCount())
	}

	remaining := n
	i := 0
	for i < len(b.segs) && remaining >= len(b.segs[i]) {
		remaining -= len(b.segs[i])
		i++
	}
	if i == len(b.segs) {
		return BS{}, nil
	}
	out := make([][]byte, 0, len(b.segs)-i)
	out = append(out, b.segs[i][remaining:])
	out = append(out, b.segs[i+1:]...)
	return BS{segs: out}, nil
}

// TakeContiguous is like Take but the returned byte-sequence is
// backed by a single buffer. A head that already lies within one
// segment is returned as is, sharing memory; otherwise it is copied
// once into a freshly allocated buffer.
func (b BS) TakeContiguous(n int) (BS, error) {
	head, err := b.Take(n)
	if err != nil {
		return BS{}, err
	}
	if len(head.segs) <= 1 {
		return head, nil
	}
	return Wrap(head.Contiguous()), nil
}

// Contiguous materializes the entire remaining sequence into a single
// buffer, copying at most once. An empty sequence yields an empty,
// non-nil slice.
func (b BS) Contiguous() []byte {
	n := b.ByteCount()
	out := make([]byte, 0, n)
	for _, s := range b.segs {
		out = append(out, s...)
	}
	return out
}

// Append returns a new byte-sequence consisting of b followed by the
// given segments. Used to concatenate a freshly arrived chunk onto
// the remainder captured by a Need.
func (b BS) Append(segments ...[]byte) BS {
	segs := make([][]byte, 0, len(b.segs)+len(segments))
	segs = append(segs, b.segs...)
	for _, s := range segments {
		if len(s) == 0 {
			continue
		}
		segs = append(segs, s)
	}
	return BS{segs: segs}
}

// ByteAt returns the byte at logical offset i within b.
func (b BS) ByteAt(i int) (byte, bool) {
	if i < 0 {
		return 0, false
	}
	for _, s := range b.segs {
		if i < len(s) {
			return s[i], true
		}
		i -= len(s)
	}
	return 0, false
}

// Segments returns the underlying segments of b. Callers must treat
// the returned slices as read-only.
func (b BS) Segments() [][]byte {
	return b.segs
}
