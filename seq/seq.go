// Package seq implements the sequence combinators: fixed-shape
// tuples, ordered (key-preserving) maps, length-prefixed repetition,
// delimiter-terminated repetition, and read-to-end repetition
// (neither prefix nor delimiter, where the element decodes until
// input runs out), each able to resume a partially-read sequence
// across Need boundaries.
package seq

import (
	"fmt"

	"github.com/binaryframe/frame/block"
	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

// ---- Tuple (fixed-shape list) ----

type tupleCodec struct {
	children []wire.Codec
	index    int
	acc      []any
}

// Tuple returns a codec that encodes/decodes children in declared
// order, producing a []any of len(children) on decode.
func Tuple(children []wire.Codec) wire.Codec {
	return &tupleCodec{children: children}
}

func (c *tupleCodec) Read(in bs.BS) (wire.ReadResult, error) {
	acc := append([]any{}, c.acc...)
	cur := in
	for idx := c.index; idx < len(c.children); idx++ {
		res, err := c.children[idx].Read(cur)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			children := append([]wire.Codec{}, c.children...)
			children[idx] = res.Resumable
			return wire.Suspend(&tupleCodec{children: children, index: idx, acc: acc}, res.Remainder), nil
		}
		acc = append(acc, res.Value)
		cur = res.Remainder
	}
	return wire.Result(acc, cur), nil
}

func (c *tupleCodec) Write(val any) ([][]byte, error) {
	values, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: tuple expects []any, got %T", wire.ErrShapeMismatch, val)
	}
	if len(values) != len(c.children) {
		return nil, fmt.Errorf("%w: tuple has %d children, value has %d elements", wire.ErrShapeMismatch, len(c.children), len(values))
	}
	var out [][]byte
	for i, child := range c.children {
		buffers, err := child.Write(values[i])
		if err != nil {
			return nil, err
		}
		out = append(out, buffers...)
	}
	return out, nil
}

func (c *tupleCodec) Sizeof() (int, bool) {
	total := 0
	for _, child := range c.children {
		n, ok := child.Sizeof()
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

// ---- Ordered map ----

// Map is the decoded value of an ordered-map frame: key/value pairs
// whose order is fixed by Keys, not by the order of Set calls. Encode
// order follows Keys, matching declaration order.
type Map struct {
	Keys   []string
	Values map[string]any
}

// NewMap builds an empty ordered map over the given keys, in order.
func NewMap(keys []string) *Map {
	return &Map{Keys: append([]string{}, keys...), Values: make(map[string]any, len(keys))}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.Values[key]
	return v, ok
}

// Set stores val under key. key must already be one of m.Keys.
func (m *Map) Set(key string, val any) {
	if m.Values == nil {
		m.Values = make(map[string]any)
	}
	m.Values[key] = val
}

type orderedMapCodec struct {
	keys     []string
	children []wire.Codec
	index    int
	acc      *Map
}

// OrderedMap returns a codec that decodes/encodes a Map keyed by
// keys, compiling children in the same order. It is the only portable
// map-frame constructor: a plain Go map has no stable iteration order
// to put on the wire.
func OrderedMap(keys []string, children []wire.Codec) wire.Codec {
	return &orderedMapCodec{keys: keys, children: children}
}

func (c *orderedMapCodec) Read(in bs.BS) (wire.ReadResult, error) {
	acc := c.acc
	if acc == nil {
		acc = NewMap(c.keys)
	} else {
		clone := NewMap(c.keys)
		for k, v := range acc.Values {
			clone.Values[k] = v
		}
		acc = clone
	}
	cur := in
	for idx := c.index; idx < len(c.children); idx++ {
		res, err := c.children[idx].Read(cur)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			children := append([]wire.Codec{}, c.children...)
			children[idx] = res.Resumable
			return wire.Suspend(&orderedMapCodec{keys: c.keys, children: children, index: idx, acc: acc}, res.Remainder), nil
		}
		acc.Set(c.keys[idx], res.Value)
		cur = res.Remainder
	}
	return wire.Result(acc, cur), nil
}

func (c *orderedMapCodec) Write(val any) ([][]byte, error) {
	m, ok := val.(*Map)
	if !ok {
		if mv, ok2 := val.(Map); ok2 {
			m = &mv
		} else {
			return nil, fmt.Errorf("%w: ordered map expects *seq.Map, got %T", wire.ErrShapeMismatch, val)
		}
	}
	var out [][]byte
	for i, key := range c.keys {
		v, ok := m.Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: ordered map missing key %q", wire.ErrShapeMismatch, key)
		}
		buffers, err := c.children[i].Write(v)
		if err != nil {
			return nil, err
		}
		out = append(out, buffers...)
	}
	return out, nil
}

func (c *orderedMapCodec) Sizeof() (int, bool) {
	total := 0
	for _, child := range c.children {
		n, ok := child.Sizeof()
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

// ---- Length-prefixed repetition ----

type prefixRepeated struct {
	prefix     wire.Codec
	element    wire.Codec
	havePrefix bool
	n          int
	i          int
	acc        []any
	curElement wire.Codec
}

// PrefixRepeated returns a codec that decodes a count with prefix,
// then decodes that many elements with element.
func PrefixRepeated(prefix, element wire.Codec) wire.Codec {
	return &prefixRepeated{prefix: prefix, element: element}
}

func (c *prefixRepeated) Read(in bs.BS) (wire.ReadResult, error) {
	if !c.havePrefix {
		res, err := c.prefix.Read(in)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			return wire.Suspend(&prefixRepeated{prefix: res.Resumable, element: c.element}, res.Remainder), nil
		}
		n, err := asInt(res.Value)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if n == 0 {
			return wire.Result([]any{}, res.Remainder), nil
		}
		return (&prefixRepeated{element: c.element, havePrefix: true, n: n}).Read(res.Remainder)
	}

	// Fast path: if the element width is known, don't even attempt to
	// read until enough bytes for every remaining element have
	// arrived.
	if sz, ok := c.element.Sizeof(); ok {
		need := sz * (c.n - c.i)
		if in.ByteCount() < need {
			return wire.Suspend(c, in), nil
		}
	}

	acc := append([]any{}, c.acc...)
	cur := c.curElement
	if cur == nil {
		cur = c.element
	}
	bsIn := in
	for i := c.i; i < c.n; i++ {
		res, err := cur.Read(bsIn)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			return wire.Suspend(&prefixRepeated{element: c.element, havePrefix: true, n: c.n, i: i, acc: acc, curElement: res.Resumable}, res.Remainder), nil
		}
		acc = append(acc, res.Value)
		bsIn = res.Remainder
		cur = c.element
	}
	return wire.Result(acc, bsIn), nil
}

func (c *prefixRepeated) Write(val any) ([][]byte, error) {
	values, err := toAnySlice(val)
	if err != nil {
		return nil, err
	}
	prefixBuffers, err := c.prefix.Write(len(values))
	if err != nil {
		return nil, err
	}
	var elemBuffers [][]byte
	for _, v := range values {
		buffers, err := c.element.Write(v)
		if err != nil {
			return nil, err
		}
		elemBuffers = append(elemBuffers, buffers...)
	}

	if pn, pok := c.prefix.Sizeof(); pok {
		if en, eok := c.element.Sizeof(); eok {
			total := pn + en*len(values)
			single := make([]byte, 0, total)
			for _, b := range prefixBuffers {
				single = append(single, b...)
			}
			for _, b := range elemBuffers {
				single = append(single, b...)
			}
			return [][]byte{single}, nil
		}
	}

	out := make([][]byte, 0, len(prefixBuffers)+len(elemBuffers))
	out = append(out, prefixBuffers...)
	out = append(out, elemBuffers...)
	return out, nil
}

// Sizeof is always unknown: the element count varies per value even
// when a single element's width is fixed.
func (c *prefixRepeated) Sizeof() (int, bool) { return 0, false }

// ---- Read-to-end repetition ----

// readToEnd is repeated decoding with neither a prefix count nor a
// delimiter: it decodes element repeatedly until the byte-sequence in
// hand is exhausted, the way Decode/DecodeAll exhaust a whole buffer.
// It only terminates cleanly right after a completed element leaves
// nothing behind; running out of bytes mid-element still suspends on
// Need like every other combinator.
type readToEnd struct {
	element    wire.Codec
	acc        []any
	curElement wire.Codec
}

// ReadToEnd returns a codec that decodes element repeatedly out of
// whatever is left of the input, stopping when the input is fully
// consumed. It relies on each element being self-delimiting and on
// the caller handing it exactly the bytes that belong to it.
func ReadToEnd(element wire.Codec) wire.Codec {
	return &readToEnd{element: element}
}

func (c *readToEnd) Read(in bs.BS) (wire.ReadResult, error) {
	acc := append([]any{}, c.acc...)
	cur := c.curElement
	if cur == nil {
		cur = c.element
	}
	bsIn := in
	for !bsIn.IsEmpty() {
		res, err := cur.Read(bsIn)
		if err != nil {
			return wire.ReadResult{}, err
		}
		if !res.Done {
			return wire.Suspend(&readToEnd{element: c.element, acc: acc, curElement: res.Resumable}, res.Remainder), nil
		}
		acc = append(acc, res.Value)
		bsIn = res.Remainder
		cur = c.element
	}
	return wire.Result(acc, bsIn), nil
}

func (c *readToEnd) Write(val any) ([][]byte, error) {
	values, err := toAnySlice(val)
	if err != nil {
		return nil, err
	}
	var out [][]byte
	for _, v := range values {
		buffers, err := c.element.Write(v)
		if err != nil {
			return nil, err
		}
		out = append(out, buffers...)
	}
	return out, nil
}

func (c *readToEnd) Sizeof() (int, bool) { return 0, false }

// ---- Delimiter-terminated repetition ----

// delimitedRepeated is delimiter-terminated repetition, built on two
// lower-level primitives: it first extracts the whole delimited body
// (block.DelimitedBlock), then decodes elements out of that closed
// body (block.DecodeClosedSequence), repeatedly decoding element
// codecs from within the body until it is exhausted.
type delimitedRepeated struct {
	scan    wire.Codec
	element wire.Codec
	delims  [][]byte
}

// DelimitedRepeated returns a codec that decodes element repeatedly
// out of the body preceding the first occurrence of one of delims.
func DelimitedRepeated(element wire.Codec, delims [][]byte) wire.Codec {
	return &delimitedRepeated{scan: block.DelimitedBlock(delims, true), element: element, delims: delims}
}

func (c *delimitedRepeated) Read(in bs.BS) (wire.ReadResult, error) {
	res, err := c.scan.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&delimitedRepeated{scan: res.Resumable, element: c.element, delims: c.delims}, res.Remainder), nil
	}
	body := res.Value.(bs.BS)
	values, err := block.DecodeClosedSequence(body, c.element)
	if err != nil {
		return wire.ReadResult{}, err
	}
	return wire.Result(values, res.Remainder), nil
}

func (c *delimitedRepeated) Write(val any) ([][]byte, error) {
	values, err := toAnySlice(val)
	if err != nil {
		return nil, err
	}
	if len(c.delims) == 0 {
		return nil, fmt.Errorf("seq: delimited repetition has no delimiters configured")
	}
	var out [][]byte
	for _, v := range values {
		buffers, err := c.element.Write(v)
		if err != nil {
			return nil, err
		}
		out = append(out, buffers...)
	}
	out = append(out, c.delims[0])
	return out, nil
}

func (c *delimitedRepeated) Sizeof() (int, bool) { return 0, false }

func asInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("seq: expected an integer count, got %T", val)
	}
}

func toAnySlice(val any) ([]any, error) {
	values, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: repeated expects []any, got %T", wire.ErrShapeMismatch, val)
	}
	return values, nil
}
