// Package enum implements the enum combinator: a bijection between
// symbolic tags and small integers, stored on the wire as whatever
// primitive codec the caller supplies (int16 by default).
package enum

import (
	"fmt"
	"math"

	"github.com/binaryframe/frame/bs"
	"github.com/binaryframe/frame/wire"
)

type codec struct {
	storage wire.Codec
	toValue map[string]int64
	toTag   map[int64]string
}

// Dense builds an enum with a default 0..n-1 assignment over tags, in
// the order given.
func Dense(storage wire.Codec, tags []string) (wire.Codec, error) {
	mapping := make(map[string]int64, len(tags))
	for i, tag := range tags {
		mapping[tag] = int64(i)
	}
	return Explicit(storage, mapping)
}

// Explicit builds an enum from a caller-supplied tag->value mapping.
// Values must fit the signed 16-bit range.
func Explicit(storage wire.Codec, mapping map[string]int64) (wire.Codec, error) {
	toValue := make(map[string]int64, len(mapping))
	toTag := make(map[int64]string, len(mapping))
	for tag, v := range mapping {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, fmt.Errorf("enum: value %d for tag %q does not fit a signed 16-bit range", v, tag)
		}
		if existing, ok := toTag[v]; ok {
			return nil, fmt.Errorf("enum: value %d assigned to both %q and %q", v, existing, tag)
		}
		toValue[tag] = v
		toTag[v] = tag
	}
	return &codec{storage: storage, toValue: toValue, toTag: toTag}, nil
}

func (c *codec) Read(in bs.BS) (wire.ReadResult, error) {
	res, err := c.storage.Read(in)
	if err != nil {
		return wire.ReadResult{}, err
	}
	if !res.Done {
		return wire.Suspend(&codec{storage: res.Resumable, toValue: c.toValue, toTag: c.toTag}, res.Remainder), nil
	}
	n, err := asInt64(res.Value)
	if err != nil {
		return wire.ReadResult{}, err
	}
	tag, ok := c.toTag[n]
	if !ok {
		return wire.ReadResult{}, fmt.Errorf("%w: %d", wire.ErrUnknownEnumValue, n)
	}
	return wire.Result(tag, res.Remainder), nil
}

func (c *codec) Write(val any) ([][]byte, error) {
	tag, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("enum: expected a string tag, got %T", val)
	}
	n, ok := c.toValue[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", wire.ErrUnknownEnumTag, tag)
	}
	return c.storage.Write(n)
}

func (c *codec) Sizeof() (int, bool) { return c.storage.Sizeof() }

func asInt64(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("enum: expected an integer storage value, got %T", val)
	}
}
