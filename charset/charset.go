// Package charset resolves charset names used by frame/text's string
// codec to golang.org/x/text encodings. Resolution happens once, at
// compile time; an unknown or unsupported name fails immediately
// rather than at every encode/decode.
package charset

import (
	"fmt"

	"github.com/fagongzi/util/hack"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Charset converts between raw bytes and Go strings for one named
// character encoding.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// Resolve looks a charset name up in the IANA registry. The common
// spellings of "utf-8" are matched directly to x/text's UTF-8
// encoding without an IANA index lookup.
func Resolve(name string) (*Charset, error) {
	if name == "" {
		return nil, fmt.Errorf("charset: empty charset name")
	}
	if isUTF8(name) {
		return &Charset{name: name, enc: unicode.UTF8}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("charset: unsupported charset %q: %w", name, err)
	}
	return &Charset{name: name, enc: enc}, nil
}

func isUTF8(name string) bool {
	switch name {
	case "utf-8", "utf8", "UTF-8", "UTF8":
		return true
	default:
		return false
	}
}

// Name returns the charset name this Charset was resolved from.
func (c *Charset) Name() string { return c.name }

// Decode converts raw bytes to a string in this charset. The final
// []byte->string conversion goes through hack.SliceToString, the same
// zero-copy conversion buf.ByteBuf.WriteString uses in reverse, rather
// than a copying string(out).
func (c *Charset) Decode(data []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("charset: decode %s: %w", c.name, err)
	}
	return hack.SliceToString(out), nil
}

// Encode converts a string to raw bytes in this charset.
func (c *Charset) Encode(s string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes(hack.StringToSlice(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encode %s: %w", c.name, err)
	}
	return out, nil
}
