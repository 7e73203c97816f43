package strictjson

import (
	"fmt"
	"io"

	"github.com/strictjson/go-strictjson/ast"
	"github.com/strictjson/go-strictjson/internal/lexer"
	"github.com/strictjson/go-strictjson/internal/parser"
)

// Decode parses data as a single JSON text and returns the decoded value
// tree. The input must contain exactly one JSON value; anything after it
// is a TrailingContent error. On failure the returned error is a
// *errors.Error carrying the kind and position of the first violation.
func Decode(data []byte, opts ...Option) (ast.Value, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	p := parser.New(lexer.New(data), o.maxDepth)
	return p.Parse()
}

// Valid reports whether data is a syntactically valid JSON text.
func Valid(data []byte) bool {
	_, err := Decode(data)
	return err == nil
}

// Decoder reads and decodes a JSON value from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure the decoding process,
// such as setting a maximum nesting depth with the MaxDepth option.
//
// Note: this is a non-streaming implementation. Decode reads the entire
// reader into memory before scanning.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the JSON value from its input and stores it in the value
// pointed to by out. See the documentation for Unmarshal for details
// about the conversion of JSON into a Go value.
func (d *Decoder) Decode(out any) error {
	if d.r == nil {
		return fmt.Errorf("strictjson: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, out, d.opts...)
}
