// Package ast defines the value tree produced by decoding a JSON text.
// A decoded document is a finite, acyclic tree of Value nodes owned by
// its root; the decoder hands the tree to the caller and never mutates
// it afterwards.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strictjson/go-strictjson/token"
)

// Value is the interface implemented by every node of a decoded JSON
// value tree.
type Value interface {
	// Pos returns the 1-based line and column of the value's first token.
	Pos() (line, column int)
	// String returns a compact JSON rendering of the value. It is meant
	// for diagnostics and golden tests, not as an encoder.
	String() string
	valueNode()
}

// Null represents the null literal.
type Null struct {
	Token token.Token
}

func (n *Null) valueNode()      {}
func (n *Null) Pos() (int, int) { return n.Token.Line, n.Token.Column }
func (n *Null) String() string  { return "null" }

// Bool represents a true or false literal.
type Bool struct {
	Token token.Token
	Value bool
}

func (b *Bool) valueNode()      {}
func (b *Bool) Pos() (int, int) { return b.Token.Line, b.Token.Column }
func (b *Bool) String() string  { return strconv.FormatBool(b.Value) }

// Integer represents a number literal written without a fraction or
// exponent.
type Integer struct {
	Token token.Token
	Value int64
}

func (i *Integer) valueNode()      {}
func (i *Integer) Pos() (int, int) { return i.Token.Line, i.Token.Column }
func (i *Integer) String() string  { return strconv.FormatInt(i.Value, 10) }

// Float represents a number literal written with a fraction or exponent.
type Float struct {
	Token token.Token
	Value float64
}

func (f *Float) valueNode()      {}
func (f *Float) Pos() (int, int) { return f.Token.Line, f.Token.Column }

func (f *Float) String() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		// Keep the fractional spelling so the rendering re-decodes as a
		// Float rather than an Integer.
		s += ".0"
	}
	return s
}

// String represents a string literal with all escapes resolved.
type String struct {
	Token token.Token
	Value string
}

func (s *String) valueNode()      {}
func (s *String) Pos() (int, int) { return s.Token.Line, s.Token.Column }
func (s *String) String() string  { return Quote(s.Value) }

// Array represents an array literal. Elements appear in source order.
type Array struct {
	Token    token.Token // the '[' token
	Elements []Value
}

func (a *Array) valueNode()      {}
func (a *Array) Pos() (int, int) { return a.Token.Line, a.Token.Column }

func (a *Array) String() string {
	elements := make([]string, 0, len(a.Elements))
	for _, el := range a.Elements {
		elements = append(elements, el.String())
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

// Member is a single key/value entry of an Object.
type Member struct {
	Key   *String
	Value Value
}

func (m *Member) String() string {
	return m.Key.String() + ": " + m.Value.String()
}

// Object represents an object literal. Members preserve the insertion
// order in which keys were first encountered in the source.
type Object struct {
	Token   token.Token // the '{' token
	Members []*Member
}

func (o *Object) valueNode()      {}
func (o *Object) Pos() (int, int) { return o.Token.Line, o.Token.Column }

func (o *Object) String() string {
	members := make([]string, 0, len(o.Members))
	for _, m := range o.Members {
		members = append(members, m.String())
	}
	return "{" + strings.Join(members, ", ") + "}"
}

// Lookup returns the value of the member with the given key.
func (o *Object) Lookup(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key.Value == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Quote returns s as a JSON string literal. Unlike strconv.Quote it only
// emits escapes that the JSON grammar accepts.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
