package strictjson_test

import (
	stderrors "errors"
	"fmt"
	"net"
	"strings"
	"testing"

	strictjson "github.com/strictjson/go-strictjson"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalScalars(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var s string
		require.NoError(t, strictjson.Unmarshal([]byte(`"hello"`), &s))
		require.Equal(t, "hello", s)
	})

	t.Run("bool", func(t *testing.T) {
		var b bool
		require.NoError(t, strictjson.Unmarshal([]byte(`true`), &b))
		require.True(t, b)
	})

	t.Run("int", func(t *testing.T) {
		var i int
		require.NoError(t, strictjson.Unmarshal([]byte(`-42`), &i))
		require.Equal(t, -42, i)
	})

	t.Run("uint", func(t *testing.T) {
		var u uint16
		require.NoError(t, strictjson.Unmarshal([]byte(`65535`), &u))
		require.Equal(t, uint16(65535), u)
	})

	t.Run("integer into float target", func(t *testing.T) {
		var f float64
		require.NoError(t, strictjson.Unmarshal([]byte(`3`), &f))
		require.Equal(t, 3.0, f)
	})

	t.Run("float", func(t *testing.T) {
		var f float64
		require.NoError(t, strictjson.Unmarshal([]byte(`2.5`), &f))
		require.Equal(t, 2.5, f)
	})

	t.Run("null zeroes the target", func(t *testing.T) {
		s := "keep"
		require.NoError(t, strictjson.Unmarshal([]byte(`null`), &s))
		require.Equal(t, "", s)
	})
}

func TestUnmarshalStruct(t *testing.T) {
	type Address struct {
		City string `json:"city"`
	}
	type Person struct {
		Name    string `json:"name"`
		Age     int    `json:"age"`
		Email   string `json:"-"`
		Nick    string
		Address Address  `json:"address"`
		Tags    []string `json:"tags"`
	}

	data := []byte(`{
	  "name": "Ada",
	  "age": 36,
	  "Email": "ada@example.com",
	  "nick": "ada",
	  "address": {"city": "London"},
	  "tags": ["math", "engines"]
	}`)

	var p Person
	require.NoError(t, strictjson.Unmarshal(data, &p))
	require.Equal(t, "Ada", p.Name)
	require.Equal(t, 36, p.Age)
	require.Empty(t, p.Email, `json:"-" fields are never set`)
	require.Equal(t, "ada", p.Nick, "field names match case-insensitively")
	require.Equal(t, "London", p.Address.City)
	require.Equal(t, []string{"math", "engines"}, p.Tags)
}

func TestUnmarshalEmbeddedStruct(t *testing.T) {
	type Base struct {
		ID int `json:"id"`
	}
	type Wrapper struct {
		Base
		Name string `json:"name"`
	}

	var w Wrapper
	require.NoError(t, strictjson.Unmarshal([]byte(`{"id": 7, "name": "x"}`), &w))
	require.Equal(t, 7, w.ID)
	require.Equal(t, "x", w.Name)
}

func TestUnmarshalEmbeddedPointerStruct(t *testing.T) {
	type Inner struct {
		A int `json:"a"`
	}
	type Outer struct {
		*Inner
		B int `json:"b"`
	}

	var o Outer
	require.NoError(t, strictjson.Unmarshal([]byte(`{"a": 1, "b": 2}`), &o))
	require.NotNil(t, o.Inner, "nil embedded pointer is allocated on demand")
	require.Equal(t, 1, o.Inner.A)
	require.Equal(t, 2, o.B)
}

func TestUnmarshalDeeplyEmbeddedSiblings(t *testing.T) {
	type LeafX struct {
		X int `json:"x"`
	}
	type LeafY struct {
		Y int `json:"y"`
	}
	type BranchX struct {
		LeafX
	}
	type BranchY struct {
		*LeafY
	}
	type Trunk struct {
		BranchX
		BranchY
		Z int `json:"z"`
	}
	type Root struct {
		Trunk
	}

	// Sibling branches at the same embedding depth must each keep their
	// own field index path.
	var r Root
	require.NoError(t, strictjson.Unmarshal([]byte(`{"x": 1, "y": 2, "z": 3}`), &r))
	require.Equal(t, 1, r.X)
	require.NotNil(t, r.BranchY.LeafY)
	require.Equal(t, 2, r.Y)
	require.Equal(t, 3, r.Z)
}

func TestUnmarshalMap(t *testing.T) {
	var m map[string]int
	require.NoError(t, strictjson.Unmarshal([]byte(`{"a": 1, "b": 2}`), &m))
	require.Equal(t, map[string]int{"a": 1, "b": 2}, m)

	// A named string key type is converted.
	type Key string
	var km map[Key]bool
	require.NoError(t, strictjson.Unmarshal([]byte(`{"on": true}`), &km))
	require.Equal(t, map[Key]bool{"on": true}, km)

	// A pre-populated map is replaced, not merged.
	m = map[string]int{"stale": 9}
	require.NoError(t, strictjson.Unmarshal([]byte(`{"fresh": 1}`), &m))
	require.Equal(t, map[string]int{"fresh": 1}, m)
}

func TestUnmarshalSliceAndArray(t *testing.T) {
	var s []int
	require.NoError(t, strictjson.Unmarshal([]byte(`[1, 2, 3]`), &s))
	require.Equal(t, []int{1, 2, 3}, s)

	var a [3]int
	require.NoError(t, strictjson.Unmarshal([]byte(`[4, 5, 6]`), &a))
	require.Equal(t, [3]int{4, 5, 6}, a)

	err := strictjson.Unmarshal([]byte(`[1, 2]`), &a)
	require.Error(t, err)
	require.Contains(t, err.Error(), "into Go array of length 3")

	var nested [][]string
	require.NoError(t, strictjson.Unmarshal([]byte(`[["a"], [], ["b", "c"]]`), &nested))
	require.Equal(t, [][]string{{"a"}, {}, {"b", "c"}}, nested)
}

func TestUnmarshalPointers(t *testing.T) {
	type Target struct {
		Value *int `json:"value"`
	}

	var tgt Target
	require.NoError(t, strictjson.Unmarshal([]byte(`{"value": 5}`), &tgt))
	require.NotNil(t, tgt.Value)
	require.Equal(t, 5, *tgt.Value)

	require.NoError(t, strictjson.Unmarshal([]byte(`{"value": null}`), &tgt))
	require.Nil(t, tgt.Value)
}

func TestUnmarshalInterface(t *testing.T) {
	var v any
	data := []byte(`{"n": 1, "f": 2.5, "s": "x", "b": true, "z": null, "l": [1, "two"]}`)
	require.NoError(t, strictjson.Unmarshal(data, &v))

	require.Equal(t, map[string]any{
		"n": int64(1),
		"f": 2.5,
		"s": "x",
		"b": true,
		"z": nil,
		"l": []any{int64(1), "two"},
	}, v)
}

func TestUnmarshalTextUnmarshaler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var ip net.IP
		require.NoError(t, strictjson.Unmarshal([]byte(`"192.0.2.1"`), &ip))
		require.Equal(t, "192.0.2.1", ip.String())
	})

	t.Run("failure wraps the cause", func(t *testing.T) {
		var ip net.IP
		err := strictjson.Unmarshal([]byte(`"not an address"`), &ip)
		require.Error(t, err)

		var ue *strictjson.UnmarshalerError
		require.True(t, stderrors.As(err, &ue))
		require.Equal(t, "*net.IP", ue.Type.String())
		require.NotNil(t, ue.Err)
		require.Contains(t, err.Error(), "strictjson: error unmarshaling text into type *net.IP")
	})

	t.Run("only strings reach the unmarshaler", func(t *testing.T) {
		// A non-string value falls through to default mapping, which
		// fails for a slice-of-byte target fed an integer.
		var ip net.IP
		err := strictjson.Unmarshal([]byte(`1`), &ip)
		require.Error(t, err)
	})
}

func TestUnmarshalTargetErrors(t *testing.T) {
	t.Run("non-pointer", func(t *testing.T) {
		var s string
		err := strictjson.Unmarshal([]byte(`"x"`), s)
		require.Error(t, err)
		require.Contains(t, err.Error(), "non-pointer")
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := strictjson.Unmarshal([]byte(`"x"`), (*string)(nil))
		require.Error(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		err := strictjson.Unmarshal([]byte(`"x"`), nil)
		require.Error(t, err)
	})
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	tests := []struct {
		input   string
		target  func() any
		wantMsg string
	}{
		{`"x"`, func() any { return new(int) }, "cannot unmarshal string into Go value of type int"},
		{`1`, func() any { return new(string) }, "cannot unmarshal integer into Go value of type string"},
		{`1.5`, func() any { return new(int) }, "cannot unmarshal float into Go value of type int"},
		{`true`, func() any { return new(int) }, "cannot unmarshal boolean into Go value of type int"},
		{`[1]`, func() any { return new(int) }, "cannot unmarshal array into Go value of type int"},
		{`{}`, func() any { return new(int) }, "cannot unmarshal object into Go value of type int"},
		{`300`, func() any { return new(int8) }, "integer value 300 overflows Go value of type int8"},
		{`-1`, func() any { return new(uint) }, "integer value -1 overflows Go value of type uint"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			err := strictjson.Unmarshal([]byte(tt.input), tt.target())
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecoder(t *testing.T) {
	t.Run("reads from a stream", func(t *testing.T) {
		var cfg struct {
			Host string `json:"host"`
			Port int    `json:"port"`
		}
		r := strings.NewReader(`{"host": "localhost", "port": 8080}`)
		require.NoError(t, strictjson.NewDecoder(r).Decode(&cfg))
		require.Equal(t, "localhost", cfg.Host)
		require.Equal(t, 8080, cfg.Port)
	})

	t.Run("carries options", func(t *testing.T) {
		var v any
		r := strings.NewReader(`[[[0]]]`)
		err := strictjson.NewDecoder(r, strictjson.MaxDepth(2)).Decode(&v)
		require.Error(t, err)
	})

	t.Run("nil reader", func(t *testing.T) {
		var v any
		err := strictjson.NewDecoder(nil).Decode(&v)
		require.EqualError(t, err, "strictjson: Decode(nil reader)")
	})

	t.Run("reader failure propagates", func(t *testing.T) {
		var v any
		err := strictjson.NewDecoder(failingReader{}).Decode(&v)
		require.ErrorIs(t, err, errRead)
	})
}

var errRead = fmt.Errorf("read failed")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errRead }
