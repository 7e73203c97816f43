/*
Package strictjson decodes strict RFC 8259 JSON text. The grammar is
exactly JSON: no comments, no trailing commas, no unquoted keys and no
NaN/Infinity literals. Errors report the kind of violation and the line
and column of the first offending character or token.

The package offers two workflows depending on the use case:

1. Decoding into a value tree

Decode parses a JSON text into an ast.Value tree that mirrors the
grammar: objects preserve member insertion order and number literals keep
their integral or fractional spelling.

	v, err := strictjson.Decode([]byte(`{"name": "svc", "port": 8080}`))
	if err != nil {
		// handle error
	}
	obj := v.(*ast.Object)
	port, _ := obj.Lookup("port")
	// port is an *ast.Integer with Value 8080

2. Data-oriented decoding into Go values

For the common task of converting JSON into Go structs, Unmarshal maps
the decoded tree onto the value pointed to by its second argument,
honoring `json:"name"` struct tags.

	type Config struct {
		Name string `json:"name"`
		Port int    `json:"port"`
	}

	var cfg Config
	if err := strictjson.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Syntax errors are reported as *errors.Error values from this module's
errors package; match them with stderrors.As and inspect the Kind:

	var syntaxErr *errors.Error
	if stderrors.As(err, &syntaxErr) {
		fmt.Println(syntaxErr.Kind, syntaxErr.Line, syntaxErr.Column)
	}

Decoding is a pure function of its input: there is no shared state, and
concurrent calls need no coordination. The decoder is not streaming; the
whole input must be in memory. Nesting depth is bounded (see MaxDepth) to
guard against stack exhaustion on adversarial input.
*/
package strictjson
