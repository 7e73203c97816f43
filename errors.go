package strictjson

import "reflect"

// An UnmarshalerError wraps an error returned by a type's
// encoding.TextUnmarshaler implementation during Unmarshal.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "strictjson: error unmarshaling text into type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
