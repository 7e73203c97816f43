package strictjson

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/strictjson/go-strictjson/ast"
)

// Unmarshal parses the JSON-encoded data and stores the result in the
// value pointed to by v. v must be a non-nil pointer.
//
// JSON values map onto Go values the usual way: objects into structs
// (honoring `json:"name"` tags, with `json:"-"` skipping a field) or
// into maps with string keys, arrays into slices or arrays, strings into
// strings, numbers into integer or float kinds, booleans into bools and
// null into the zero value. When the target is an empty interface,
// integral numbers become int64 and fractional numbers float64. Types
// implementing encoding.TextUnmarshaler may be decoded from JSON strings.
func Unmarshal(data []byte, v any, opts ...Option) error {
	value, err := Decode(data, opts...)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("strictjson: Unmarshal(non-pointer %T or nil)", v)
	}
	ds := &decodeState{}
	return ds.mapValue(value, rv.Elem())
}

// decodeState carries the mapping from a decoded value tree onto Go
// values. Recursion depth needs no separate guard here: the parser
// already bounded the tree's depth.
type decodeState struct{}

func (ds *decodeState) mapValue(v ast.Value, rv reflect.Value) error { //nolint:gocyclo
	if _, isNull := v.(*ast.Null); isNull {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}

	// Attempt to use a custom text unmarshaler if available.
	handled, err := ds.tryTextUnmarshaler(v, rv)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface {
		return ds.mapInterface(v, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("strictjson: cannot set value of type %s", rv.Type())
	}

	switch node := v.(type) {
	case *ast.Null:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case *ast.String:
		return ds.mapString(node, rv)
	case *ast.Integer:
		return ds.mapInt(node, rv)
	case *ast.Float:
		return ds.mapFloat(node, rv)
	case *ast.Bool:
		return ds.mapBool(node, rv)
	case *ast.Array:
		switch rv.Kind() {
		case reflect.Slice:
			return ds.mapSlice(node, rv)
		case reflect.Array:
			return ds.mapArray(node, rv)
		default:
			return fmt.Errorf("strictjson: cannot unmarshal array into Go value of type %s", rv.Type())
		}
	case *ast.Object:
		switch rv.Kind() {
		case reflect.Struct:
			return ds.mapStruct(node, rv)
		case reflect.Map:
			return ds.mapMap(node, rv)
		default:
			return fmt.Errorf("strictjson: cannot unmarshal object into Go value of type %s", rv.Type())
		}
	default:
		return fmt.Errorf("strictjson: unsupported value node %T", node)
	}
}

// tryTextUnmarshaler attempts to use encoding.TextUnmarshaler on the
// given reflect.Value. It returns true if one was found and used, in
// which case the caller should not proceed with default unmarshaling.
func (ds *decodeState) tryTextUnmarshaler(v ast.Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}
	u, ok := pv.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return false, nil
	}
	s, isString := v.(*ast.String)
	if !isString {
		// TextUnmarshaler can only be used on string values.
		return false, nil
	}
	if err := u.UnmarshalText([]byte(s.Value)); err != nil {
		return true, &UnmarshalerError{Type: pv.Type(), Err: err}
	}
	return true, nil
}

func (ds *decodeState) mapString(s *ast.String, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return fmt.Errorf("strictjson: cannot unmarshal string into Go value of type %s", rv.Type())
	}
	rv.SetString(s.Value)
	return nil
}

func (ds *decodeState) mapInt(i *ast.Integer, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i.Value) {
			return fmt.Errorf("strictjson: integer value %d overflows Go value of type %s", i.Value, rv.Type())
		}
		rv.SetInt(i.Value)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i.Value < 0 || rv.OverflowUint(uint64(i.Value)) {
			return fmt.Errorf("strictjson: integer value %d overflows Go value of type %s", i.Value, rv.Type())
		}
		rv.SetUint(uint64(i.Value))
		return nil
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(i.Value))
		return nil
	default:
		return fmt.Errorf("strictjson: cannot unmarshal integer into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapFloat(f *ast.Float, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f.Value) {
			return fmt.Errorf("strictjson: float value %f overflows Go value of type %s", f.Value, rv.Type())
		}
		rv.SetFloat(f.Value)
		return nil
	default:
		return fmt.Errorf("strictjson: cannot unmarshal float into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapBool(b *ast.Bool, rv reflect.Value) error {
	if rv.Kind() != reflect.Bool {
		return fmt.Errorf("strictjson: cannot unmarshal boolean into Go value of type %s", rv.Type())
	}
	rv.SetBool(b.Value)
	return nil
}

func (ds *decodeState) mapSlice(a *ast.Array, rv reflect.Value) error {
	sliceType := rv.Type()
	newSlice := reflect.MakeSlice(sliceType, len(a.Elements), len(a.Elements))
	for i, elem := range a.Elements {
		if err := ds.mapValue(elem, newSlice.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func (ds *decodeState) mapArray(a *ast.Array, rv reflect.Value) error {
	if rv.Len() != len(a.Elements) {
		return fmt.Errorf("strictjson: cannot unmarshal array of length %d into Go array of length %d", len(a.Elements), rv.Len())
	}
	for i, elem := range a.Elements {
		if err := ds.mapValue(elem, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) mapMap(obj *ast.Object, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("strictjson: cannot unmarshal object into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		for _, k := range rv.MapKeys() {
			rv.SetMapIndex(k, reflect.Value{}) // The zero Value deletes the key
		}
	}
	elemType := mapType.Elem()
	for _, m := range obj.Members {
		newVal := reflect.New(elemType).Elem()
		if err := ds.mapValue(m.Value, newVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(m.Key.Value).Convert(mapType.Key()), newVal)
	}
	return nil
}

func (ds *decodeState) mapStruct(obj *ast.Object, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	for _, m := range obj.Members {
		if targetField := findField(fields, m.Key.Value); targetField != nil {
			fieldVal := fieldByIndex(rv, targetField.idx)
			if fieldVal.IsValid() && fieldVal.CanSet() {
				if err := ds.mapValue(m.Value, fieldVal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// fieldByIndex walks an index path the way reflect.Value.FieldByIndex
// does, but allocates nil embedded pointers along the path instead of
// panicking on them.
func fieldByIndex(rv reflect.Value, idx []int) reflect.Value {
	for _, i := range idx {
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				if !rv.CanSet() {
					return reflect.Value{}
				}
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv
}

func (ds *decodeState) mapInterface(v ast.Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("strictjson: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	var concreteVal reflect.Value
	switch v.(type) {
	case *ast.String:
		var s string
		concreteVal = reflect.ValueOf(&s).Elem()
	case *ast.Integer:
		var i int64
		concreteVal = reflect.ValueOf(&i).Elem()
	case *ast.Float:
		var f float64
		concreteVal = reflect.ValueOf(&f).Elem()
	case *ast.Bool:
		var b bool
		concreteVal = reflect.ValueOf(&b).Elem()
	case *ast.Array:
		var a []any
		concreteVal = reflect.ValueOf(&a).Elem()
	case *ast.Object:
		var o map[string]any
		concreteVal = reflect.ValueOf(&o).Elem()
	case *ast.Null:
		return nil
	default:
		return fmt.Errorf("strictjson: cannot determine concrete type for interface{} for value node %T", v)
	}
	if err := ds.mapValue(v, concreteVal); err != nil {
		return err
	}
	rv.Set(concreteVal)
	return nil
}

// findField finds the target field in a struct's cached fields. It first
// attempts a case-sensitive match, then falls back to a case-insensitive
// match.
func findField(fields map[string]field, keyStr string) *field {
	if f, ok := fields[keyStr]; ok {
		return &f
	}
	if f, ok := fields[strings.ToLower(keyStr)]; ok {
		return &f
	}
	return nil
}

// A field represents a single field in a struct.
type field struct {
	idx []int
}

// fieldCache caches a map of struct field names to their properties.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// cachedFields returns a map of field names to field properties for the
// given type. The result is cached to avoid repeated reflection work.
func cachedFields(t reflect.Type) map[string]field { //nolint:gocognit
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			// Each stored or recursed path gets its own backing array;
			// appending to a shared idx would let one sibling's path
			// overwrite another's.
			fieldIdx := append(append([]int(nil), idx...), i)
			if sf.Anonymous {
				// Recurse into embedded structs, through a pointer if
				// the field is embedded by pointer.
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					walk(ft, fieldIdx)
					continue
				}
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("json")
			if tag == "-" {
				continue
			}

			f := field{idx: fieldIdx}
			tagName := strings.Split(tag, ",")[0]

			// Store entries for the original tag name and field name.
			if tagName != "" {
				fields[tagName] = f
			}
			fields[sf.Name] = f

			// Store lower-cased versions for case-insensitive fallback,
			// but do not overwrite an existing case-sensitive match.
			if tagName != "" {
				lowerTagName := strings.ToLower(tagName)
				if _, ok := fields[lowerTagName]; !ok {
					fields[lowerTagName] = f
				}
			}
			lowerFieldName := strings.ToLower(sf.Name)
			if _, ok := fields[lowerFieldName]; !ok {
				fields[lowerFieldName] = f
			}
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fields)
	return fields
}
