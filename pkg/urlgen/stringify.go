package urlgen

import (
	"fmt"
	"reflect"
	"strconv"
)

// Stringify converts a parameter value to its URL string form.
//
// The conversion policy is fixed:
//   - RouteKeyer: the result of RouteKey()
//   - string and []byte: as is
//   - integers: base 10
//   - floats: shortest form that round-trips ("1.5", "2", "0.1")
//   - bool: true is "1", false is ""
//   - nil and nil pointers: ""
//   - fmt.Stringer: the result of String()
//   - named types over the kinds above: converted by kind
//
// Anything else fails with ErrUnsupportedValue.
func Stringify(v any) (string, error) {
	// A nil *T would otherwise reach value-receiver RouteKey or String methods.
	if isNil(v) {
		return "", nil
	}

	switch x := v.(type) {
	case RouteKeyer:
		return x.RouteKey(), nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return formatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return formatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Pointer:
		return Stringify(rv.Elem().Interface())
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return ""
}

// listValues returns the elements of a slice or array value used as a
// query parameter. Byte slices are scalars.
func listValues(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isNil reports whether v is nil or a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
