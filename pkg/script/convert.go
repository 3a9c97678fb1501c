package script

import (
	"fmt"

	"go.starlark.net/starlark"
)

// fromStarlark converts a Starlark value into the Go shape field
// descriptors accept: bool, int, string, []interface{}, or
// map[string]interface{}.
func fromStarlark(v starlark.Value) (interface{}, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s out of range", val.String())
		}
		return int(i), nil
	case starlark.Float:
		return float64(val), nil
	case starlark.String:
		return string(val), nil
	case *starlark.List:
		out := make([]interface{}, 0, val.Len())
		for i := 0; i < val.Len(); i++ {
			item, err := fromStarlark(val.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case starlark.Tuple:
		out := make([]interface{}, 0, len(val))
		for _, item := range val {
			converted, err := fromStarlark(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	case *starlark.Dict:
		out := make(map[string]interface{}, val.Len())
		for _, kv := range val.Items() {
			key, ok := kv[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key %s is not a string", kv[0].String())
			}
			value, err := fromStarlark(kv[1])
			if err != nil {
				return nil, err
			}
			out[string(key)] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type())
	}
}

// stringArgs converts variadic builtin arguments into a string slice.
func stringArgs(fn string, args starlark.Tuple) ([]string, error) {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		s, ok := arg.(starlark.String)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be a string, got %s", fn, i+1, arg.Type())
		}
		out = append(out, string(s))
	}
	return out, nil
}
