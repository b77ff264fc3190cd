package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Stringify converts any value to the string form that gets persisted.
// The conversion is one-way: reads always return a string, never the original type.
// Composite values (maps, slices, structs), Stringers and errors go through fmt.Sprint,
// which also copes with typed nil pointers.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
