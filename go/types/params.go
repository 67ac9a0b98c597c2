package types

import (
	"encoding/json"
	"strconv"
)

// StringList is a request parameter that callers supply as either a single
// scalar or a list (rc_numbers, build_numbers, components). Normalization
// happens once at the request boundary so the engine only ever sees
// []string.
type StringList []string

// NormalizeStringList converts a loosely-typed parameter value into a
// StringList. Scalars become one-element lists, numbers are stringified,
// nil and empty strings become nil.
func NormalizeStringList(v interface{}) StringList {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return StringList{t}
	case []string:
		var ret StringList
		for _, s := range t {
			if s != "" {
				ret = append(ret, s)
			}
		}
		return ret
	case StringList:
		return NormalizeStringList([]string(t))
	case float64:
		return StringList{formatNumber(t)}
	case int:
		return StringList{strconv.Itoa(t)}
	case []interface{}:
		var ret StringList
		for _, e := range t {
			ret = append(ret, NormalizeStringList(e)...)
		}
		return ret
	default:
		return nil
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UnmarshalJSON accepts a scalar or an array, so HTTP payloads may use
// either form.
func (l *StringList) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*l = NormalizeStringList(v)
	return nil
}
