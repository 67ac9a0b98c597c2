package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RecencyKey wraps a recency field (build_start_time, distribution build
// number, current_date) whose value the backend returns as either a JSON
// number or a string, depending on which CI job indexed the row. Comparison
// is numeric when both sides coerce to numbers and lexicographic otherwise;
// serialization preserves the arrival form.
type RecencyKey struct {
	raw     string
	num     float64
	numeric bool
	quoted  bool
	present bool
}

// RecencyKeyOf builds a RecencyKey from a decoded JSON value. Anything other
// than a number or a non-empty string yields the zero (absent) key.
func RecencyKeyOf(v interface{}) RecencyKey {
	switch t := v.(type) {
	case float64:
		return RecencyKey{
			raw:     strconv.FormatFloat(t, 'f', -1, 64),
			num:     t,
			numeric: true,
			present: true,
		}
	case int:
		return RecencyKeyOf(float64(t))
	case int64:
		return RecencyKeyOf(float64(t))
	case json.Number:
		return recencyKeyOfString(t.String(), false)
	case string:
		return recencyKeyOfString(t, true)
	default:
		return RecencyKey{}
	}
}

func recencyKeyOfString(s string, quoted bool) RecencyKey {
	if s == "" {
		return RecencyKey{}
	}
	k := RecencyKey{raw: s, quoted: quoted, present: true}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		k.num = n
		k.numeric = true
	}
	return k
}

// IsZero returns true if no usable value arrived.
func (k RecencyKey) IsZero() bool {
	return !k.present
}

// Numeric returns the value as a float64 and whether it coerces to a number.
func (k RecencyKey) Numeric() (float64, bool) {
	return k.num, k.numeric
}

// String returns the value as it arrived, without quoting.
func (k RecencyKey) String() string {
	return k.raw
}

// Compare returns -1, 0 or 1 ordering k against o. Both-numeric compares
// numerically; otherwise the raw strings are compared. Absent keys sort
// before any present key.
func (k RecencyKey) Compare(o RecencyKey) int {
	if !k.present || !o.present {
		switch {
		case k.present:
			return 1
		case o.present:
			return -1
		default:
			return 0
		}
	}
	if k.numeric && o.numeric {
		switch {
		case k.num < o.num:
			return -1
		case k.num > o.num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(k.raw, o.raw)
}

// MarshalJSON writes the value back in its arrival form: numbers stay
// numbers, strings stay strings, absent keys become null.
func (k RecencyKey) MarshalJSON() ([]byte, error) {
	if !k.present {
		return []byte("null"), nil
	}
	if k.quoted {
		return json.Marshal(k.raw)
	}
	return []byte(k.raw), nil
}

// UnmarshalJSON accepts a number, a string, or null.
func (k *RecencyKey) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*k = RecencyKey{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*k = recencyKeyOfString(str, true)
		return nil
	}
	*k = recencyKeyOfString(s, false)
	return nil
}
