package runtime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the runtime form of a field type. Validate checks a value
// against the type and returns its normalized form: integers normalize to
// int64, floats to float64, datetime strings to time.Time, and mappings
// destined for model fields to *Instance.
type Type interface {
	String() string
	Validate(value interface{}) (interface{}, error)
}

// primitiveType is a scalar type backed by a check function. All seeded
// scalars and host-registered custom types use this representation.
type primitiveType struct {
	name  string
	check func(value interface{}) (interface{}, error)
}

func (p *primitiveType) String() string { return p.name }

func (p *primitiveType) Validate(value interface{}) (interface{}, error) {
	return p.check(value)
}

// Text returns the type accepting string values.
func Text() Type {
	return &primitiveType{name: "str", check: func(value interface{}) (interface{}, error) {
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, typeError("str", value)
	}}
}

// Integer returns the type accepting integral values. Whole-number floats
// are accepted so that values round-tripped through JSON validate.
func Integer() Type {
	return &primitiveType{name: "int", check: checkInteger("int")}
}

// Timestamp returns the type for epoch timestamps. It validates exactly
// like Integer but names itself timestamp in messages.
func Timestamp() Type {
	return &primitiveType{name: "timestamp", check: checkInteger("timestamp")}
}

// Float returns the type accepting numeric values, normalized to float64.
func Float() Type {
	return &primitiveType{name: "float", check: func(value interface{}) (interface{}, error) {
		switch n := value.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int8:
			return float64(n), nil
		case int16:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint:
			return float64(n), nil
		case uint8:
			return float64(n), nil
		case uint16:
			return float64(n), nil
		case uint32:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		default:
			return nil, typeError("float", value)
		}
	}}
}

// Boolean returns the type accepting bool values.
func Boolean() Type {
	return &primitiveType{name: "bool", check: func(value interface{}) (interface{}, error) {
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, typeError("bool", value)
	}}
}

// Any returns the type accepting every value, nil included.
func Any() Type {
	return &primitiveType{name: "Any", check: func(value interface{}) (interface{}, error) {
		return value, nil
	}}
}

// datetimeLayouts are tried in order when parsing datetime strings.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime returns the type accepting time.Time values, timestamps in
// common string layouts (RFC 3339 first), or integer epoch seconds.
// Values normalize to time.Time.
func DateTime() Type {
	return &primitiveType{name: "datetime", check: func(value interface{}) (interface{}, error) {
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			for _, layout := range datetimeLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return t, nil
				}
			}
			return nil, fmt.Errorf("expected datetime value, %q is not a recognized timestamp", v)
		default:
			normalized, err := checkInteger("datetime")(value)
			if err != nil {
				return nil, typeError("datetime", value)
			}
			return time.Unix(normalized.(int64), 0).UTC(), nil
		}
	}}
}

// UUID returns the type accepting RFC 4122 identifiers as strings or
// uuid.UUID values, normalized to canonical lowercase string form.
func UUID() Type {
	return &primitiveType{name: "uuid", check: func(value interface{}) (interface{}, error) {
		switch v := value.(type) {
		case uuid.UUID:
			return v.String(), nil
		case string:
			parsed, err := uuid.Parse(v)
			if err != nil {
				return nil, fmt.Errorf("expected uuid value, %q is not a valid UUID", v)
			}
			return parsed.String(), nil
		default:
			return nil, typeError("uuid", value)
		}
	}}
}

// Custom creates a host-defined scalar type. The check function receives
// the raw value and returns its normalized form, or an error describing
// why the value is unacceptable.
func Custom(name string, check func(value interface{}) (interface{}, error)) Type {
	return &primitiveType{name: name, check: check}
}

func checkInteger(name string) func(value interface{}) (interface{}, error) {
	return func(value interface{}) (interface{}, error) {
		switch n := value.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint:
			return int64(n), nil
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		case uint64:
			if n > math.MaxInt64 {
				return nil, fmt.Errorf("expected %s value, %d overflows", name, n)
			}
			return int64(n), nil
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("expected %s value, got non-integral float %v", name, n)
			}
			return int64(n), nil
		case float32:
			f := float64(n)
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("expected %s value, got non-integral float %v", name, n)
			}
			return int64(f), nil
		default:
			return nil, typeError(name, value)
		}
	}
}

// ListType accepts sequences whose elements all validate against Elem.
type ListType struct {
	Elem Type
}

// NewList creates a list type over elem.
func NewList(elem Type) *ListType {
	return &ListType{Elem: elem}
}

func (t *ListType) String() string {
	return fmt.Sprintf("List[%s]", t.Elem)
}

func (t *ListType) Validate(value interface{}) (interface{}, error) {
	items, ok := toSlice(value)
	if !ok {
		return nil, typeError(t.String(), value)
	}
	out := make([]interface{}, len(items))
	for i, item := range items {
		normalized, err := t.Elem.Validate(item)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = normalized
	}
	return out, nil
}

// OptionalType accepts nil or any value valid for Elem.
type OptionalType struct {
	Elem Type
}

// NewOptional creates an optional type over elem.
func NewOptional(elem Type) *OptionalType {
	return &OptionalType{Elem: elem}
}

func (t *OptionalType) String() string {
	return fmt.Sprintf("Optional[%s]", t.Elem)
}

func (t *OptionalType) Validate(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	return t.Elem.Validate(value)
}

// UnionType accepts a value valid for any alternative. Alternatives are
// tried in declaration order and the first match wins, so a value shaped
// like two alternatives normalizes as the earlier one.
type UnionType struct {
	Alternatives []Type
}

// NewUnion creates a union over the given alternatives.
func NewUnion(alternatives ...Type) *UnionType {
	return &UnionType{Alternatives: alternatives}
}

func (t *UnionType) String() string {
	parts := make([]string, len(t.Alternatives))
	for i, alt := range t.Alternatives {
		parts[i] = alt.String()
	}
	return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
}

func (t *UnionType) Validate(value interface{}) (interface{}, error) {
	for _, alt := range t.Alternatives {
		if normalized, err := alt.Validate(value); err == nil {
			return normalized, nil
		}
	}
	return nil, typeError(t.String(), value)
}

// MapType accepts mappings whose keys and values validate against Key and
// Value. Results normalize to map[string]interface{} when every key
// normalizes to a string, and map[interface{}]interface{} otherwise.
type MapType struct {
	Key   Type
	Value Type
}

// NewMap creates a mapping type from key to value.
func NewMap(key, value Type) *MapType {
	return &MapType{Key: key, Value: value}
}

func (t *MapType) String() string {
	return fmt.Sprintf("Dict[%s, %s]", t.Key, t.Value)
}

func (t *MapType) Validate(value interface{}) (interface{}, error) {
	entries, ok := toMapEntries(value)
	if !ok {
		return nil, typeError(t.String(), value)
	}

	stringKeys := true
	for i := range entries {
		key, err := t.Key.Validate(entries[i].key)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", entries[i].key, err)
		}
		val, err := t.Value.Validate(entries[i].value)
		if err != nil {
			return nil, fmt.Errorf("value for key %v: %w", entries[i].key, err)
		}
		entries[i] = mapEntry{key: key, value: val}
		if _, isString := key.(string); !isString {
			stringKeys = false
		}
	}

	if stringKeys {
		out := make(map[string]interface{}, len(entries))
		for _, e := range entries {
			out[e.key.(string)] = e.value
		}
		return out, nil
	}
	out := make(map[interface{}]interface{}, len(entries))
	for _, e := range entries {
		out[e.key] = e.value
	}
	return out, nil
}

type mapEntry struct {
	key   interface{}
	value interface{}
}

// toSlice widens the common concrete slice shapes into []interface{}
// without reflection. An unrecognized slice type fails validation and the
// caller should pass []interface{} instead.
func toSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []*Instance:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []string:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []int:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []int64:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []bool:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// toMapEntries widens the common concrete map shapes into key/value pairs.
// map[interface{}]interface{} appears when documents pass through YAML
// libraries that decode untyped keys.
func toMapEntries(value interface{}) ([]mapEntry, bool) {
	switch m := value.(type) {
	case map[string]interface{}:
		out := make([]mapEntry, 0, len(m))
		for k, v := range m {
			out = append(out, mapEntry{key: k, value: v})
		}
		return out, true
	case map[interface{}]interface{}:
		out := make([]mapEntry, 0, len(m))
		for k, v := range m {
			out = append(out, mapEntry{key: k, value: v})
		}
		return out, true
	case map[string]string:
		out := make([]mapEntry, 0, len(m))
		for k, v := range m {
			out = append(out, mapEntry{key: k, value: v})
		}
		return out, true
	case map[string]int:
		out := make([]mapEntry, 0, len(m))
		for k, v := range m {
			out = append(out, mapEntry{key: k, value: v})
		}
		return out, true
	case map[string]float64:
		out := make([]mapEntry, 0, len(m))
		for k, v := range m {
			out = append(out, mapEntry{key: k, value: v})
		}
		return out, true
	case map[string]bool:
		out := make([]mapEntry, 0, len(m))
		for k, v := range m {
			out = append(out, mapEntry{key: k, value: v})
		}
		return out, true
	default:
		return nil, false
	}
}

func typeError(want string, got interface{}) error {
	if got == nil {
		return fmt.Errorf("expected %s value, got nil", want)
	}
	return fmt.Errorf("expected %s value, got %T", want, got)
}
