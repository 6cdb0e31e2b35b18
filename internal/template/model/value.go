package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	// KindString is a string value.
	KindString ValueKind = iota
	// KindInteger is an int64 value.
	KindInteger
	// KindFloat is a float64 value.
	KindFloat
	// KindBoolean is a bool value.
	KindBoolean
	// KindArray is a sequence of values.
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a parameter value. The set of implementations is closed:
// StringValue, IntegerValue, FloatValue, BooleanValue and ArrayValue.
type Value interface {
	// Kind returns the variant of the value.
	Kind() ValueKind
	// Interface returns the plain Go value.
	Interface() any
	// String returns the value formatted for display and prompts.
	String() string

	sealed()
}

// StringValue is a string parameter value.
type StringValue string

// IntegerValue is an integer parameter value.
type IntegerValue int64

// FloatValue is a floating-point parameter value.
type FloatValue float64

// BooleanValue is a boolean parameter value.
type BooleanValue bool

// ArrayValue is a sequence of parameter values.
type ArrayValue []Value

func (StringValue) Kind() ValueKind  { return KindString }
func (IntegerValue) Kind() ValueKind { return KindInteger }
func (FloatValue) Kind() ValueKind   { return KindFloat }
func (BooleanValue) Kind() ValueKind { return KindBoolean }
func (ArrayValue) Kind() ValueKind   { return KindArray }

func (v StringValue) Interface() any  { return string(v) }
func (v IntegerValue) Interface() any { return int64(v) }
func (v FloatValue) Interface() any   { return float64(v) }
func (v BooleanValue) Interface() any { return bool(v) }

func (v ArrayValue) Interface() any {
	out := make([]any, len(v))
	for i, item := range v {
		out[i] = item.Interface()
	}
	return out
}

func (v StringValue) String() string  { return string(v) }
func (v IntegerValue) String() string { return strconv.FormatInt(int64(v), 10) }
func (v FloatValue) String() string   { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v BooleanValue) String() string { return strconv.FormatBool(bool(v)) }

func (v ArrayValue) String() string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (StringValue) sealed()  {}
func (IntegerValue) sealed() {}
func (FloatValue) sealed()   {}
func (BooleanValue) sealed() {}
func (ArrayValue) sealed()   {}

// binding returns the template binding of v. Strings and integers are
// bound as plain Go values. Booleans and floats keep their String method so
// they print as "true" and "0.25"; arrays stay iterable and print as
// "[a, b]".
func binding(v Value) any {
	switch v := v.(type) {
	case StringValue:
		return string(v)
	case IntegerValue:
		return int64(v)
	case ArrayValue:
		out := make(listBinding, len(v))
		for i, item := range v {
			out[i] = binding(item)
		}
		return out
	default:
		return v
	}
}

// listBinding is the template binding of an ArrayValue.
type listBinding []any

func (l listBinding) String() string {
	parts := make([]string, len(l))
	for i, item := range l {
		parts[i] = fmt.Sprint(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ValueFrom converts a decoded TOML/YAML scalar or array into a Value.
// Tables, nil and other kinds are rejected.
func ValueFrom(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case string:
		return StringValue(v), nil
	case bool:
		return BooleanValue(v), nil
	case int:
		return IntegerValue(v), nil
	case int8:
		return IntegerValue(v), nil
	case int16:
		return IntegerValue(v), nil
	case int32:
		return IntegerValue(v), nil
	case int64:
		return IntegerValue(v), nil
	case uint8:
		return IntegerValue(v), nil
	case uint16:
		return IntegerValue(v), nil
	case uint32:
		return IntegerValue(v), nil
	case uint64:
		if v > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", v)
		}
		return IntegerValue(v), nil
	case float32:
		return FloatValue(v), nil
	case float64:
		return FloatValue(v), nil
	case []any:
		out := make(ArrayValue, 0, len(v))
		for i, item := range v {
			converted, err := ValueFrom(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, converted)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("missing value")
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Equal reports whether two values hold the same variant and content.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() != KindArray {
		return a == b
	}
	av, bv := a.(ArrayValue), b.(ArrayValue)
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if !Equal(av[i], bv[i]) {
			return false
		}
	}
	return true
}
