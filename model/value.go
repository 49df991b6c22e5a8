package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind is the tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is a property value: a string, number, bool, list of values or
// string-keyed map of values. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func Int(n int) Value {
	return Value{kind: KindNumber, num: float64(n)}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func List(items ...Value) Value {
	l := make([]Value, len(items))
	copy(l, items)
	return Value{kind: KindList, list: l}
}

func StringList(items ...string) Value {
	l := make([]Value, len(items))
	for i, s := range items {
		l[i] = String(s)
	}
	return Value{kind: KindList, list: l}
}

func Map(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Value{kind: KindMap, m: m}
}

// ValueOf converts decoded JSON or YAML data into a Value.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t.Clone(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return finiteNumber(t)
	case float32:
		return finiteNumber(float64(t))
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return finiteNumber(n)
	case []string:
		return StringList(t...), nil
	case []any:
		l := make([]Value, len(t))
		for i, item := range t {
			iv, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			l[i] = iv
		}
		return Value{kind: KindList, list: l}, nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			iv, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = iv
		}
		return Value{kind: KindMap, m: m}, nil
	case map[any]any:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			iv, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			m[key] = iv
		}
		return Value{kind: KindMap, m: m}, nil
	}

	// typed slices and string-keyed maps such as []map[string]string
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		l := make([]Value, rv.Len())
		for i := range l {
			iv, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			l[i] = iv
		}
		return Value{kind: KindList, list: l}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			iv, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
			m[iter.Key().String()] = iv
		}
		return Value{kind: KindMap, m: m}, nil
	}

	return Value{}, fmt.Errorf("unsupported value type %T", v)
}

func finiteNumber(n float64) (Value, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}, fmt.Errorf("number %v is not finite", n)
	}
	return Number(n), nil
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsList returns the items of a list value. The slice is shared.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the fields of a map value. The map is shared.
func (v Value) AsMap() (map[string]Value, bool) { return v.m, v.kind == KindMap }

// IsInteger reports whether v is a finite number without fraction.
func (v Value) IsInteger() bool {
	return v.kind == KindNumber && !math.IsInf(v.num, 0) && v.num == math.Trunc(v.num)
}

// Finite reports whether every number in v, nested ones included, is
// neither NaN nor infinite.
func (v Value) Finite() bool {
	switch v.kind {
	case KindNumber:
		return !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
	case KindList:
		for _, item := range v.list {
			if !item.Finite() {
				return false
			}
		}
	case KindMap:
		for _, item := range v.m {
			if !item.Finite() {
				return false
			}
		}
	}
	return true
}

// Equal is deep structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, item := range v.m {
			other, ok := o.m[k]
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	}
	return true
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		l := make([]Value, len(v.list))
		for i, item := range v.list {
			l[i] = item.Clone()
		}
		return Value{kind: KindList, list: l}
	case KindMap:
		m := make(map[string]Value, len(v.m))
		for k, item := range v.m {
			m[k] = item.Clone()
		}
		return Value{kind: KindMap, m: m}
	}
	return v
}

// Native converts v back to plain Go data (string, float64, bool, []any,
// map[string]any or nil).
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		l := make([]any, len(v.list))
		for i, item := range v.list {
			l[i] = item.Native()
		}
		return l
	case KindMap:
		m := make(map[string]any, len(v.m))
		for k, item := range v.m {
			m[k] = item.Native()
		}
		return m
	}
	return nil
}

// String renders v for humans: strings unquoted, lists comma separated.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.m[k].String()
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("number %v has no json form", v.num)
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		if v.m == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.m)
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
