package jsonvalue

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is any JSON value in the model described in the package doc.
type Value = any

// Kind classifies a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"invalid", "null", "boolean", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// KindOf returns the kind of v.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, float64, float32, int, int64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case *Object, map[string]any:
		return KindObject
	}
	return KindInvalid
}

// IsObject reports whether v is a plain JSON object. Arrays and null are not.
func IsObject(v Value) bool {
	o, ok := v.(*Object)
	return ok && o != nil
}

// IsContainer reports whether v is an object or an array.
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Object, []any:
		return true
	}
	return false
}

// Object is a JSON object that remembers key insertion order.
// The zero value is not usable; create objects with [NewObject].
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the member names in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the member k.
func (o *Object) Get(k string) (Value, bool) {
	v, ok := o.vals[k]
	return v, ok
}

// Has reports whether k is a member.
func (o *Object) Has(k string) bool {
	_, ok := o.vals[k]
	return ok
}

// Set assigns k. A new key is appended; an existing key keeps its position.
func (o *Object) Set(k string, v Value) {
	if _, ok := o.vals[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.vals[k] = v
}

// Delete removes k if present.
func (o *Object) Delete(k string) {
	if _, ok := o.vals[k]; !ok {
		return
	}
	delete(o.vals, k)
	for i, key := range o.keys {
		if key == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Copy returns a shallow copy: same member values, independent key set.
func (o *Object) Copy() *Object {
	c := &Object{
		keys: append([]string(nil), o.keys...),
		vals: make(map[string]Value, len(o.vals)),
	}
	for k, v := range o.vals {
		c.vals[k] = v
	}
	return c
}

// MarshalJSON writes the object compactly in key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return MarshalCompact(o)
}

// Clone returns a deep copy of v. Scalars are returned as-is.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return t
		}
		c := &Object{
			keys: append([]string(nil), t.keys...),
			vals: make(map[string]Value, len(t.vals)),
		}
		for k, val := range t.vals {
			c.vals[k] = Clone(val)
		}
		return c
	case []any:
		c := make([]any, len(t))
		for i, el := range t {
			c[i] = Clone(el)
		}
		return c
	}
	return v
}

// Equal reports whether a and b are the same JSON value. Object member order
// is ignored and numbers compare by value.
func Equal(a, b Value) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindNumber:
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		return okA && okB && fa == fb
	case KindArray:
		aa, ba := a.([]any), b.([]any)
		if len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ba[i]) {
				return false
			}
		}
		return true
	case KindObject:
		oa, ob := asObject(a), asObject(b)
		if oa.Len() != ob.Len() {
			return false
		}
		for _, k := range oa.keys {
			bv, ok := ob.vals[k]
			if !ok || !Equal(oa.vals[k], bv) {
				return false
			}
		}
		return true
	case KindInvalid:
		return false
	}
	return a == b
}

func asObject(v Value) *Object {
	switch t := v.(type) {
	case *Object:
		return t
	case map[string]any:
		o := NewObject()
		for _, k := range sortedKeys(t) {
			o.Set(k, t[k])
		}
		return o
	}
	return NewObject()
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Float returns the numeric value of v. ok is false for non-numbers.
func Float(v Value) (f float64, ok bool) { return toFloat(v) }

// Number returns v as a json.Number in canonical form.
func Number(f float64) json.Number {
	return json.Number(FormatNumber(f))
}

// FormatNumber prints f the way JavaScript's Number#toString does: plain
// decimal between 1e-6 and 1e21, exponent form outside, "0" for negative zero.
// Non-finite values print as "null".
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
