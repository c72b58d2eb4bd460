// Package value defines Axiom's runtime Value union (spec.md §3) and its
// JSON boundary conversions (spec.md §6). It is deliberately independent
// of both ast (the static type system) and the interpreter, so that the
// contract package — which needs to decode JSON context data into Values
// before execution even begins — does not have to import the
// interpreter to do so.
package value

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/maps"
)

// Kind discriminates the Value tagged union.
type Kind int

const (
	Null Kind = iota
	Int
	String
	Bool
	Date
	List
	Object
)

// Value is Axiom's immutable runtime value. Exactly one of the typed
// fields is meaningful, selected by Kind; this mirrors the teacher's
// preference for a single sum type per concern (types2.Type) over a
// Go interface{} grab-bag, adapted here from static types to runtime
// values.
type Value struct {
	Kind Kind
	I    int64
	S    string
	B    bool
	T    time.Time
	Elems  []Value
	Fields []Field // ordered, per spec.md §3's Object invariant
}

// Field is one ordered property of an Object value.
type Field struct {
	Name  string
	Value Value
}

func NewInt(i int64) Value    { return Value{Kind: Int, I: i} }
func NewString(s string) Value { return Value{Kind: String, S: s} }
func NewBool(b bool) Value    { return Value{Kind: Bool, B: b} }
func NewDate(t time.Time) Value { return Value{Kind: Date, T: t} }
func NewList(elems ...Value) Value { return Value{Kind: List, Elems: elems} }
func NewObject(fields ...Field) Value { return Value{Kind: Object, Fields: fields} }
func NewNull() Value { return Value{Kind: Null} }

// Property looks up an Object field by name, preserving source order for
// iteration elsewhere but giving O(n) lookup here — objects in rule
// contexts are small, so this mirrors ast.Type.Property's same tradeoff.
func (v Value) Property(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Equal implements spec.md §4.4's "deep structural equality on the
// tagged union" for ==/!= and `in`.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Int:
		return v.I == other.I
	case String:
		return v.S == other.S
	case Bool:
		return v.B == other.B
	case Date:
		return v.T.Equal(other.T)
	case List:
		if len(v.Elems) != len(other.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.Fields) != len(other.Fields) {
			return false
		}
		for _, f := range v.Fields {
			of, ok := other.Property(f.Name)
			if !ok || !f.Value.Equal(of) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Int:
		return fmt.Sprintf("%d", v.I)
	case String:
		return v.S
	case Bool:
		return fmt.Sprintf("%t", v.B)
	case Date:
		return v.T.Format(time.RFC3339)
	case List:
		return fmt.Sprintf("%v", v.Elems)
	case Object:
		return fmt.Sprintf("%v", v.Fields)
	default:
		return "?"
	}
}

// ToJSON converts v to a plain Go value suitable for encoding/json.Marshal,
// the reverse of the mapping spec.md §6 specifies for context decoding.
func (v Value) ToJSON() (any, error) {
	switch v.Kind {
	case Null:
		return nil, nil
	case Int:
		return v.I, nil
	case String:
		return v.S, nil
	case Bool:
		return v.B, nil
	case Date:
		return v.T.Format(time.RFC3339), nil
	case List:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			j, err := e.ToJSON()
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return out, nil
	case Object:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			j, err := f.Value.ToJSON()
			if err != nil {
				return nil, err
			}
			out[f.Name] = j
		}
		return out, nil
	}
	return nil, fmt.Errorf("value: unknown kind %d", v.Kind)
}

// SortedObjectKeys returns an Object value's field names in sorted order,
// via golang.org/x/exp/maps, for deterministic diagnostics (e.g. listing
// available properties in an error message) without depending on Fields'
// source order.
func SortedObjectKeys(v Value) []string {
	if v.Kind != Object {
		return nil
	}
	m := make(map[string]struct{}, len(v.Fields))
	for _, f := range v.Fields {
		m[f.Name] = struct{}{}
	}
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
