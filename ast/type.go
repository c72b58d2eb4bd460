// Package ast defines Axiom's syntax tree and its static type system. The
// Type union here is shared by the type checker and the interpreter, the
// same way the teacher's types2 package centralizes its Base/Tuple/Field
// union for both the resolver and the inferencer to share.
package ast

import (
	"fmt"
	"strings"
)

// Kind discriminates the tagged union of Type.
type Kind int

const (
	Unknown Kind = iota
	Int
	String
	Bool
	Date
	ListKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Int:
		return "int"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case ListKind:
		return "list"
	case ObjectKind:
		return "object"
	default:
		return "?"
	}
}

// Field is one property of an Object type. Fields are kept in an ordered
// slice, not a map, because spec.md requires object property order to be
// observable (it mirrors source order into Value.Object iteration). This
// is the same shape as the teacher's types2.Tuple{Fields []Field}.
type Field struct {
	Name string
	Type Type
}

// Type is Axiom's tagged-union type representation: a primitive (Int,
// String, Bool, Date, Unknown), a List of an element Type, or an Object
// with ordered Fields.
type Type struct {
	Kind   Kind
	Elem   *Type   // non-nil iff Kind == ListKind
	Fields []Field // non-empty only if Kind == ObjectKind
}

func Prim(k Kind) Type { return Type{Kind: k} }

func ListOf(elem Type) Type { return Type{Kind: ListKind, Elem: &elem} }

func ObjectOf(fields ...Field) Type { return Type{Kind: ObjectKind, Fields: fields} }

// Property looks up a field by name, preserving the "does this key exist"
// question the checker needs for Member and has().
func (t Type) Property(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Type{}, false
}

// Unifies is structural type equality with Unknown acting as a wildcard on
// either side, per spec.md §3 invariant 7 and the `~` notation in §4.3.
func (t Type) Unifies(other Type) bool {
	if t.Kind == Unknown || other.Kind == Unknown {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ListKind:
		return t.Elem.Unifies(*other.Elem)
	case ObjectKind:
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for _, f := range t.Fields {
			of, ok := other.Property(f.Name)
			if !ok || !f.Type.Unifies(of) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ConformsToOutput checks t against a declared output target, honoring
// spec.md §4.3's permissive rule: a target Object with zero declared
// properties unifies with any object. It reports the first mismatching
// property key for object targets, so the checker can produce a precise
// "Return type mismatch" message.
func (t Type) ConformsToOutput(target Type) (ok bool, mismatchKey string) {
	if target.Kind == ObjectKind && len(target.Fields) == 0 {
		return t.Kind == ObjectKind || t.Kind == Unknown, ""
	}
	if target.Kind == ObjectKind && t.Kind == ObjectKind {
		for _, tf := range target.Fields {
			af, ok := t.Property(tf.Name)
			if !ok || !af.ConformsToOutputBool(tf.Type) {
				return false, tf.Name
			}
		}
		return true, ""
	}
	return t.Unifies(target), ""
}

// ConformsToOutputBool is the boolean-only form used recursively for
// nested object fields, where there is no single mismatching key to thread
// back up (the parent already knows which field it is checking).
func (t Type) ConformsToOutputBool(target Type) bool {
	ok, _ := t.ConformsToOutput(target)
	return ok
}

func (t Type) String() string {
	switch t.Kind {
	case ListKind:
		return t.Elem.String() + "[]"
	case ObjectKind:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return t.Kind.String()
	}
}
