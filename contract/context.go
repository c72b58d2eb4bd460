package contract

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/value"
)

// DecodeContext reads a JSON object from r and converts it into the
// Environment an execution seeds its Env from, per spec.md §6's mapping:
// JSON number -> Int (truncating; non-integer is an error), JSON string
// -> String, or Date if the contract declares that field "date" and the
// string parses as ISO-8601, JSON boolean -> Bool, JSON array -> List,
// JSON object -> Object, JSON null -> error.
//
// Only the top-level keys present in c.Inputs are converted; a context
// document may supply keys the contract doesn't declare (ignored) but
// every declared input must be present, since the checker assumes the
// seeded environment is total over its inputs.
func DecodeContext(c Contract, r io.Reader) (map[string]value.Value, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("contract: reading context: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("contract: context is not a JSON object: %w", err)
	}

	names := maps.Keys(c.Inputs)
	sort.Strings(names)
	env := make(map[string]value.Value, len(names))
	for _, name := range names {
		wantType := c.Inputs[name]
		fieldRaw, present := fields[name]
		if !present {
			return nil, fmt.Errorf("contract: context is missing declared input %q", name)
		}
		v, err := decodeValue(fieldRaw, wantType)
		if err != nil {
			return nil, fmt.Errorf("contract: input %q: %w", name, err)
		}
		env[name] = v
	}
	return env, nil
}

// decodeValue converts one JSON field into a Value, guided by the
// contract's declared type for it (needed to distinguish a "date" string
// from a plain "string", since JSON itself carries no such distinction).
func decodeValue(raw json.RawMessage, want ast.Type) (value.Value, error) {
	var asAny any
	if err := json.Unmarshal(raw, &asAny); err != nil {
		return value.Value{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if asAny == nil {
		return value.Value{}, fmt.Errorf("null is not a value in the type system")
	}

	switch v := asAny.(type) {
	case float64:
		if v != float64(int64(v)) {
			return value.Value{}, fmt.Errorf("expected integer, got non-integer number %v", v)
		}
		return value.NewInt(int64(v)), nil

	case string:
		if want.Kind == ast.Date {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return value.Value{}, fmt.Errorf("invalid ISO-8601 date %q: %w", v, err)
			}
			return value.NewDate(t), nil
		}
		return value.NewString(v), nil

	case bool:
		return value.NewBool(v), nil

	case []any:
		elemType := ast.Prim(ast.Unknown)
		if want.Kind == ast.ListKind && want.Elem != nil {
			elemType = *want.Elem
		}
		elems := make([]value.Value, len(v))
		for i, el := range v {
			encoded, err := json.Marshal(el)
			if err != nil {
				return value.Value{}, err
			}
			ev, err := decodeValue(encoded, elemType)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = ev
		}
		return value.NewList(elems...), nil

	case map[string]any:
		keys := maps.Keys(v)
		sort.Strings(keys)
		fields := make([]value.Field, 0, len(keys))
		for _, key := range keys {
			fieldType, _ := want.Property(key)
			encoded, err := json.Marshal(v[key])
			if err != nil {
				return value.Value{}, err
			}
			fv, err := decodeValue(encoded, fieldType)
			if err != nil {
				return value.Value{}, fmt.Errorf("field %q: %w", key, err)
			}
			fields = append(fields, value.Field{Name: key, Value: fv})
		}
		return value.NewObject(fields...), nil
	}
	return value.Value{}, fmt.Errorf("unsupported JSON value %v", asAny)
}
