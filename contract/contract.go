// Package contract decodes the JSON Contract document spec.md §6
// describes into Axiom's in-memory Type representation, and a JSON
// context document into runtime Values. Loading a contract from disk and
// resolving "./file.json" references is an external, out-of-core concern
// per spec.md §1; Decode takes an already-read JSON byte slice and
// DecodeContext reads a context document from an io.Reader.
package contract

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/axiomlang/axiom/ast"
)

// Contract is the typed interface a rule is checked against, per
// spec.md §3: input names/types and an optional output type.
type Contract struct {
	Name    string
	Inputs  map[string]ast.Type
	Outputs *ast.Type
}

// InputNames returns the contract's input names in sorted order, via
// golang.org/x/exp/maps + sort, for deterministic diagnostics — the same
// determinism the teacher's parser.go buys by routing identifier sets
// through maps.Keys before acting on them.
func (c Contract) InputNames() []string {
	names := maps.Keys(c.Inputs)
	sort.Strings(names)
	return names
}

type jsonContract struct {
	Name    string                     `json:"name"`
	Inputs  map[string]json.RawMessage `json:"inputs"`
	Outputs json.RawMessage            `json:"outputs"`
}

// Decode parses a Contract JSON document per spec.md §6's shape:
//
//	{ "name": <string>, "inputs": {<ident>: <TypeSpec>, ...}, "outputs": <TypeSpec>|null }
func Decode(raw []byte) (Contract, error) {
	var jc jsonContract
	if err := json.Unmarshal(raw, &jc); err != nil {
		return Contract{}, fmt.Errorf("contract: invalid JSON: %w", err)
	}
	inputs := make(map[string]ast.Type, len(jc.Inputs))
	names := maps.Keys(jc.Inputs)
	sort.Strings(names)
	for _, name := range names {
		t, err := decodeTypeSpec(jc.Inputs[name])
		if err != nil {
			return Contract{}, fmt.Errorf("contract: input %q: %w", name, err)
		}
		inputs[name] = t
	}
	var outputs *ast.Type
	if len(jc.Outputs) > 0 && string(jc.Outputs) != "null" {
		t, err := decodeTypeSpec(jc.Outputs)
		if err != nil {
			return Contract{}, fmt.Errorf("contract: outputs: %w", err)
		}
		outputs = &t
	}
	return Contract{Name: jc.Name, Inputs: inputs, Outputs: outputs}, nil
}

var primitiveNames = map[string]ast.Kind{
	"int": ast.Int, "string": ast.String, "bool": ast.Bool, "date": ast.Date,
}

// decodeTypeSpec decodes one TypeSpec per spec.md §6:
//   - "int"|"string"|"bool"|"date"
//   - "<primitive>[]"          — list of that primitive
//   - [ TypeSpec ]             — list of the given shape
//   - { "<key>": TypeSpec, ... } — inline object shape
func decodeTypeSpec(raw json.RawMessage) (ast.Type, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if kind, ok := primitiveNames[asString]; ok {
			return ast.Prim(kind), nil
		}
		if len(asString) > 2 && asString[len(asString)-2:] == "[]" {
			base := asString[:len(asString)-2]
			kind, ok := primitiveNames[base]
			if !ok {
				return ast.Type{}, fmt.Errorf("unknown primitive %q in list TypeSpec %q", base, asString)
			}
			return ast.ListOf(ast.Prim(kind)), nil
		}
		return ast.Type{}, fmt.Errorf("unknown TypeSpec %q", asString)
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw, &asArray); err == nil {
		if len(asArray) != 1 {
			return ast.Type{}, fmt.Errorf("list TypeSpec must have exactly one element shape, got %d", len(asArray))
		}
		elem, err := decodeTypeSpec(asArray[0])
		if err != nil {
			return ast.Type{}, err
		}
		return ast.ListOf(elem), nil
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err == nil {
		// encoding/json does not preserve object key order when decoding
		// into a map; field order is normalized to a sorted order for
		// determinism rather than left to map-iteration randomness.
		keys := maps.Keys(asObject)
		sort.Strings(keys)
		fields := make([]ast.Field, 0, len(keys))
		for _, key := range keys {
			ft, err := decodeTypeSpec(asObject[key])
			if err != nil {
				return ast.Type{}, fmt.Errorf("field %q: %w", key, err)
			}
			fields = append(fields, ast.Field{Name: key, Type: ft})
		}
		return ast.ObjectOf(fields...), nil
	}

	return ast.Type{}, fmt.Errorf("invalid TypeSpec: %s", string(raw))
}
