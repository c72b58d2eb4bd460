package contract_test

import (
	"testing"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/contract"
)

func TestDecodeBasicContract(t *testing.T) {
	raw := []byte(`{
		"name": "pricing",
		"inputs": {
			"user_age": "int",
			"is_vip": "bool",
			"base_price": "int",
			"tags": "string[]",
			"user": {"name": "string", "address": {"city": "string"}}
		},
		"outputs": "int"
	}`)
	c, err := contract.Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if c.Name != "pricing" {
		t.Errorf("Name = %q, want pricing", c.Name)
	}
	if c.Inputs["user_age"].Kind != ast.Int {
		t.Errorf("user_age kind = %v, want Int", c.Inputs["user_age"].Kind)
	}
	if c.Inputs["tags"].Kind != ast.ListKind || c.Inputs["tags"].Elem.Kind != ast.String {
		t.Errorf("tags = %v, want list of string", c.Inputs["tags"])
	}
	userType := c.Inputs["user"]
	if userType.Kind != ast.ObjectKind {
		t.Fatalf("user kind = %v, want Object", userType.Kind)
	}
	cityType, ok := userType.Property("address")
	if !ok || cityType.Kind != ast.ObjectKind {
		t.Fatalf("user.address not found or not an object")
	}
	if c.Outputs == nil || c.Outputs.Kind != ast.Int {
		t.Fatalf("Outputs = %v, want int", c.Outputs)
	}
}

func TestDecodeListOfShapeForm(t *testing.T) {
	raw := []byte(`{"name":"r","inputs":{"rows":[{"id":"int"}]},"outputs":null}`)
	c, err := contract.Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if c.Outputs != nil {
		t.Errorf("Outputs = %v, want nil", c.Outputs)
	}
	rows := c.Inputs["rows"]
	if rows.Kind != ast.ListKind || rows.Elem.Kind != ast.ObjectKind {
		t.Fatalf("rows = %v, want list of object", rows)
	}
}

func TestDecodeRejectsUnknownTypeSpec(t *testing.T) {
	raw := []byte(`{"name":"r","inputs":{"x":"float"},"outputs":null}`)
	if _, err := contract.Decode(raw); err == nil {
		t.Fatal("Decode succeeded, want error for unknown primitive")
	}
}
