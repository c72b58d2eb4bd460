package axiom_test

import (
	"errors"
	"testing"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/axiom"
	"github.com/axiomlang/axiom/contract"
	"github.com/axiomlang/axiom/lexer"
	"github.com/axiomlang/axiom/types"
	"github.com/axiomlang/axiom/value"
)

func pricingContract() contract.Contract {
	out := ast.Prim(ast.Int)
	return contract.Contract{
		Name: "pricing",
		Inputs: map[string]ast.Type{
			"user_age":   ast.Prim(ast.Int),
			"is_vip":     ast.Prim(ast.Bool),
			"base_price": ast.Prim(ast.Int),
		},
		Outputs: &out,
	}
}

func TestCompileCheckExecutePipeline(t *testing.T) {
	src := `let d:int=0; if (is_vip){ d=50; } base_price - d`
	rule, err := axiom.Compile(src)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	checked, err := rule.Check(pricingContract())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	ctx := map[string]value.Value{
		"user_age": value.NewInt(25), "is_vip": value.NewBool(true), "base_price": value.NewInt(100),
	}
	got, err := checked.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !got.Equal(value.NewInt(50)) {
		t.Errorf("Execute = %v, want 50", got)
	}
}

// TestContractIdempotence covers spec.md §8 property 6: compile, then
// check, then execute yields the same result as the eval convenience.
func TestContractIdempotence(t *testing.T) {
	src := `1 + 2 * 3`
	c := contract.Contract{Name: "arith"}
	out := ast.Prim(ast.Int)
	c.Outputs = &out

	rule, err := axiom.Compile(src)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	checked, err := rule.Check(c)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	staged, err := checked.Execute(map[string]value.Value{})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	chained, err := axiom.Eval(src, c, map[string]value.Value{})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !staged.Equal(chained) {
		t.Errorf("staged=%v chained=%v, want equal", staged, chained)
	}
}

func TestCheckedRuleReusableAcrossExecutions(t *testing.T) {
	src := `base_price - 10`
	c := contract.Contract{Inputs: map[string]ast.Type{"base_price": ast.Prim(ast.Int)}}
	out := ast.Prim(ast.Int)
	c.Outputs = &out
	rule, err := axiom.Compile(src)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	checked, err := rule.Check(c)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	for _, price := range []int64{100, 200, 300} {
		got, err := checked.Execute(map[string]value.Value{"base_price": value.NewInt(price)})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if !got.Equal(value.NewInt(price - 10)) {
			t.Errorf("Execute(%d) = %v, want %d", price, got, price-10)
		}
	}
}

func TestNegativeScenarios(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		contract  contract.Contract
		wantLexer bool
		wantType  bool
	}{
		{
			name:     "declaration type mismatch",
			src:      `let x:int = "s";`,
			contract: contract.Contract{},
			wantType: true,
		},
		{
			name:     "undefined variable",
			src:      `let y:int = x + 1;`,
			contract: contract.Contract{},
			wantType: true,
		},
		{
			name:     "heterogeneous list",
			src:      `let x:int[] = [1, "2"];`,
			contract: contract.Contract{},
			wantType: true,
		},
		{
			name: "return type mismatch",
			src:  `1 + 1`,
			contract: func() contract.Contract {
				out := ast.Prim(ast.String)
				return contract.Contract{Outputs: &out}
			}(),
			wantType: true,
		},
		{
			name: "unknown property",
			src:  `user.unknown_prop`,
			contract: contract.Contract{
				Inputs: map[string]ast.Type{"user": ast.ObjectOf(ast.Field{Name: "name", Type: ast.Prim(ast.String)})},
			},
			wantType: true,
		},
		{
			name: "empty source with required output",
			src:  ``,
			contract: func() contract.Contract {
				out := ast.Prim(ast.Int)
				return contract.Contract{Outputs: &out}
			}(),
			wantType: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := axiom.Compile(tc.src)
			if err != nil {
				if !tc.wantLexer {
					t.Fatalf("Compile returned unexpected error: %v", err)
				}
				var syn *lexer.SyntaxError
				if !errors.As(err, &syn) {
					t.Fatalf("got err=%v, want *lexer.SyntaxError", err)
				}
				return
			}
			_, err = rule.Check(tc.contract)
			if tc.wantType {
				var te *types.TypeError
				if !errors.As(err, &te) {
					t.Fatalf("got err=%v, want *types.TypeError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Check returned unexpected error: %v", err)
			}
		})
	}
}

func TestDiagnostic(t *testing.T) {
	rule, err := axiom.Compile(`let x:int = "s";`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	_, checkErr := rule.Check(contract.Contract{})
	d := axiom.ToDiagnostic(checkErr, "rule.ax")
	if d.Kind != "Type" {
		t.Errorf("Kind = %q, want Type", d.Kind)
	}
	if d.Filename != "rule.ax" {
		t.Errorf("Filename = %q, want rule.ax", d.Filename)
	}
}
