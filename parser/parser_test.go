package parser_test

import (
	"reflect"
	"testing"

	"github.com/kr/pretty"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/parser"
)

func TestParseVarDeclAndImplicitReturn(t *testing.T) {
	src := `let d:int=0; if (true) { d=50; } d`
	got, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []ast.Stmt{
		ast.NewVarDecl(1, "d", ast.Prim(ast.Int), ast.NewIntLit(1, 0)),
		ast.NewIf(1, ast.NewBoolLit(1, true),
			ast.NewBlock(1, []ast.Stmt{ast.NewAssignment(1, "d", ast.NewIntLit(1, 50))}),
			nil),
		ast.NewExprStmt(1, ast.NewVariable(1, "d")),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("AST mismatch:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	got, err := parser.Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []ast.Stmt{
		ast.NewExprStmt(1, ast.NewBinary(1, ast.OpAdd,
			ast.NewIntLit(1, 1),
			ast.NewBinary(1, ast.OpMul, ast.NewIntLit(1, 2), ast.NewIntLit(1, 3)))),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("AST mismatch:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}
}

func TestParseMemberChain(t *testing.T) {
	got, err := parser.Parse(`user.address.city`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []ast.Stmt{
		ast.NewExprStmt(1, ast.NewMember(1,
			ast.NewMember(1, ast.NewVariable(1, "user"), "address"),
			"city")),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("AST mismatch:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}
}

func TestParseMacroCall(t *testing.T) {
	got, err := parser.Parse(`[1,2,3].exists(n, n > 2)`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []ast.Stmt{
		ast.NewExprStmt(1, ast.NewCall(1,
			ast.NewMember(1, ast.NewListLit(1, []ast.Expr{
				ast.NewIntLit(1, 1), ast.NewIntLit(1, 2), ast.NewIntLit(1, 3),
			}), "exists"),
			[]ast.Expr{ast.NewLambda(1, "n", ast.NewBinary(1, ast.OpGt, ast.NewVariable(1, "n"), ast.NewIntLit(1, 2)))},
		)),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("AST mismatch:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}
}

func TestParseObjectLiteral(t *testing.T) {
	got, err := parser.Parse(`{name: "Alice", age: 30}`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []ast.Stmt{
		ast.NewExprStmt(1, ast.NewObjectLit(1, []ast.ObjectField{
			{Name: "name", Value: ast.NewStringLit(1, "Alice")},
			{Name: "age", Value: ast.NewIntLit(1, 30)},
		})),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("AST mismatch:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`let x:int = 1`,    // missing semicolon
		`let x = 1;`,       // missing type annotation
		`if (true) 1`,      // missing parens around statement is fine, but cond must be valid expr; this is actually valid, keep as smoke test instead
	}
	// only the first two are expected to error; the third is a valid program.
	for i, src := range tests[:2] {
		if _, err := parser.Parse(src); err == nil {
			t.Errorf("case %d: Parse(%q) succeeded, want error", i, src)
		}
	}
	if _, err := parser.Parse(tests[2]); err != nil {
		t.Errorf("Parse(%q) returned unexpected error: %v", tests[2], err)
	}
}
