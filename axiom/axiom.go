// Package axiom is the public facade over Axiom's pipeline — lexer,
// parser, type checker, interpreter — exposing the three core operations
// spec.md §2 names (compile, check, execute) plus the eval convenience
// that chains them. It holds no state of its own beyond what Compile and
// Check return; every exported type here is immutable once constructed,
// matching spec.md §5's sharing model.
package axiom

import (
	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/contract"
	"github.com/axiomlang/axiom/interp"
	"github.com/axiomlang/axiom/parser"
	"github.com/axiomlang/axiom/types"
	"github.com/axiomlang/axiom/value"
)

// CompiledRule is a parsed rule: an immutable AST that may be checked
// against any number of contracts and, once checked, executed any
// number of times, per spec.md §2 and §5.
type CompiledRule struct {
	stmts []ast.Stmt
}

// Compile lexes and parses source into a CompiledRule, or returns a
// *lexer.SyntaxError.
func Compile(source string) (*CompiledRule, error) {
	stmts, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &CompiledRule{stmts: stmts}, nil
}

// Check type-checks the compiled rule against c, binding c.Inputs as the
// checker's seeded environment and, if c.Outputs is set, validating the
// rule's final expression against it. On success it returns a
// CheckedRule bound to c, safe to Execute concurrently from multiple
// goroutines (it mutates nothing). On failure it returns a
// *types.TypeError.
func (r *CompiledRule) Check(c contract.Contract) (*CheckedRule, error) {
	if err := types.Check(r.stmts, c.Inputs, c.Outputs); err != nil {
		return nil, err
	}
	return &CheckedRule{stmts: r.stmts}, nil
}

// CheckedRule is a rule that has already passed type-checking against
// some contract. It carries no reference back to that contract: Execute
// trusts the caller to supply a context that conforms to it, the same
// way spec.md §4.4's interpreter contract takes context data on faith
// once given a verified AST.
type CheckedRule struct {
	stmts []ast.Stmt
}

// Execute runs the checked rule against ctx and returns the value of its
// final ExprStmt (or Null), per spec.md §4.4. It may be called any
// number of times, from any number of goroutines, against different
// ctx values, without interference, since each call gets a private Env.
func (r *CheckedRule) Execute(ctx map[string]value.Value) (value.Value, error) {
	return interp.Execute(r.stmts, ctx)
}

// Eval chains compile, check, and execute in one call, per spec.md §2's
// "convenience eval". It performs no extra work beyond that composition.
func Eval(source string, c contract.Contract, ctx map[string]value.Value) (value.Value, error) {
	compiled, err := Compile(source)
	if err != nil {
		return value.Value{}, err
	}
	checked, err := compiled.Check(c)
	if err != nil {
		return value.Value{}, err
	}
	return checked.Execute(ctx)
}
