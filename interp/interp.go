// Package interp is Axiom's tree-walking interpreter, per spec.md §4.4.
// The teacher (smasher164/gflat) never executes its own ASTs — it stops
// at codegen — so this package has no direct teacher file to adapt; its
// switch-on-node-kind dispatch style follows the same shape as the
// teacher's types2.Checker.infer and codegen.Codegen.gen traversals, and
// its macro/has() semantics are cross-checked against the dispatch shape
// of daios-ai-msg/interpreter.go (a complete, if teacher-ineligible,
// tree-walking interpreter in the retrieval pack).
package interp

import (
	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/value"
)

// Execute evaluates stmts left-to-right against ctx and returns the value
// of the most recently executed ExprStmt, or Null if none ran, per
// spec.md §4.4.
func Execute(stmts []ast.Stmt, ctx map[string]value.Value) (value.Value, error) {
	env := NewEnv()
	for name, v := range ctx {
		env.Declare(name, v)
	}
	last := value.NewNull()
	for _, stmt := range stmts {
		next, err := execStmt(env, stmt, last)
		if err != nil {
			return value.Value{}, err
		}
		last = next
	}
	return last, nil
}

// execStmt executes one statement and returns the updated "last value"
// spec.md §4.4 threads through ExprStmt evaluation.
func execStmt(env *Env, stmt ast.Stmt, last value.Value) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		v, err := eval(env, s.Init)
		if err != nil {
			return value.Value{}, err
		}
		env.Declare(s.Name, v)
		return last, nil

	case *ast.Assignment:
		v, err := eval(env, s.Value)
		if err != nil {
			return value.Value{}, err
		}
		env.Assign(s.Name, v)
		return last, nil

	case *ast.If:
		cond, err := eval(env, s.Cond)
		if err != nil {
			return value.Value{}, err
		}
		if cond.Kind == value.Bool && cond.B {
			return execStmt(env, s.Then, last)
		}
		if s.Else != nil {
			return execStmt(env, s.Else, last)
		}
		return last, nil

	case *ast.Block:
		child := env.AddScope()
		for _, inner := range s.Stmts {
			next, err := execStmt(child, inner, last)
			if err != nil {
				return value.Value{}, err
			}
			last = next
		}
		return last, nil

	case *ast.ExprStmt:
		return eval(env, s.X)
	}
	return value.Value{}, runtimeErrorf(TypeMismatch, "interp: unknown statement node %T", stmt)
}
