// Package types implements Axiom's type checker, per spec.md §4.3. Its
// Env is a parent-pointer scope chain adapted from the teacher's
// types2.Env (types2/env.go): AddScope pushes a child frame on block
// entry, LookupStack walks outward to the root. spec.md §9 calls this
// out explicitly as the intended redesign over the original's single
// flat, leaking environment.
package types

import "github.com/axiomlang/axiom/ast"

// Env is one lexical scope frame of type bindings.
type Env struct {
	parent *Env
	vars   map[string]ast.Type
}

// NewEnv creates a root environment with no parent.
func NewEnv() *Env {
	return &Env{vars: make(map[string]ast.Type)}
}

// AddScope pushes a new child scope, the way types2.Env.AddScope does.
func (e *Env) AddScope() *Env {
	return &Env{parent: e, vars: make(map[string]ast.Type)}
}

// Declare binds name in this scope only. The caller is responsible for
// first checking LookupStack to enforce spec.md §3 invariant 1 (no
// shadowing re-declaration within the same visible chain).
func (e *Env) Declare(name string, t ast.Type) {
	e.vars[name] = t
}

// LookupLocal looks up name in this scope only, without consulting parents.
func (e *Env) LookupLocal(name string) (ast.Type, bool) {
	t, ok := e.vars[name]
	return t, ok
}

// LookupStack walks outward through parent scopes until name is found.
func (e *Env) LookupStack(name string) (ast.Type, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return ast.Type{}, false
}

// Assign rebinds an already-declared name at whichever scope in the chain
// owns it, matching spec.md §3 invariant 2 (assignment targets an
// already-bound name) and §4.4's "Assignment ... overwrite" semantics
// without introducing a new binding in the current (possibly nested)
// scope.
func (e *Env) Assign(name string, t ast.Type) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = t
			return true
		}
	}
	return false
}
