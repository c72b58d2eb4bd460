package interp

import "github.com/axiomlang/axiom/value"

// Env is the interpreter's value-binding counterpart to types.Env: a
// parent-pointer scope chain, pushed on Block entry and popped on exit,
// so that a declaration inside an if-block does not leak into the
// surrounding scope at runtime either — matching the checker's scoping
// so that a program the checker accepts cannot diverge from it at
// execution time. Adapted from the same types2.Env chain the checker's
// Env is grounded on (types2/env.go), specialized to runtime values.
type Env struct {
	parent *Env
	vars   map[string]value.Value
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]value.Value)}
}

func (e *Env) AddScope() *Env {
	return &Env{parent: e, vars: make(map[string]value.Value)}
}

func (e *Env) Declare(name string, v value.Value) {
	e.vars[name] = v
}

func (e *Env) LookupStack(name string) (value.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Assign rebinds name at whichever scope in the chain already owns it,
// per spec.md §4.4's "Assignment ... overwrite" semantics.
func (e *Env) Assign(name string, v value.Value) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return true
		}
	}
	return false
}
