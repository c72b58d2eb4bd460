package interp

import (
	"errors"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/value"
)

// eval evaluates expr against env, per spec.md §4.4's expression
// semantics.
func eval(env *Env, expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return evalLiteral(e), nil

	case *ast.Variable:
		v, ok := env.LookupStack(e.Name)
		if !ok {
			return value.Value{}, runtimeErrorf(UndefinedVariable, "Undefined variable '%s'", e.Name)
		}
		return v, nil

	case *ast.Unary:
		return evalUnary(env, e)

	case *ast.Binary:
		return evalBinary(env, e)

	case *ast.Member:
		return evalMember(env, e)

	case *ast.ListLit:
		elems := make([]value.Value, len(e.Elems))
		for i, el := range e.Elems {
			v, err := eval(env, el)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewList(elems...), nil

	case *ast.ObjectLit:
		fields := make([]value.Field, len(e.Fields))
		for i, f := range e.Fields {
			v, err := eval(env, f.Value)
			if err != nil {
				return value.Value{}, err
			}
			fields[i] = value.Field{Name: f.Name, Value: v}
		}
		return value.NewObject(fields...), nil

	case *ast.Call:
		return evalCall(env, e)

	case *ast.Lambda:
		return value.Value{}, runtimeErrorf(TypeMismatch, "interp: lambda evaluated outside macro position")
	}
	return value.Value{}, runtimeErrorf(TypeMismatch, "interp: unknown expression node %T", expr)
}

func evalLiteral(e *ast.Literal) value.Value {
	switch e.Kind {
	case ast.LitInt:
		return value.NewInt(e.I)
	case ast.LitString:
		return value.NewString(e.S)
	case ast.LitBool:
		return value.NewBool(e.B)
	}
	return value.NewNull()
}

func evalUnary(env *Env, e *ast.Unary) (value.Value, error) {
	operand, err := eval(env, e.Operand)
	if err != nil {
		return value.Value{}, err
	}
	switch e.Op {
	case ast.OpNot:
		return value.NewBool(!operand.B), nil
	case ast.OpNeg:
		return value.NewInt(-operand.I), nil
	}
	return value.Value{}, runtimeErrorf(TypeMismatch, "interp: unknown unary operator %v", e.Op)
}

// evalBinary implements spec.md §4.4's arithmetic, comparison, and
// logical operators, including &&/|| short-circuiting and two's-
// complement wraparound for Int arithmetic (Go's int64 +,-,* already
// wrap on overflow per the language spec, so no extra handling is
// needed beyond trapping division by zero explicitly).
func evalBinary(env *Env, e *ast.Binary) (value.Value, error) {
	if e.Op == ast.OpAnd {
		left, err := eval(env, e.Left)
		if err != nil {
			return value.Value{}, err
		}
		if !left.B {
			return value.NewBool(false), nil
		}
		right, err := eval(env, e.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(right.B), nil
	}
	if e.Op == ast.OpOr {
		left, err := eval(env, e.Left)
		if err != nil {
			return value.Value{}, err
		}
		if left.B {
			return value.NewBool(true), nil
		}
		right, err := eval(env, e.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(right.B), nil
	}

	left, err := eval(env, e.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := eval(env, e.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch e.Op {
	case ast.OpAdd:
		if left.Kind == value.String {
			return value.NewString(left.S + right.S), nil
		}
		return value.NewInt(left.I + right.I), nil
	case ast.OpSub:
		return value.NewInt(left.I - right.I), nil
	case ast.OpMul:
		return value.NewInt(left.I * right.I), nil
	case ast.OpDiv:
		if right.I == 0 {
			return value.Value{}, runtimeErrorf(DivisionByZero, "division by zero")
		}
		return value.NewInt(left.I / right.I), nil
	case ast.OpEq:
		return value.NewBool(left.Equal(right)), nil
	case ast.OpNeq:
		return value.NewBool(!left.Equal(right)), nil
	case ast.OpGt:
		return value.NewBool(compareOrdered(left, right) > 0), nil
	case ast.OpGte:
		return value.NewBool(compareOrdered(left, right) >= 0), nil
	case ast.OpLt:
		return value.NewBool(compareOrdered(left, right) < 0), nil
	case ast.OpLte:
		return value.NewBool(compareOrdered(left, right) <= 0), nil
	case ast.OpIn:
		for _, elem := range right.Elems {
			if left.Equal(elem) {
				return value.NewBool(true), nil
			}
		}
		return value.NewBool(false), nil
	}
	return value.Value{}, runtimeErrorf(TypeMismatch, "interp: unknown binary operator %v", e.Op)
}

// compareOrdered orders Int by integer value and Date by instant, per
// spec.md §4.4 ("Ordered comparisons on Date compare instants
// numerically"). The checker has already rejected any other operand
// combination by the time this runs.
func compareOrdered(left, right value.Value) int {
	if left.Kind == value.Date {
		switch {
		case left.T.Before(right.T):
			return -1
		case left.T.After(right.T):
			return 1
		default:
			return 0
		}
	}
	switch {
	case left.I < right.I:
		return -1
	case left.I > right.I:
		return 1
	default:
		return 0
	}
}

func evalMember(env *Env, e *ast.Member) (value.Value, error) {
	obj, err := eval(env, e.Object)
	if err != nil {
		return value.Value{}, err
	}
	if obj.Kind != value.Object {
		return value.Value{}, runtimeErrorf(TypeMismatch, "cannot access property '%s' on non-object value", e.Property)
	}
	v, ok := obj.Property(e.Property)
	if !ok {
		return value.Value{}, runtimeErrorf(MissingProperty, "missing property '%s'", e.Property)
	}
	return v, nil
}

func evalCall(env *Env, e *ast.Call) (value.Value, error) {
	if callee, ok := e.Callee.(*ast.Variable); ok && callee.Name == "has" {
		return evalHas(env, e.Args[0])
	}
	if member, ok := e.Callee.(*ast.Member); ok && (member.Property == "exists" || member.Property == "all") {
		lambda := e.Args[0].(*ast.Lambda)
		return evalMacro(env, member.Property, member.Object, lambda)
	}
	if callee, ok := e.Callee.(*ast.Variable); ok {
		return evalBuiltin(env, callee.Name, e.Args)
	}
	return value.Value{}, runtimeErrorf(TypeMismatch, "interp: call target is not a recognized function")
}

// evalHas evaluates arg and converts the two narrowly-scoped runtime
// error conditions spec.md §7/§9 name into Bool(false); any other error
// propagates unchanged.
func evalHas(env *Env, arg ast.Expr) (value.Value, error) {
	v, err := eval(env, arg)
	if err == nil {
		return value.NewBool(true), nil
	}
	var re *RuntimeError
	if errors.As(err, &re) && (re.Kind == UndefinedVariable || re.Kind == MissingProperty) {
		return value.NewBool(false), nil
	}
	_ = v
	return value.Value{}, err
}

// evalMacro implements .exists/.all, per spec.md §4.4: iterate in index
// order, binding the lambda parameter per-iteration in a scope discarded
// at loop exit (equivalent to "save and restore the prior binding" since
// the child scope never leaks into the parent).
func evalMacro(env *Env, name string, listExpr ast.Expr, lambda *ast.Lambda) (value.Value, error) {
	listVal, err := eval(env, listExpr)
	if err != nil {
		return value.Value{}, err
	}
	if listVal.Kind != value.List {
		return value.Value{}, runtimeErrorf(NotAList, "%s() requires a list receiver", name)
	}
	child := env.AddScope()
	for _, elem := range listVal.Elems {
		child.Declare(lambda.Param, elem)
		body, err := eval(child, lambda.Body)
		if err != nil {
			return value.Value{}, err
		}
		truthy := body.Kind == value.Bool && body.B
		if name == "exists" && truthy {
			return value.NewBool(true), nil
		}
		if name == "all" && !truthy {
			return value.NewBool(false), nil
		}
	}
	return value.NewBool(name == "all"), nil
}
