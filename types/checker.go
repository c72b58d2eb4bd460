package types

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/exp/maps"

	"github.com/axiomlang/axiom/ast"
)

// TypeError is the error kind spec.md §7 assigns to the checker. Unlike
// lexer.SyntaxError it carries no line: spec.md's negative scenarios
// (§8) only specify a message, identifying the construct and offending
// types, and the checker's one-pass design does not thread line numbers
// through every inference rule the way gflat's types2 threads ast.Node
// positions — a deliberate simplification matched to what spec.md
// actually tests for.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

func typeErrorf(format string, args ...any) error {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

type builtinSig struct {
	Params []ast.Type
	Return ast.Type
}

// builtins is the closed table of standard-library functions spec.md
// §4.3 dispatch rule 3 names. Kept as data, not a chain of if/else, the
// same table-driven style the teacher favors for its own closed
// enumerations (e.g. types2.BaseMap).
var builtins = map[string]builtinSig{
	"startsWith": {Params: []ast.Type{ast.Prim(ast.String), ast.Prim(ast.String)}, Return: ast.Prim(ast.Bool)},
	"endsWith":   {Params: []ast.Type{ast.Prim(ast.String), ast.Prim(ast.String)}, Return: ast.Prim(ast.Bool)},
	"contains":   {Params: []ast.Type{ast.Prim(ast.String), ast.Prim(ast.String)}, Return: ast.Prim(ast.Bool)},
	"length":     {Params: []ast.Type{ast.Prim(ast.String)}, Return: ast.Prim(ast.Int)},
	"timestamp":  {Params: []ast.Type{ast.Prim(ast.String)}, Return: ast.Prim(ast.Date)},
}

// knownBuiltinNames returns the builtin table's keys in deterministic
// order, via golang.org/x/exp/maps + sort, for stable "unknown function"
// error messages (the teacher's parser.go pulls identifier sets through
// maps.Keys for the same determinism reason).
func knownBuiltinNames() []string {
	names := maps.Keys(builtins)
	sort.Strings(names)
	return names
}

// Checker performs the one left-to-right pass spec.md §4.3 describes.
type Checker struct {
	env *Env
}

// Check type-checks stmts against inputs (the contract's seeded
// environment) and, if output is non-nil, validates that the program's
// final statement is an ExprStmt whose type conforms to *output, per
// spec.md §4.3's "Output-type validation".
func Check(stmts []ast.Stmt, inputs map[string]ast.Type, output *ast.Type) error {
	c := &Checker{env: NewEnv()}
	for name, t := range inputs {
		c.env.Declare(name, t)
	}

	var finalType ast.Type
	lastIsExpr := false
	for i, stmt := range stmts {
		t, isExpr, err := c.checkStmt(c.env, stmt)
		if err != nil {
			return err
		}
		if i == len(stmts)-1 {
			finalType, lastIsExpr = t, isExpr
		}
	}

	if output == nil {
		return nil
	}
	if !lastIsExpr {
		return typeErrorf("script does not end with an expression")
	}
	if ok, key := finalType.ConformsToOutput(*output); !ok {
		if key != "" {
			return typeErrorf("Return type mismatch: property %q does not conform to %s", key, output.String())
		}
		return typeErrorf("Return type mismatch: expected %s, got %s", output.String(), finalType.String())
	}
	return nil
}

// checkStmt checks one statement. The returned Type and bool are only
// meaningful when the statement is an ExprStmt; Check uses them solely
// for the last statement in the program.
func (c *Checker) checkStmt(env *Env, stmt ast.Stmt) (ast.Type, bool, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if _, ok := env.LookupStack(s.Name); ok {
			return ast.Type{}, false, typeErrorf("variable %q is already declared", s.Name)
		}
		initType, err := c.infer(env, s.Init)
		if err != nil {
			return ast.Type{}, false, err
		}
		if !initType.Unifies(s.Annotation) {
			return ast.Type{}, false, typeErrorf("type mismatch in declaration of %q: annotation %s / initializer %s", s.Name, s.Annotation, initType)
		}
		env.Declare(s.Name, s.Annotation)
		return ast.Type{}, false, nil

	case *ast.Assignment:
		target, ok := env.LookupStack(s.Name)
		if !ok {
			return ast.Type{}, false, typeErrorf("Undefined variable '%s'", s.Name)
		}
		valType, err := c.infer(env, s.Value)
		if err != nil {
			return ast.Type{}, false, err
		}
		if !valType.Unifies(target) {
			return ast.Type{}, false, typeErrorf("cannot assign %s to variable %q of type %s", valType, s.Name, target)
		}
		return ast.Type{}, false, nil

	case *ast.If:
		condType, err := c.infer(env, s.Cond)
		if err != nil {
			return ast.Type{}, false, err
		}
		if condType.Kind != ast.Bool {
			return ast.Type{}, false, typeErrorf("if condition must be bool, got %s", condType)
		}
		if _, _, err := c.checkStmt(env, s.Then); err != nil {
			return ast.Type{}, false, err
		}
		if s.Else != nil {
			if _, _, err := c.checkStmt(env, s.Else); err != nil {
				return ast.Type{}, false, err
			}
		}
		return ast.Type{}, false, nil

	case *ast.Block:
		child := env.AddScope()
		for _, inner := range s.Stmts {
			if _, _, err := c.checkStmt(child, inner); err != nil {
				return ast.Type{}, false, err
			}
		}
		return ast.Type{}, false, nil

	case *ast.ExprStmt:
		t, err := c.infer(env, s.X)
		if err != nil {
			return ast.Type{}, false, err
		}
		return t, true, nil
	}
	return ast.Type{}, false, typeErrorf("unknown statement node %T", stmt)
}

// infer type-infers expr bottom-up, per spec.md §4.3's node rules.
func (c *Checker) infer(env *Env, expr ast.Expr) (ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitInt:
			return ast.Prim(ast.Int), nil
		case ast.LitString:
			return ast.Prim(ast.String), nil
		case ast.LitBool:
			return ast.Prim(ast.Bool), nil
		}
		return ast.Type{}, typeErrorf("unknown literal kind")

	case *ast.Variable:
		t, ok := env.LookupStack(e.Name)
		if !ok {
			return ast.Type{}, typeErrorf("Undefined variable '%s'", e.Name)
		}
		return t, nil

	case *ast.Unary:
		operand, err := c.infer(env, e.Operand)
		if err != nil {
			return ast.Type{}, err
		}
		switch e.Op {
		case ast.OpNot:
			if operand.Kind != ast.Bool {
				return ast.Type{}, typeErrorf("'!' requires bool operand, got %s", operand)
			}
			return ast.Prim(ast.Bool), nil
		case ast.OpNeg:
			if operand.Kind != ast.Int {
				return ast.Type{}, typeErrorf("unary '-' requires int operand, got %s", operand)
			}
			return ast.Prim(ast.Int), nil
		}
		return ast.Type{}, typeErrorf("unknown unary operator")

	case *ast.Binary:
		return c.inferBinary(env, e)

	case *ast.Member:
		return c.inferMember(env, e)

	case *ast.ListLit:
		return c.inferList(env, e)

	case *ast.ObjectLit:
		fields := make([]ast.Field, len(e.Fields))
		for i, f := range e.Fields {
			ft, err := c.infer(env, f.Value)
			if err != nil {
				return ast.Type{}, err
			}
			fields[i] = ast.Field{Name: f.Name, Type: ft}
		}
		return ast.ObjectOf(fields...), nil

	case *ast.Call:
		return c.inferCall(env, e)

	case *ast.Lambda:
		return ast.Type{}, typeErrorf("lambda expressions are only valid as exists/all macro arguments")
	}
	return ast.Type{}, typeErrorf("unknown expression node %T", expr)
}

func (c *Checker) inferBinary(env *Env, e *ast.Binary) (ast.Type, error) {
	left, err := c.infer(env, e.Left)
	if err != nil {
		return ast.Type{}, err
	}
	right, err := c.infer(env, e.Right)
	if err != nil {
		return ast.Type{}, err
	}
	switch e.Op {
	case ast.OpAdd:
		if left.Kind == ast.Int && right.Kind == ast.Int {
			return ast.Prim(ast.Int), nil
		}
		if left.Kind == ast.String && right.Kind == ast.String {
			return ast.Prim(ast.String), nil
		}
		return ast.Type{}, typeErrorf("'+' requires (int, int) or (string, string), got (%s, %s)", left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		if left.Kind == ast.Int && right.Kind == ast.Int {
			return ast.Prim(ast.Int), nil
		}
		return ast.Type{}, typeErrorf("'%s' requires (int, int), got (%s, %s)", e.Op, left, right)
	case ast.OpEq, ast.OpNeq:
		if !left.Unifies(right) {
			return ast.Type{}, typeErrorf("'%s' requires operands of equal type, got (%s, %s)", e.Op, left, right)
		}
		return ast.Prim(ast.Bool), nil
	case ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
		if (left.Kind == ast.Int && right.Kind == ast.Int) || (left.Kind == ast.Date && right.Kind == ast.Date) {
			return ast.Prim(ast.Bool), nil
		}
		return ast.Type{}, typeErrorf("'%s' requires (int, int) or (date, date), got (%s, %s)", e.Op, left, right)
	case ast.OpAnd, ast.OpOr:
		if left.Kind == ast.Bool && right.Kind == ast.Bool {
			return ast.Prim(ast.Bool), nil
		}
		return ast.Type{}, typeErrorf("'%s' requires (bool, bool), got (%s, %s)", e.Op, left, right)
	case ast.OpIn:
		if right.Kind != ast.ListKind {
			return ast.Type{}, typeErrorf("'in' requires a list on the right, got %s", right)
		}
		if !left.Unifies(*right.Elem) {
			return ast.Type{}, typeErrorf("'in' left operand %s does not match list element type %s", left, *right.Elem)
		}
		return ast.Prim(ast.Bool), nil
	}
	return ast.Type{}, typeErrorf("unknown binary operator")
}

func (c *Checker) inferMember(env *Env, e *ast.Member) (ast.Type, error) {
	objType, err := c.infer(env, e.Object)
	if err != nil {
		return ast.Type{}, err
	}
	if objType.Kind != ast.ObjectKind {
		return ast.Type{}, typeErrorf("cannot access property %q on non-object type %s", e.Property, objType)
	}
	propType, ok := objType.Property(e.Property)
	if !ok {
		return ast.Type{}, typeErrorf("Property '%s' does not exist", e.Property)
	}
	return propType, nil
}

func (c *Checker) inferList(env *Env, e *ast.ListLit) (ast.Type, error) {
	if len(e.Elems) == 0 {
		return ast.ListOf(ast.Prim(ast.Unknown)), nil
	}
	elemTypes := make([]ast.Type, len(e.Elems))
	for i, el := range e.Elems {
		t, err := c.infer(env, el)
		if err != nil {
			return ast.Type{}, err
		}
		elemTypes[i] = t
	}
	first := elemTypes[0]
	// lo.EveryBy mirrors the teacher's preference (parser/import.go) for
	// samber/lo helpers over a hand-rolled loop when checking a uniform
	// predicate across a slice.
	if !lo.EveryBy(elemTypes, func(t ast.Type) bool { return t.Unifies(first) }) {
		return ast.Type{}, typeErrorf("List elements must be homogeneous")
	}
	return ast.ListOf(first), nil
}

func (c *Checker) inferCall(env *Env, e *ast.Call) (ast.Type, error) {
	// Dispatch 1: has(e) — statically verifies only that the root of the
	// member chain resolves to a bound variable; intermediate property
	// existence is a dynamic concern, per spec.md §4.3 dispatch rule 1.
	if callee, ok := e.Callee.(*ast.Variable); ok && callee.Name == "has" {
		if len(e.Args) != 1 {
			return ast.Type{}, typeErrorf("has() takes exactly one argument")
		}
		member, ok := e.Args[0].(*ast.Member)
		if !ok {
			return ast.Type{}, typeErrorf("has() requires a property-access expression")
		}
		root := rootVariable(member)
		if root == nil {
			return ast.Type{}, typeErrorf("has() argument must trace back to a variable")
		}
		if _, ok := env.LookupStack(root.Name); !ok {
			return ast.Type{}, typeErrorf("Undefined variable '%s'", root.Name)
		}
		return ast.Prim(ast.Bool), nil
	}

	// Dispatch 2: x.exists(p, body) / x.all(p, body).
	if member, ok := e.Callee.(*ast.Member); ok && (member.Property == "exists" || member.Property == "all") {
		if len(e.Args) != 1 {
			return ast.Type{}, typeErrorf("%s() takes exactly one lambda argument", member.Property)
		}
		lambda, ok := e.Args[0].(*ast.Lambda)
		if !ok {
			return ast.Type{}, typeErrorf("%s() requires a lambda argument", member.Property)
		}
		listType, err := c.infer(env, member.Object)
		if err != nil {
			return ast.Type{}, err
		}
		if listType.Kind != ast.ListKind {
			return ast.Type{}, typeErrorf("%s() requires a list receiver, got %s", member.Property, listType)
		}
		if _, ok := env.LookupStack(lambda.Param); ok {
			return ast.Type{}, typeErrorf("macro parameter %q shadows an existing name", lambda.Param)
		}
		child := env.AddScope()
		child.Declare(lambda.Param, *listType.Elem)
		bodyType, err := c.infer(child, lambda.Body)
		if err != nil {
			return ast.Type{}, err
		}
		if bodyType.Kind != ast.Bool {
			return ast.Type{}, typeErrorf("%s() body must be bool, got %s", member.Property, bodyType)
		}
		return ast.Prim(ast.Bool), nil
	}

	// Dispatch 3: closed table of standard-library builtins.
	if callee, ok := e.Callee.(*ast.Variable); ok {
		sig, known := builtins[callee.Name]
		if !known {
			return ast.Type{}, typeErrorf("unknown function %q (known: %v)", callee.Name, knownBuiltinNames())
		}
		if len(e.Args) != len(sig.Params) {
			return ast.Type{}, typeErrorf("%s() takes %d argument(s), got %d", callee.Name, len(sig.Params), len(e.Args))
		}
		for i, arg := range e.Args {
			argType, err := c.infer(env, arg)
			if err != nil {
				return ast.Type{}, err
			}
			if !argType.Unifies(sig.Params[i]) {
				return ast.Type{}, typeErrorf("%s() argument %d: expected %s, got %s", callee.Name, i+1, sig.Params[i], argType)
			}
		}
		return sig.Return, nil
	}

	return ast.Type{}, typeErrorf("call target is not a recognized function")
}

// rootVariable walks down a chain of Member accesses to the Variable at
// its root, the way has()'s static check needs per spec.md §4.3.
func rootVariable(e ast.Expr) *ast.Variable {
	switch x := e.(type) {
	case *ast.Variable:
		return x
	case *ast.Member:
		return rootVariable(x.Object)
	default:
		return nil
	}
}
