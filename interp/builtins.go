package interp

import (
	"strings"
	"time"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/value"
)

// evalBuiltin dispatches the five free functions the checker's builtins
// table (types/checker.go) accepts. The checker has already verified
// arity and argument types, so evalBuiltin trusts its inputs except for
// timestamp's parse failure, which is a genuine runtime condition.
func evalBuiltin(env *Env, name string, args []ast.Expr) (value.Value, error) {
	vals := make([]value.Value, len(args))
	for i, a := range args {
		v, err := eval(env, a)
		if err != nil {
			return value.Value{}, err
		}
		vals[i] = v
	}

	switch name {
	case "startsWith":
		return value.NewBool(strings.HasPrefix(vals[0].S, vals[1].S)), nil
	case "endsWith":
		return value.NewBool(strings.HasSuffix(vals[0].S, vals[1].S)), nil
	case "contains":
		return value.NewBool(strings.Contains(vals[0].S, vals[1].S)), nil
	case "length":
		return value.NewInt(int64(len(vals[0].S))), nil
	case "timestamp":
		t, err := time.Parse(time.RFC3339, vals[0].S)
		if err != nil {
			return value.Value{}, runtimeErrorf(BadTimestamp, "invalid timestamp %q: %v", vals[0].S, err)
		}
		return value.NewDate(t), nil
	}
	return value.Value{}, runtimeErrorf(TypeMismatch, "interp: unknown builtin %q", name)
}
