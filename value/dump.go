package value

import "github.com/sanity-io/litter"

// Dump renders v for interactive debugging, the runtime-value analogue of
// ast.Dump. It is not used by the compile/check/execute pipeline itself.
func Dump(v Value) string {
	return litter.Sdump(v)
}
