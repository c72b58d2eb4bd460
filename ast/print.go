package ast

import "github.com/sanity-io/litter"

// Dump renders a statement list for interactive debugging, the direct
// analogue of the teacher's parser.PrintAST/ast.ASTString helpers. It is
// not used by the compile/check/execute pipeline itself.
func Dump(stmts []Stmt) string {
	return litter.Sdump(stmts)
}
