package axiom

import (
	"errors"

	"github.com/axiomlang/axiom/interp"
	"github.com/axiomlang/axiom/lexer"
	"github.com/axiomlang/axiom/types"
)

// Diagnostic is the structured error shape spec.md §6 specifies for the
// core's error surface: { kind, message, line?, filename? }. Pretty-
// printing it for a terminal is an external concern (spec.md §1); this
// is the in-memory shape a host formats however it likes.
type Diagnostic struct {
	Kind     string
	Message  string
	Line     int  // 0 if not applicable
	HasLine  bool
	Filename string // set by the caller, not derived here; see ToDiagnostic
}

// ToDiagnostic classifies err into the Syntax/Type/Runtime kind spec.md
// §7 assigns to each pipeline phase. filename is attached verbatim
// (Axiom's core never opens files itself, per spec.md §1) and may be
// empty when the caller has none to report.
func ToDiagnostic(err error, filename string) Diagnostic {
	var syn *lexer.SyntaxError
	if errors.As(err, &syn) {
		return Diagnostic{Kind: "Syntax", Message: syn.Message, Line: syn.Line, HasLine: true, Filename: filename}
	}
	var typ *types.TypeError
	if errors.As(err, &typ) {
		return Diagnostic{Kind: "Type", Message: typ.Message, Filename: filename}
	}
	var rt *interp.RuntimeError
	if errors.As(err, &rt) {
		return Diagnostic{Kind: "Runtime", Message: rt.Message, Filename: filename}
	}
	return Diagnostic{Kind: "Runtime", Message: err.Error(), Filename: filename}
}
