package interp

import "fmt"

// RuntimeErrorKind narrows spec.md §7's Runtime error kind into the
// specific conditions spec.md enumerates, so that has() (see eval.go)
// can pattern-match on kind instead of string-sniffing a message — the
// narrowing spec.md §9 explicitly asks for in place of the original's
// catch-anything has() implementation.
type RuntimeErrorKind int

const (
	UndefinedVariable RuntimeErrorKind = iota
	MissingProperty
	DivisionByZero
	BadTimestamp
	NotAList
	TypeMismatch
)

// RuntimeError is the error kind spec.md §7 assigns to the interpreter.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func runtimeErrorf(kind RuntimeErrorKind, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
