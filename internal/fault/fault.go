// Package fault defines the error taxonomy shared by every pipeline stage.
//
// Each stage reports failures as a *Error carrying a Kind. Callers match a
// category with errors.Is against the exported sentinels:
//
//	if errors.Is(err, fault.ErrScript) { ... }
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Parse is a malformed data line, e.g. a non-numeric value token.
	Parse Kind = iota + 1
	// Config is a missing/empty period sequence, an unknown model type or a
	// model construction failure.
	Config
	// Binding is an attribute write failure.
	Binding
	// Script is a script syntax or runtime failure.
	Script
	// IO is an underlying read failure.
	IO
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse error"
	case Config:
		return "config error"
	case Binding:
		return "binding error"
	case Script:
		return "script error"
	case IO:
		return "io error"
	default:
		return "error"
	}
}

// Error is a categorized failure.
type Error struct {
	Kind Kind
	Op   string // the operation or subject that failed, e.g. a file name
	Err  error
}

// Sentinels for errors.Is matching. They carry no Op and no Err.
var (
	ErrParse   = &Error{Kind: Parse}
	ErrConfig  = &Error{Kind: Config}
	ErrBinding = &Error{Kind: Binding}
	ErrScript  = &Error{Kind: Script}
	ErrIO      = &Error{Kind: IO}
)

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// New wraps err with a kind and operation.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a categorized error from a format string.
func Errorf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
