package dispatch

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/funvibe/funmulti/pkg/types"
)

// NotFoundError indicates that no registered signature accepts the given
// argument types. It is terminal for the call; register a matching method or
// call with different arguments.
type NotFoundError struct {
	Func string
	Args []reflect.Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("`%s%s` could not be resolved", e.Func, argTuple(e.Args))
}

// AmbiguityError indicates that two or more maximally specific signatures are
// mutually incomparable and precedence could not break the tie. Candidates
// are listed in registration order.
type AmbiguityError struct {
	Func       string
	Args       []reflect.Type
	Candidates []Signature
}

func (e *AmbiguityError) Error() string {
	listed := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		listed[i] = fmt.Sprintf("%s%s (precedence: %d)", e.Func, c, c.Precedence)
	}
	return fmt.Sprintf("`%s%s` is ambiguous among the following:\n  %s",
		e.Func, argTuple(e.Args), strings.Join(listed, "\n  "))
}

// RegistrationError indicates a structurally malformed registration. Raised
// at registration time, never at call time.
type RegistrationError struct {
	Reason string
}

func (e *RegistrationError) Error() string {
	return "invalid registration: " + e.Reason
}

func newRegistrationError(format string, args ...any) *RegistrationError {
	return &RegistrationError{Reason: fmt.Sprintf(format, args...)}
}

func argTuple(args []reflect.Type) string {
	parts := make([]string, len(args))
	for i, rt := range args {
		if rt == types.NilType {
			parts[i] = "nil"
		} else {
			parts[i] = rt.String()
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
