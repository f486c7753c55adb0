package dispatch

import (
	"reflect"
	"strings"

	"github.com/funvibe/funmulti/pkg/types"
)

// Signature is the declared parameter-type tuple of one method: an ordered
// sequence of constraints, an optional trailing variadic constraint, and a
// precedence annotation used only to break ties the specificity order cannot.
// Signatures are append-only data; never mutate one after registration.
type Signature struct {
	Params     []types.Type
	Variadic   types.Type // nil when the arity is fixed
	Precedence int
}

// Sig builds a fixed-arity signature.
func Sig(params ...types.Type) Signature {
	return Signature{Params: params}
}

// WithVariadic returns a copy whose trailing slot accepts zero or more
// further arguments satisfying c.
func (s Signature) WithVariadic(c types.Type) Signature {
	s.Variadic = c
	return s
}

// WithPrecedence returns a copy carrying the precedence annotation.
func (s Signature) WithPrecedence(n int) Signature {
	s.Precedence = n
	return s
}

// at is the effective constraint for position i, expanding the variadic tail.
func (s Signature) at(i int) types.Type {
	if i < len(s.Params) {
		return s.Params[i]
	}
	return s.Variadic
}

// Match reports whether the signature applies to a concrete argument-type
// tuple: compatible arity and every position accepted.
func (s Signature) Match(args []reflect.Type) bool {
	n := len(s.Params)
	if s.Variadic == nil {
		if len(args) != n {
			return false
		}
	} else if len(args) < n {
		return false
	}
	for i, rt := range args {
		if !s.at(i).Accepts(rt) {
			return false
		}
	}
	return true
}

// leq reports whether every argument tuple s applies to is also one o
// applies to.
func (s Signature) leq(o Signature) bool {
	if s.Variadic == nil {
		n := len(s.Params)
		if o.Variadic == nil {
			if len(o.Params) != n {
				return false
			}
		} else if len(o.Params) > n {
			return false
		}
		for i := 0; i < n; i++ {
			if !types.SubsetOf(s.Params[i], o.at(i)) {
				return false
			}
		}
		return true
	}

	// A variadic signature admits unbounded arities, so only a variadic
	// signature with an equal-or-shorter fixed prefix can contain it.
	if o.Variadic == nil || len(o.Params) > len(s.Params) {
		return false
	}
	for i := range s.Params {
		if !types.SubsetOf(s.Params[i], o.at(i)) {
			return false
		}
	}
	return types.SubsetOf(s.Variadic, o.Variadic)
}

// Compare relates two signatures in the specificity partial order by
// containment of the argument tuples they apply to. A fixed-arity signature
// that ties a variadic one on every used position is strictly more specific:
// the variadic one also admits other arities.
func (s Signature) Compare(o Signature) types.Order {
	so := s.leq(o)
	os := o.leq(s)
	switch {
	case so && os:
		return types.OrderEqual
	case so:
		return types.OrderLess
	case os:
		return types.OrderGreater
	default:
		return types.OrderIncomparable
	}
}

// Equal is structural identity of the declared shape. Precedence is excluded:
// re-registering the same shape with a different precedence replaces the
// entry instead of duplicating it.
func (s Signature) Equal(o Signature) bool {
	if len(s.Params) != len(o.Params) {
		return false
	}
	if (s.Variadic == nil) != (o.Variadic == nil) {
		return false
	}
	for i := range s.Params {
		if types.KeyOf(s.Params[i]) != types.KeyOf(o.Params[i]) {
			return false
		}
	}
	if s.Variadic != nil && types.KeyOf(s.Variadic) != types.KeyOf(o.Variadic) {
		return false
	}
	return true
}

func (s Signature) String() string {
	parts := make([]string, 0, len(s.Params)+1)
	for _, p := range s.Params {
		parts = append(parts, p.String())
	}
	if s.Variadic != nil {
		parts = append(parts, "..."+s.Variadic.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// validate rejects structurally malformed signatures at registration time.
func (s Signature) validate() error {
	for i, p := range s.Params {
		if p == nil {
			return newRegistrationError("parameter %d has no constraint", i)
		}
	}
	return nil
}
