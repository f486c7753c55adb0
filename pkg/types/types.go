// Package types implements the constraint kernel for runtime dispatch.
//
// A Type describes the set of concrete runtime types a parameter position
// admits: a single Go type (TCon), a union of alternatives (TUnion), a
// parametric slice constraint (TSlice), or everything (TAny). Constraints are
// immutable values compared by the accepted-set relation, not by how they were
// written down.
package types

import (
	"reflect"
	"sort"
	"strings"
)

// Type is the interface for all parameter constraints.
type Type interface {
	// Accepts reports whether a value of concrete runtime type rt
	// satisfies the constraint. Must be pure.
	Accepts(rt reflect.Type) bool
	String() string
}

// TCon admits exactly one concrete Go type, or every implementation of it
// when the wrapped type is an interface.
type TCon struct {
	RT reflect.Type
}

func (t TCon) Accepts(rt reflect.Type) bool {
	if rt == t.RT {
		return true
	}
	if t.RT.Kind() == reflect.Interface {
		return rt.Implements(t.RT)
	}
	return false
}

func (t TCon) String() string {
	if t.RT == NilType {
		return "nil"
	}
	return t.RT.String()
}

// TUnion admits any type admitted by at least one member.
// Members are normalized: flattened, deduplicated and sorted. Construct
// unions through UnionOf so the invariant holds.
type TUnion struct {
	Members []Type
}

func (t TUnion) Accepts(rt reflect.Type) bool {
	for _, m := range t.Members {
		if m.Accepts(rt) {
			return true
		}
	}
	return false
}

func (t TUnion) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// TSlice admits every slice type whose element type satisfies Elem.
type TSlice struct {
	Elem Type
}

func (t TSlice) Accepts(rt reflect.Type) bool {
	return rt.Kind() == reflect.Slice && t.Elem.Accepts(rt.Elem())
}

func (t TSlice) String() string { return "[]" + t.Elem.String() }

// TAny admits every runtime type.
type TAny struct{}

func (t TAny) Accepts(reflect.Type) bool { return true }

func (t TAny) String() string { return "any" }

// Any is the top constraint.
var Any Type = TAny{}

// nilValue is the runtime type reported for untyped nil arguments.
type nilValue struct{}

// NilType is the concrete type TypeOf assigns to nil.
var NilType = reflect.TypeOf(nilValue{})

// Nil admits only nil arguments.
var Nil Type = TCon{RT: NilType}

// Of returns the constraint admitting T. Interface types admit their
// implementations; the empty interface normalizes to Any.
func Of[T any]() Type {
	return ConOf(reflect.TypeOf((*T)(nil)).Elem())
}

// ConOf wraps a reflect.Type in a constraint.
func ConOf(rt reflect.Type) Type {
	if rt.Kind() == reflect.Interface && rt.NumMethod() == 0 {
		return Any
	}
	return TCon{RT: rt}
}

// SliceOf returns the parametric constraint []elem.
func SliceOf(elem Type) Type {
	return TSlice{Elem: elem}
}

// UnionOf creates a normalized union. Nested unions are flattened,
// duplicates removed and members sorted by canonical key; a union containing
// Any collapses to Any and a single member is returned directly.
func UnionOf(members ...Type) Type {
	flat := []Type{}
	for _, m := range members {
		switch m := m.(type) {
		case TUnion:
			flat = append(flat, m.Members...)
		case TAny:
			return Any
		default:
			flat = append(flat, m)
		}
	}

	seen := make(map[string]bool)
	unique := []Type{}
	for _, m := range flat {
		k := keyOf(m)
		if !seen[k] {
			seen[k] = true
			unique = append(unique, m)
		}
	}

	if len(unique) == 1 {
		return unique[0]
	}

	// Sort for deterministic comparison and rendering
	sort.Slice(unique, func(i, j int) bool {
		return keyOf(unique[i]) < keyOf(unique[j])
	})

	return TUnion{Members: unique}
}

// TypeOf returns the concrete runtime type of a value. Untyped nil maps to
// NilType so that nil arguments dispatch on an explicit constraint instead of
// panicking in reflect.
func TypeOf(v any) reflect.Type {
	if v == nil {
		return NilType
	}
	return reflect.TypeOf(v)
}
