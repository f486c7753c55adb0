// Package typeexpr parses type expressions into dispatch constraints.
//
// The grammar is deliberately small:
//
//	expr := term ("|" term)*
//	term := "any" | "nil" | "[]" term | ident
//
// where ident is either a builtin type name (int, float, string, bool, char,
// bytes) or an alias defined by the surrounding scenario. A parameter list may
// end with "...expr", declaring a variadic tail; that form is handled by the
// caller, not here.
package typeexpr

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/funvibe/funmulti/pkg/types"
)

// builtins maps type names of the scenario language to runtime types.
var builtins = map[string]reflect.Type{
	"int":    reflect.TypeOf(int(0)),
	"float":  reflect.TypeOf(float64(0)),
	"string": reflect.TypeOf(""),
	"bool":   reflect.TypeOf(false),
	"char":   reflect.TypeOf(rune(0)),
	"bytes":  reflect.TypeOf([]byte(nil)),
}

// Parse resolves a type expression into a constraint. Aliases are expanded
// recursively; a self-referential alias is an error.
func Parse(expr string, aliases map[string]string) (types.Type, error) {
	return parse(expr, aliases, map[string]bool{})
}

func parse(expr string, aliases map[string]string, visited map[string]bool) (types.Type, error) {
	parts := strings.Split(expr, "|")
	if len(parts) > 1 {
		members := make([]types.Type, len(parts))
		for i, p := range parts {
			m, err := parse(p, aliases, visited)
			if err != nil {
				return nil, err
			}
			members[i] = m
		}
		return types.UnionOf(members...), nil
	}

	term := strings.TrimSpace(expr)
	switch {
	case term == "":
		return nil, fmt.Errorf("empty type expression")
	case term == "any":
		return types.Any, nil
	case term == "nil":
		return types.Nil, nil
	case strings.HasPrefix(term, "[]"):
		elem, err := parse(term[2:], aliases, visited)
		if err != nil {
			return nil, err
		}
		return types.SliceOf(elem), nil
	}

	if rt, ok := builtins[term]; ok {
		return types.ConOf(rt), nil
	}
	if expansion, ok := aliases[term]; ok {
		if visited[term] {
			return nil, fmt.Errorf("alias cycle through %q", term)
		}
		visited[term] = true
		t, err := parse(expansion, aliases, visited)
		delete(visited, term)
		if err != nil {
			return nil, fmt.Errorf("in alias %q: %w", term, err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", term)
}

// Concrete resolves a type expression that must denote a single concrete
// runtime type, as used for call arguments. Unions and "any" have no concrete
// runtime counterpart and are rejected.
func Concrete(expr string, aliases map[string]string) (reflect.Type, error) {
	return concrete(expr, aliases, map[string]bool{})
}

func concrete(expr string, aliases map[string]string, visited map[string]bool) (reflect.Type, error) {
	term := strings.TrimSpace(expr)
	switch {
	case term == "":
		return nil, fmt.Errorf("empty type expression")
	case term == "nil":
		return types.NilType, nil
	case strings.HasPrefix(term, "[]"):
		elem, err := concrete(term[2:], aliases, visited)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	}

	if rt, ok := builtins[term]; ok {
		return rt, nil
	}
	if expansion, ok := aliases[term]; ok {
		if visited[term] {
			return nil, fmt.Errorf("alias cycle through %q", term)
		}
		visited[term] = true
		rt, err := concrete(expansion, aliases, visited)
		delete(visited, term)
		if err != nil {
			return nil, fmt.Errorf("in alias %q: %w", term, err)
		}
		return rt, nil
	}
	return nil, fmt.Errorf("%q is not a concrete type", term)
}
