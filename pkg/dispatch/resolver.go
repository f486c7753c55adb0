package dispatch

import (
	"reflect"

	"github.com/funvibe/funmulti/pkg/types"
)

// resolveMethods finds the unique most specific applicable method for a
// concrete argument-type tuple.
//
// Phase 1 filters the table down to the applicable methods. Phase 2 keeps
// the maximally specific subset: methods no other applicable method is
// strictly more specific than. A unique survivor wins; otherwise the
// precedence annotation breaks the tie iff exactly one survivor carries the
// maximum precedence. The full pairwise scan makes the outcome independent
// of registration order.
func resolveMethods(name string, methods []*Method, rts []reflect.Type) (*Method, error) {
	var applicable []*Method
	for _, m := range methods {
		if m.Signature.Match(rts) {
			applicable = append(applicable, m)
		}
	}
	if len(applicable) == 0 {
		return nil, &NotFoundError{Func: name, Args: rts}
	}

	var maximal []*Method
	for _, m := range applicable {
		dominated := false
		for _, o := range applicable {
			if o == m {
				continue
			}
			if o.Signature.Compare(m.Signature) == types.OrderLess {
				dominated = true
				break
			}
		}
		if !dominated {
			maximal = append(maximal, m)
		}
	}

	if len(maximal) == 1 {
		return maximal[0], nil
	}

	// Precedence tie-break.
	best := maximal[0]
	unique := true
	for _, m := range maximal[1:] {
		switch p := m.Signature.Precedence; {
		case p > best.Signature.Precedence:
			best = m
			unique = true
		case p == best.Signature.Precedence:
			unique = false
		}
	}
	if unique {
		return best, nil
	}

	candidates := make([]Signature, len(maximal))
	for i, m := range maximal {
		candidates[i] = m.Signature
	}
	return nil, &AmbiguityError{Func: name, Args: rts, Candidates: candidates}
}
