package types

import "reflect"

// Order is the outcome of comparing two constraints by specificity.
// The relation is a partial order: two constraints whose accepted sets
// overlap without containment are incomparable, which is distinct from
// being equal. Keep this an explicit enumeration, never collapse it into
// a three-way numeric comparison.
type Order int

const (
	OrderIncomparable Order = iota
	OrderLess              // strictly more specific (strict subset)
	OrderGreater           // strictly more general (strict superset)
	OrderEqual             // same accepted set
)

func (o Order) String() string {
	switch o {
	case OrderLess:
		return "less"
	case OrderGreater:
		return "greater"
	case OrderEqual:
		return "equal"
	default:
		return "incomparable"
	}
}

// Compare relates two constraints by containment of their accepted sets.
// OrderLess means a admits a strict subset of what b admits.
func Compare(a, b Type) Order {
	ab := subsetOf(a, b)
	ba := subsetOf(b, a)
	switch {
	case ab && ba:
		return OrderEqual
	case ab:
		return OrderLess
	case ba:
		return OrderGreater
	default:
		return OrderIncomparable
	}
}

// SubsetOf reports whether every type accepted by a is accepted by b
// (non-strict containment).
func SubsetOf(a, b Type) bool { return subsetOf(a, b) }

// subsetOf reports whether every type accepted by a is accepted by b
// (non-strict). The relation is structural and total over the kernel's
// constraint forms; for interface constraints it relies on method-set
// inclusion via reflect.
func subsetOf(a, b Type) bool {
	if _, ok := b.(TAny); ok {
		return true
	}

	switch a := a.(type) {
	case TAny:
		// b is not Any here.
		return false

	case TUnion:
		for _, m := range a.Members {
			if !subsetOf(m, b) {
				return false
			}
		}
		return true

	case TCon:
		switch b := b.(type) {
		case TCon:
			if a.RT == b.RT {
				return true
			}
			return b.RT.Kind() == reflect.Interface && a.RT.Implements(b.RT)
		case TUnion:
			for _, m := range b.Members {
				if subsetOf(a, m) {
					return true
				}
			}
			return false
		case TSlice:
			if a.RT.Kind() != reflect.Slice {
				return false
			}
			return subsetOf(ConOf(a.RT.Elem()), b.Elem)
		}
		return false

	case TSlice:
		switch b := b.(type) {
		case TSlice:
			return subsetOf(a.Elem, b.Elem)
		case TUnion:
			for _, m := range b.Members {
				if subsetOf(a, m) {
					return true
				}
			}
			return false
		}
		return false
	}

	return false
}
