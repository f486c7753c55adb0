package types

import (
	"reflect"
	"testing"
)

type shape interface {
	Area() float64
}

type circle struct{ r float64 }

func (c circle) Area() float64 { return 3.14159 * c.r * c.r }

type square struct{ side float64 }

func (s square) Area() float64 { return s.side * s.side }

type triangle struct{ b, h float64 }

var (
	intT    = reflect.TypeOf(0)
	floatT  = reflect.TypeOf(0.0)
	stringT = reflect.TypeOf("")
	circleT = reflect.TypeOf(circle{})
	squareT = reflect.TypeOf(square{})
)

func TestAccepts(t *testing.T) {
	tests := []struct {
		name string
		c    Type
		rt   reflect.Type
		want bool
	}{
		{"con exact", Of[int](), intT, true},
		{"con mismatch", Of[int](), floatT, false},
		{"interface accepts implementation", Of[shape](), circleT, true},
		{"interface rejects non-implementation", Of[shape](), reflect.TypeOf(triangle{}), false},
		{"any accepts everything", Any, stringT, true},
		{"union member", UnionOf(Of[int](), Of[float64]()), floatT, true},
		{"union non-member", UnionOf(Of[int](), Of[float64]()), stringT, false},
		{"slice of con", SliceOf(Of[int]()), reflect.TypeOf([]int{}), true},
		{"slice elem mismatch", SliceOf(Of[int]()), reflect.TypeOf([]string{}), false},
		{"slice rejects non-slice", SliceOf(Of[int]()), intT, false},
		{"slice of interface elem", SliceOf(Of[shape]()), reflect.TypeOf([]circle{}), true},
		{"nil constraint", Nil, NilType, true},
		{"nil constraint rejects int", Nil, intT, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Accepts(tt.rt); got != tt.want {
				t.Errorf("%s.Accepts(%s) = %v, want %v", tt.c, tt.rt, got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(42); got != intT {
		t.Errorf("TypeOf(42) = %s, want int", got)
	}
	if got := TypeOf(nil); got != NilType {
		t.Errorf("TypeOf(nil) = %s, want NilType", got)
	}
	var s shape = circle{r: 1}
	// type_of sees through interface-typed variables to the dynamic type
	if got := TypeOf(s); got != circleT {
		t.Errorf("TypeOf(shape(circle)) = %s, want circle", got)
	}
}

func TestUnionNormalization(t *testing.T) {
	a := UnionOf(Of[int](), Of[float64]())
	b := UnionOf(Of[float64](), Of[int]())
	if KeyOf(a) != KeyOf(b) {
		t.Errorf("union keys differ by member order: %q vs %q", KeyOf(a), KeyOf(b))
	}

	// Nested unions flatten
	c := UnionOf(a, Of[string]())
	u, ok := c.(TUnion)
	if !ok {
		t.Fatalf("expected TUnion, got %T", c)
	}
	if len(u.Members) != 3 {
		t.Errorf("flattened union has %d members, want 3", len(u.Members))
	}

	// Duplicates collapse
	d := UnionOf(Of[int](), Of[int]())
	if _, ok := d.(TCon); !ok {
		t.Errorf("deduplicated single-member union should collapse, got %T", d)
	}

	// Any absorbs
	e := UnionOf(Of[int](), Any)
	if _, ok := e.(TAny); !ok {
		t.Errorf("union containing any should collapse to any, got %T", e)
	}
}

func TestKeyGroupsNestedUnions(t *testing.T) {
	// A slice of a union and a union containing a slice accept different
	// sets; their canonical keys must differ too.
	sliceOfUnion := SliceOf(UnionOf(Of[float64](), Of[int]()))
	unionWithSlice := UnionOf(Of[[]float64](), Of[int]())

	if KeyOf(sliceOfUnion) == KeyOf(unionWithSlice) {
		t.Errorf("distinct constraints share key %q", KeyOf(sliceOfUnion))
	}
	if got := KeyOf(sliceOfUnion); got != "[](float64 | int)" {
		t.Errorf("KeyOf(slice of union) = %q, want [](float64 | int)", got)
	}
	if got := Compare(sliceOfUnion, unionWithSlice); got == OrderEqual {
		t.Errorf("Compare = %s for constraints with different accepted sets", got)
	}
}

func TestOfNormalizesEmptyInterface(t *testing.T) {
	if _, ok := Of[any]().(TAny); !ok {
		t.Errorf("Of[any] should normalize to the top constraint")
	}
}

func TestTupleKey(t *testing.T) {
	if got := TupleKey(nil); got != "()" {
		t.Errorf("empty tuple key = %q, want ()", got)
	}
	k1 := TupleKey([]reflect.Type{intT, circleT})
	k2 := TupleKey([]reflect.Type{intT, squareT})
	if k1 == k2 {
		t.Errorf("distinct tuples share key %q", k1)
	}
	if k1 != TupleKey([]reflect.Type{intT, circleT}) {
		t.Errorf("tuple key is not stable")
	}
}
