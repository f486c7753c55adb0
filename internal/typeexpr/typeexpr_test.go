package typeexpr

import (
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/funmulti/pkg/types"
)

func TestParse(t *testing.T) {
	aliases := map[string]string{
		"Number": "int | float",
		"Deep":   "Number | string",
		"Loop":   "Loop | int",
	}

	tests := []struct {
		name    string
		expr    string
		wantKey string
		wantErr string
	}{
		{name: "builtin", expr: "int", wantKey: "int"},
		{name: "spaces trimmed", expr: "  float ", wantKey: "float64"},
		{name: "any", expr: "any", wantKey: "any"},
		{name: "nil", expr: "nil", wantKey: "nil"},
		{name: "union", expr: "int | float", wantKey: "(float64 | int)"},
		{name: "union order normalized", expr: "float | int", wantKey: "(float64 | int)"},
		{name: "slice", expr: "[]int", wantKey: "[]int"},
		{name: "slice of union", expr: "[]Number", wantKey: "[](float64 | int)"},
		{name: "alias", expr: "Number", wantKey: "(float64 | int)"},
		{name: "nested alias", expr: "Deep", wantKey: "(float64 | int | string)"},
		{name: "empty", expr: "", wantErr: "empty type expression"},
		{name: "unknown", expr: "complex", wantErr: `unknown type "complex"`},
		{name: "alias cycle", expr: "Loop", wantErr: "alias cycle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr, aliases)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want containing %q", tt.expr, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.expr, err)
			}
			if key := types.KeyOf(got); key != tt.wantKey {
				t.Errorf("Parse(%q) key = %q, want %q", tt.expr, key, tt.wantKey)
			}
		})
	}
}

func TestConcrete(t *testing.T) {
	aliases := map[string]string{"Number": "int | float", "ID": "int"}

	rt, err := Concrete("int", nil)
	if err != nil || rt != reflect.TypeOf(0) {
		t.Errorf("Concrete(int) = %v, %v", rt, err)
	}
	rt, err = Concrete("[]string", nil)
	if err != nil || rt != reflect.TypeOf([]string{}) {
		t.Errorf("Concrete([]string) = %v, %v", rt, err)
	}
	rt, err = Concrete("nil", nil)
	if err != nil || rt != types.NilType {
		t.Errorf("Concrete(nil) = %v, %v", rt, err)
	}
	if rt, err = Concrete("ID", aliases); err != nil || rt != reflect.TypeOf(0) {
		t.Errorf("Concrete(ID) = %v, %v", rt, err)
	}
	if _, err = Concrete("Number", aliases); err == nil {
		t.Errorf("Concrete(Number) should reject a union alias")
	}
	if _, err = Concrete("any", nil); err == nil {
		t.Errorf("Concrete(any) should fail")
	}
}
