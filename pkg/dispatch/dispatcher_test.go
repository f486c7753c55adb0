package dispatch

import (
	"errors"
	"reflect"
	"testing"

	"github.com/funvibe/funmulti/pkg/types"
)

func TestDispatcherRegistry(t *testing.T) {
	d := NewDispatcher()

	if err := d.Register("area", Sig(types.Of[circle]()), constImpl("circle")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := d.Register("perimeter", Sig(types.Of[circle]()), constImpl("2πr")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := d.Call("area", circle{r: 1})
	if err != nil {
		t.Fatalf("Call(area): %v", err)
	}
	if got != "circle" {
		t.Errorf("Call(area) = %v, want circle", got)
	}

	names := d.Names()
	want := []string{"area", "perimeter"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}

	if _, ok := d.Lookup("area"); !ok {
		t.Errorf("Lookup(area) missed a registered operation")
	}
	if _, ok := d.Lookup("volume"); ok {
		t.Errorf("Lookup(volume) found an unregistered operation")
	}
}

func TestDispatcherSharedTables(t *testing.T) {
	// Every call site of a name sees the same growing table.
	d := NewDispatcher()
	f1 := d.Function("area")
	f2 := d.Function("area")
	if f1 != f2 {
		t.Fatalf("Function(area) returned distinct tables")
	}

	if err := f1.Register(Sig(types.Of[circle]()), constImpl("circle")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got, err := f2.Call(circle{r: 1}); err != nil || got != "circle" {
		t.Errorf("Call through second handle = %v, %v", got, err)
	}
}

func TestDispatcherUnregisteredOperation(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Call("nothing", 1)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestDefaultDispatcher(t *testing.T) {
	if err := Register("dispatcher_test.volume", Sig(types.Of[circle]()), constImpl("0")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := Call("dispatcher_test.volume", circle{r: 1})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "0" {
		t.Errorf("Call = %v, want 0", got)
	}
	if Func("dispatcher_test.volume").Len() != 1 {
		t.Errorf("Func().Len() = %d, want 1", Func("dispatcher_test.volume").Len())
	}
	if _, ok := Lookup("dispatcher_test.volume"); !ok {
		t.Errorf("Lookup missed the default-registry operation")
	}
}
