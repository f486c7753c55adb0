package dispatch

import (
	"sort"
	"sync"
)

// Dispatcher groups dispatchable functions by operation name. Tables are
// process-wide on purpose: every call site of an operation must observe the
// same growing method table. A Function is created on first use of its name
// and lives until the dispatcher does.
type Dispatcher struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// NewDispatcher creates an empty registry.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{funcs: make(map[string]*Function)}
}

// Function returns the dispatchable function for name, creating it if
// needed.
func (d *Dispatcher) Function(name string) *Function {
	d.mu.RLock()
	f, ok := d.funcs[name]
	d.mu.RUnlock()
	if ok {
		return f
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if f, ok := d.funcs[name]; ok {
		return f
	}
	f = NewFunction(name)
	d.funcs[name] = f
	return f
}

// Register binds an implementation to a signature under an operation name.
func (d *Dispatcher) Register(name string, sig Signature, impl Impl) error {
	return d.Function(name).Register(sig, impl)
}

// Call dispatches an operation by name. Calling a name with no registrations
// fails like any other unmatched call.
func (d *Dispatcher) Call(name string, args ...any) (any, error) {
	return d.Function(name).Call(args...)
}

// Lookup returns the function for name without creating one.
func (d *Dispatcher) Lookup(name string) (*Function, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.funcs[name]
	return f, ok
}

// Names lists the registered operation names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.funcs))
	for name := range d.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// std is the package-level dispatcher backing the top-level API.
var std = NewDispatcher()

// Register binds an implementation under an operation name in the default
// dispatcher.
func Register(name string, sig Signature, impl Impl) error {
	return std.Register(name, sig, impl)
}

// Call dispatches an operation by name in the default dispatcher.
func Call(name string, args ...any) (any, error) {
	return std.Call(name, args...)
}

// Func returns the default dispatcher's function for name, creating it if
// needed.
func Func(name string) *Function {
	return std.Function(name)
}

// Lookup returns the default dispatcher's function for name without
// creating one.
func Lookup(name string) (*Function, bool) {
	return std.Lookup(name)
}
