// Package dispatch implements runtime multiple dispatch: a Function stores
// competing method signatures for one operation name and selects, per call,
// the implementation whose signature most specifically matches the concrete
// runtime types of every argument. Resolution outcomes, including failures,
// are cached per argument-type tuple; the cache is cleared whenever the
// method table changes.
package dispatch

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/funmulti/pkg/types"
)

// Impl is the callable bound to a signature.
type Impl func(args ...any) (any, error)

// Method is one registered implementation: its signature plus a stable
// identity assigned at registration, surfaced through introspection.
type Method struct {
	ID        uuid.UUID
	Signature Signature

	impl Impl
}

// Function is the dispatchable unit for one operation name. It owns the
// method table and the resolution cache. Safe for concurrent use: a single
// writer mutates the table, readers resolve and consult the cache without
// mutual exclusion among themselves.
type Function struct {
	name string

	mu      sync.RWMutex // guards methods; held shared during resolution
	methods []*Method

	cache resolutionCache
}

// NewFunction creates an empty dispatchable function.
func NewFunction(name string) *Function {
	return &Function{
		name:  name,
		cache: newResolutionCache(),
	}
}

// Name returns the operation name.
func (f *Function) Name() string { return f.name }

// Len returns the number of registered methods.
func (f *Function) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.methods)
}

// Register binds an implementation to a signature. Registering a
// structurally identical signature replaces the existing entry in place
// (same position, same ID); the table never holds duplicates. The whole
// resolution cache is invalidated before Register returns, so no caller can
// observe a stale winner after the new method is visible.
func (f *Function) Register(sig Signature, impl Impl) error {
	if impl == nil {
		return newRegistrationError("nil implementation for %s%s", f.name, sig)
	}
	if err := sig.validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	replaced := false
	for i, m := range f.methods {
		if m.Signature.Equal(sig) {
			// Copy-on-write: in-flight resolutions holding the old
			// pointer keep a consistent snapshot.
			f.methods[i] = &Method{ID: m.ID, Signature: sig, impl: impl}
			replaced = true
			break
		}
	}
	if !replaced {
		f.methods = append(f.methods, &Method{ID: uuid.New(), Signature: sig, impl: impl})
	}

	f.cache.invalidateAll()
	return nil
}

// Call dispatches on the concrete runtime types of args and invokes the
// winning implementation. On NotFoundError or AmbiguityError no fallback is
// attempted.
func (f *Function) Call(args ...any) (any, error) {
	rts := make([]reflect.Type, len(args))
	for i, a := range args {
		rts[i] = types.TypeOf(a)
	}
	m, err := f.resolve(rts)
	if err != nil {
		return nil, err
	}
	return m.impl(args...)
}

// Resolve reports the winning method for a hypothetical argument-type tuple
// without invoking it.
func (f *Function) Resolve(rts ...reflect.Type) (Method, error) {
	m, err := f.resolve(rts)
	if err != nil {
		return Method{}, err
	}
	return *m, nil
}

func (f *Function) resolve(rts []reflect.Type) (*Method, error) {
	key := types.TupleKey(rts)
	if out, ok := f.cache.lookup(key); ok {
		return out.method, out.err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	m, err := resolveMethods(f.name, f.methods, rts)
	// Stored under the table's read lock: a registration cannot interleave
	// its invalidation between this resolution and the store, so the cache
	// never outlives the table state it was derived from. Two readers
	// racing on the same uncached tuple compute the same outcome, so
	// last-writer-wins is fine.
	f.cache.store(key, outcome{method: m, err: err})
	return m, err
}

// Methods lists the registered methods in registration order.
func (f *Function) Methods() []Method {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Method, len(f.methods))
	for i, m := range f.methods {
		out[i] = *m
	}
	return out
}
