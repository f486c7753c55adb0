package types

import (
	"reflect"
	"strings"
	"sync"
)

var (
	// keyCache memoizes canonical names to avoid repeated reflection.
	keyCache = make(map[reflect.Type]string)
	keyMu    sync.RWMutex
)

// Key returns the canonical, package-qualified name of a runtime type.
// Unlike reflect.Type.String it cannot collide across packages sharing a
// short name, which makes it safe as a cache key component. Results are
// memoized; safe for concurrent use.
func Key(rt reflect.Type) string {
	keyMu.RLock()
	if name, ok := keyCache[rt]; ok {
		keyMu.RUnlock()
		return name
	}
	keyMu.RUnlock()

	name := canonicalName(rt)

	keyMu.Lock()
	keyCache[rt] = name
	keyMu.Unlock()
	return name
}

func canonicalName(rt reflect.Type) string {
	if rt == NilType {
		return "nil"
	}
	if rt.PkgPath() != "" {
		return rt.PkgPath() + "." + rt.Name()
	}
	return rt.String()
}

// TupleKey builds the cache key for a concrete argument-type tuple.
func TupleKey(rts []reflect.Type) string {
	if len(rts) == 0 {
		return "()"
	}
	var b strings.Builder
	for i, rt := range rts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Key(rt))
	}
	return b.String()
}

// keyOf renders a constraint's canonical identity. Two constraints with the
// same key describe the same accepted set written the same way; it is the
// basis for union normalization and signature identity.
func keyOf(t Type) string {
	switch t := t.(type) {
	case TCon:
		return Key(t.RT)
	case TSlice:
		return "[]" + keyOf(t.Elem)
	case TUnion:
		// Grouped so composite keys stay unambiguous: []( a | b )
		// and ([]a | b) must never collide.
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = keyOf(m)
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case TAny:
		return "any"
	default:
		return t.String()
	}
}

// KeyOf is the exported form of the canonical constraint identity.
func KeyOf(t Type) string { return keyOf(t) }
