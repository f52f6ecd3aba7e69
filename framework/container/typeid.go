package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// TypeID is the dense integer key the container stores bindings under.
type TypeID int

// DefaultTypeIDBase is the first identity handed out by the process-wide
// allocator.
const DefaultTypeIDBase TypeID = 0

// ErrTypeIDsInUse is returned by Rebase once identities have been handed out.
var ErrTypeIDsInUse = errors.New("container: type identities already allocated")

// ── Allocator ─────────────────────────────────────────────────────────────────

// TypeIDAllocator assigns one TypeID per distinct reflect.Type, in order of
// first reference, starting at its base. Identities are never reused.
type TypeIDAllocator struct {
	mu    sync.Mutex
	base  TypeID
	next  TypeID
	ids   map[reflect.Type]TypeID
	types map[TypeID]reflect.Type
}

// NewTypeIDAllocator creates an allocator whose first identity is base.
func NewTypeIDAllocator(base TypeID) *TypeIDAllocator {
	return &TypeIDAllocator{
		base:  base,
		next:  base,
		ids:   make(map[reflect.Type]TypeID),
		types: make(map[TypeID]reflect.Type),
	}
}

var processTypeIDs = NewTypeIDAllocator(DefaultTypeIDBase)

// TypeIDs returns the process-wide allocator used by containers built
// without WithTypeIDs.
func TypeIDs() *TypeIDAllocator { return processTypeIDs }

// Of returns the identity of t, allocating the next one on first reference.
func (a *TypeIDAllocator) Of(t reflect.Type) TypeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.ids[t]; ok {
		return id
	}
	id := a.next
	a.next++
	a.ids[t] = id
	a.types[id] = t
	return id
}

// Type is the reverse of Of. It reports false for identities this allocator
// never handed out.
func (a *TypeIDAllocator) Type(id TypeID) (reflect.Type, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.types[id]
	return t, ok
}

// Len returns how many identities have been allocated.
func (a *TypeIDAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ids)
}

// Base returns the first identity of this allocator.
func (a *TypeIDAllocator) Base() TypeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.base
}

// Rebase moves the starting identity. It only succeeds before the first
// allocation; afterwards the same base is accepted as a no-op and any other
// base yields ErrTypeIDsInUse.
func (a *TypeIDAllocator) Rebase(base TypeID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.ids) > 0 {
		if base == a.base {
			return nil
		}
		return fmt.Errorf("%w: %d identities from base %d", ErrTypeIDsInUse, len(a.ids), a.base)
	}
	a.base = base
	a.next = base
	return nil
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf on a zero value
// it also works for interface types.
//
//	container.TypeOf[hardware.Processor]()  // the interface, not nil
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeIDOf returns T's identity from the process-wide allocator.
func TypeIDOf[T any]() TypeID {
	return processTypeIDs.Of(TypeOf[T]())
}
