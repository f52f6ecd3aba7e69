package container

import (
	"errors"
	"testing"
)

type gauge interface{ Reading() int }

type gaugeImpl struct{ n int }

func (p *gaugeImpl) Reading() int { return p.n }

func TestResolve_StoredHandleForOtherTypeIsReported(t *testing.T) {
	c := New(WithTypeIDs(NewTypeIDAllocator(0)))

	// Bypass the typed write path: store a *gaugeImpl factory under gauge.
	c.store(TypeOf[gauge](), newInstanceFactory(&gaugeImpl{n: 1}))

	if _, err := Resolve[gauge](c); !errors.Is(err, ErrBindingMismatch) {
		t.Fatalf("Resolve: expected ErrBindingMismatch, got: %v", err)
	}
	if _, err := c.resolveType(TypeOf[gauge]()); !errors.Is(err, ErrBindingMismatch) {
		t.Fatalf("resolveType: expected ErrBindingMismatch, got: %v", err)
	}
}

func TestTypedFactory_Produces(t *testing.T) {
	f := newInstanceFactory[gauge](&gaugeImpl{n: 7})

	if f.produces() != TypeOf[gauge]() {
		t.Errorf("produces(): got %s", f.produces())
	}
	if !f.instance {
		t.Error("instance factory should be flagged")
	}
	v, err := f.produceAny()
	if err != nil {
		t.Fatalf("produceAny: %v", err)
	}
	if v.(gauge).Reading() != 7 {
		t.Errorf("produceAny(): got %v", v)
	}
}

func TestDeferredFactory_NeverProduces(t *testing.T) {
	f := &deferredFactory{abstract: TypeOf[gauge]()}

	if _, err := f.produceAny(); !errors.Is(err, ErrUnregisteredType) {
		t.Fatalf("expected ErrUnregisteredType, got: %v", err)
	}
	if len(f.dependencies()) != 0 {
		t.Error("deferred placeholder has no dependencies")
	}
}
