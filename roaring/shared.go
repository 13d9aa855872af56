package roaring

// sharedContainer wraps a single non-shared container (array, bitset, or
// run) behind a reference count, enabling zero-copy aliasing of the same
// container between independent Bitmap values. It implements the container
// interface itself so a (container, typecode) handle pair works uniformly
// whether or not the container happens to be shared — the read methods
// delegate to inner, clone, add and remove panic, and typecode reports
// typeShared.
//
// The refcount is a plain int, not atomic: a Bitmap is not safe for
// concurrent mutation from multiple goroutines, and this wrapper keeps that
// single-threaded contract rather than paying for atomics nothing here
// needs.
type sharedContainer struct {
	inner     container
	innerType typecode
	refcount  int
}

// getSharedContainer wraps c (or, if c is already shared, bumps its
// refcount) and returns a handle usable wherever a container is expected.
// counter is the initial refcount to give a freshly wrapped container — the
// number of outer references that will exist once this call returns.
func getSharedContainer(c container, t typecode, counter int) (container, typecode) {
	if t == typeShared {
		sc := c.(*sharedContainer)
		sc.refcount++
		return sc, typeShared
	}
	return &sharedContainer{inner: c, innerType: t, refcount: counter}, typeShared
}

// containerFree exists for API symmetry with the reference implementation's
// explicit container_free step; Go's garbage collector reclaims the
// container's memory once nothing references it, so the only free-like
// bookkeeping left to do by hand is decrementing a sharedContainer's
// refcount, which sharedContainerFree does.
func containerFree(container, typecode) {}

// sharedContainerFree decrements c's refcount. The wrapper (and, once the
// GC has no other reference to it, its inner container) becomes eligible for
// collection once the count reaches zero; there is no explicit inner free to
// dispatch in a garbage-collected runtime.
func sharedContainerFree(c container, t typecode) {
	if t != typeShared {
		panic("roaring: sharedContainerFree called on a non-shared container")
	}
	sc := c.(*sharedContainer)
	sc.refcount--
}

// unwrapShared is purely observational: if the handle is shared, it returns
// the inner container and rewrites the typecode to the inner's; otherwise it
// returns the handle unchanged. It asserts the inner is never itself shared.
func unwrapShared(c container, t typecode) (container, typecode) {
	if t != typeShared {
		return c, t
	}
	sc := c.(*sharedContainer)
	if sc.innerType == typeShared {
		panic("roaring: shared container wraps another shared container")
	}
	return sc.inner, sc.innerType
}

// getWritableCopyIfShared returns a container handle safe to mutate in
// place. An unshared handle is returned unchanged. A shared handle with
// refcount 1 is stolen outright (no other reference exists, so nothing needs
// copying); one with refcount > 1 is deep-cloned.
//
// On the clone branch this function decrements the wrapper's refcount before
// returning. The caller's reference to the shared wrapper is being consumed
// by this call — it now holds a private, writable container instead — so
// the wrapper must lose exactly one reference whether the steal or the clone
// branch is taken.
func getWritableCopyIfShared(c container, t typecode) (container, typecode) {
	if t != typeShared {
		return c, t
	}
	sc := c.(*sharedContainer)
	if sc.refcount == 1 {
		inner, innerType := sc.inner, sc.innerType
		sc.inner = nil
		return inner, innerType
	}
	clone := sc.inner.clone()
	sc.refcount--
	return clone, sc.innerType
}

func (sc *sharedContainer) clone() container {
	panic("roaring: cloning a shared container directly is not allowed; call getSharedContainer to bump its refcount instead")
}

func (sc *sharedContainer) contains(v uint16) bool { return sc.inner.contains(v) }
func (sc *sharedContainer) cardinality() int       { return sc.inner.cardinality() }
func (sc *sharedContainer) add(v uint16) bool {
	panic("roaring: mutating a shared container directly; call getWritableCopyIfShared first")
}
func (sc *sharedContainer) remove(v uint16) bool {
	panic("roaring: mutating a shared container directly; call getWritableCopyIfShared first")
}
func (sc *sharedContainer) iterate(fn func(v uint16) bool)     { sc.inner.iterate(fn) }
func (sc *sharedContainer) toUint32Slice(base uint32) []uint32 { return sc.inner.toUint32Slice(base) }
func (sc *sharedContainer) minimum() uint16                    { return sc.inner.minimum() }
func (sc *sharedContainer) maximum() uint16                    { return sc.inner.maximum() }
func (sc *sharedContainer) typecode() typecode                 { return typeShared }
func (sc *sharedContainer) sizeInBytes() int                   { return sc.inner.sizeInBytes() }
