package roaring

// This file implements the pairwise algorithms for all 3x3 combinations of
// array, bitset, and run containers, plus their in-place and lazy variants
// and the shared/equality/iteration boundary operations.
//
// Every non-in-place operation here borrows both inputs and allocates a new
// result; every in-place operation (prefixed i) consumes c1 (the caller must
// not free it separately — ownership transfers to the call) and borrows c2.
// The handle an in-place op returns may or may not be c1 itself.

// finalizeBitsetResult picks array or bitset for a result built as a dense
// bitmap, per the table's "B/A" cells: bitset if its cardinality exceeds
// DefaultMaxSize, array otherwise.
func finalizeBitsetResult(bc *bitsetContainer) (container, typecode) {
	if bc.cardinalityUnchecked() > DefaultMaxSize {
		return bc, typeBitset
	}
	return bc.toArray(), typeArray
}

// finalizeRunResult builds the "R?" cells: run the result container through
// the efficient-conversion step, which may reclassify it as array or bitset
// if smaller.
func finalizeRunResult(rc *runContainer) (container, typecode) {
	c := rc.toEfficientContainer()
	return c, c.typecode()
}

// --- AND -------------------------------------------------------------------

// containerAnd computes c1 AND c2, allocating a new result. The result is an
// array or bitset, except for run AND run: that result is built as a run and
// then converted to its most compact representation, which may stay a run.
func containerAnd(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	c1, t1 = unwrapShared(c1, t1)
	c2, t2 = unwrapShared(c2, t2)

	switch a := c1.(type) {
	case *bitsetContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return finalizeBitsetResult(andBitsetBitset(a, b))
		case *arrayContainer:
			return andBitsetArray(a, b), typeArray
		case *runContainer:
			return finalizeBitsetResult(andBitsetRun(a, b))
		}
	case *arrayContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return andBitsetArray(b, a), typeArray
		case *arrayContainer:
			return andArrayArray(a, b), typeArray
		case *runContainer:
			return andArrayRun(a, b), typeArray
		}
	case *runContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return finalizeBitsetResult(andBitsetRun(b, a))
		case *arrayContainer:
			return andArrayRun(b, a), typeArray
		case *runContainer:
			return finalizeRunResult(andRunRun(a, b))
		}
	}
	panic("roaring: containerAnd: unreachable type combination")
}

func andBitsetBitset(a, b *bitsetContainer) *bitsetContainer {
	result := newBitsetContainer()
	card := 0
	for i := range a.words {
		w := a.words[i] & b.words[i]
		result.words[i] = w
		card += popcount64(w)
	}
	result.card = card
	return result
}

func andBitsetArray(bc *bitsetContainer, ac *arrayContainer) *arrayContainer {
	result := newArrayContainerCapacity(len(ac.values))
	for _, v := range ac.values {
		if bc.contains(v) {
			result.values = append(result.values, v)
		}
	}
	return result
}

func andArrayArray(a, b *arrayContainer) *arrayContainer {
	result := newArrayContainerCapacity(minInt(len(a.values), len(b.values)))
	i, j := 0, 0
	for i < len(a.values) && j < len(b.values) {
		switch {
		case a.values[i] < b.values[j]:
			i++
		case a.values[i] > b.values[j]:
			j++
		default:
			result.values = append(result.values, a.values[i])
			i++
			j++
		}
	}
	return result
}

func andArrayRun(ac *arrayContainer, rc *runContainer) *arrayContainer {
	result := newArrayContainerCapacity(len(ac.values))
	for _, v := range ac.values {
		if rc.contains(v) {
			result.values = append(result.values, v)
		}
	}
	return result
}

func andBitsetRun(bc *bitsetContainer, rc *runContainer) *bitsetContainer {
	result := newBitsetContainer()
	card := 0
	for _, iv := range rc.runs {
		for v := int(iv.start); v <= int(iv.last()); v++ {
			w, b := wordBit(uint16(v))
			mask := uint64(1) << b
			if bc.words[w]&mask != 0 {
				result.words[w] |= mask
				card++
			}
		}
	}
	result.card = card
	return result
}

func andRunRun(a, b *runContainer) *runContainer {
	return a.intersection(b)
}

// --- OR ---------------------------------------------------------------

// containerOr computes c1 OR c2, allocating a new result.
func containerOr(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	return orImpl(c1, t1, c2, t2, false)
}

// containerLazyOr computes c1 OR c2 using the _nocard bitset path: the
// result's cardinality cache is left stale, and a run result skips the
// efficient-conversion step. Callers must call repairAfterLazy before
// reading cardinality, size, or serializing the result.
func containerLazyOr(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	return orImpl(c1, t1, c2, t2, true)
}

func orImpl(c1 container, t1 typecode, c2 container, t2 typecode, lazy bool) (container, typecode) {
	c1, t1 = unwrapShared(c1, t1)
	c2, t2 = unwrapShared(c2, t2)

	switch a := c1.(type) {
	case *bitsetContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return orBitsetBitsetResult(orBitsetBitset(a, b, lazy), lazy)
		case *arrayContainer:
			return orBitsetBitsetResult(orBitsetArray(a, b, lazy), lazy)
		case *runContainer:
			return orBitsetRun(a, b, lazy)
		}
	case *arrayContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return orBitsetBitsetResult(orBitsetArray(b, a, lazy), lazy)
		case *arrayContainer:
			bc := orBitsetArray(a.toBitset(), b, lazy)
			if lazy {
				return bc, typeBitset
			}
			return finalizeBitsetResult(bc)
		case *runContainer:
			return finalizeOrRun(a.toRun().union(b), lazy)
		}
	case *runContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return orBitsetRun(b, a, lazy)
		case *arrayContainer:
			return finalizeOrRun(a.union(b.toRun()), lazy)
		case *runContainer:
			return finalizeOrRun(a.union(b), lazy)
		}
	}
	panic("roaring: containerOr: unreachable type combination")
}

// orBitsetBitsetResult picks the result's final typecode: a lazy OR leaves
// the cardinality cache stale, so the bitset/array decision is deferred to
// repairAfterLazy; an eager OR already knows its cardinality and can downsize
// to an array immediately.
func orBitsetBitsetResult(bc *bitsetContainer, lazy bool) (container, typecode) {
	if lazy {
		return bc, typeBitset
	}
	return finalizeBitsetResult(bc)
}

func orBitsetBitset(a, b *bitsetContainer, lazy bool) *bitsetContainer {
	result := newBitsetContainer()
	if lazy {
		for i := range a.words {
			result.words[i] = a.words[i] | b.words[i]
		}
		result.stale = true
		return result
	}
	card := 0
	for i := range a.words {
		w := a.words[i] | b.words[i]
		result.words[i] = w
		card += popcount64(w)
	}
	result.card = card
	return result
}

func orBitsetArray(bc *bitsetContainer, ac *arrayContainer, lazy bool) *bitsetContainer {
	result := &bitsetContainer{words: bc.words, card: bc.card}
	for _, v := range ac.values {
		result.setBit(v)
	}
	if lazy {
		result.stale = true
	}
	return result
}

// orBitsetRun implements the "B|R" dispatch cell: if the run operand covers
// the full 16-bit space, the result is a (copy of the) run; otherwise the
// union is computed densely and returned as a bitset. This implementation
// does not add an optional post-union downsizing pass — see DESIGN.md.
func orBitsetRun(bc *bitsetContainer, rc *runContainer, lazy bool) (container, typecode) {
	if rc.isFull() {
		return rc.copyContainer(), typeRun
	}
	result := &bitsetContainer{words: bc.words, card: bc.card}
	for _, iv := range rc.runs {
		setRange(result, iv.start, iv.last())
	}
	if lazy {
		result.card = 0
		result.stale = true
	} else {
		result.card = result.computeCardinality()
	}
	return result, typeBitset
}

func finalizeOrRun(rc *runContainer, lazy bool) (container, typecode) {
	if lazy {
		return rc, typeRun
	}
	return finalizeRunResult(rc)
}

// --- XOR ----------------------------------------------------------------

func containerXor(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	c1, t1 = unwrapShared(c1, t1)
	c2, t2 = unwrapShared(c2, t2)

	switch a := c1.(type) {
	case *bitsetContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return xorBitsetBitset(a, b), typeBitset
		case *arrayContainer:
			return xorBitsetArray(a, b), typeBitset
		case *runContainer:
			return xorBitsetRun(a, b), typeBitset
		}
	case *arrayContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return xorBitsetArray(b, a), typeBitset
		case *arrayContainer:
			return finalizeBitsetResult(xorBitsetArray(a.toBitset(), b))
		case *runContainer:
			return finalizeRunResult(xorViaBitset(a.toBitset(), b.toBitset()))
		}
	case *runContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return xorBitsetRun(b, a), typeBitset
		case *arrayContainer:
			return finalizeRunResult(xorViaBitset(a.toBitset(), b.toBitset()))
		case *runContainer:
			return finalizeRunResult(xorViaBitset(a.toBitset(), b.toBitset()))
		}
	}
	panic("roaring: containerXor: unreachable type combination")
}

func xorBitsetBitset(a, b *bitsetContainer) *bitsetContainer {
	result := newBitsetContainer()
	card := 0
	for i := range a.words {
		w := a.words[i] ^ b.words[i]
		result.words[i] = w
		card += popcount64(w)
	}
	result.card = card
	return result
}

func xorBitsetArray(bc *bitsetContainer, ac *arrayContainer) *bitsetContainer {
	result := &bitsetContainer{words: bc.words, card: bc.card}
	for _, v := range ac.values {
		if result.contains(v) {
			result.unsetBit(v)
		} else {
			result.setBit(v)
		}
	}
	return result
}

func xorBitsetRun(bc *bitsetContainer, rc *runContainer) *bitsetContainer {
	result := &bitsetContainer{words: bc.words, card: bc.card}
	for _, iv := range rc.runs {
		for v := int(iv.start); v <= int(iv.last()); v++ {
			if result.contains(uint16(v)) {
				result.unsetBit(uint16(v))
			} else {
				result.setBit(uint16(v))
			}
		}
	}
	return result
}

// xorViaBitset computes a symmetric difference through a dense intermediate
// and hands back a run container, for the run-involving XOR cells whose
// table entry is "R?" (build a run, then pick the most compact form).
func xorViaBitset(a, b *bitsetContainer) *runContainer {
	return xorBitsetBitset(a, b).toRun()
}

// --- ANDNOT ---------------------------------------------------------------

// containerAndNot computes c1 ANDNOT c2 (elements of c1 not in c2),
// allocating a new result. Unlike and/or/xor, andNot is not commutative.
// An array c1 always gives an array. A bitset c1, or a run c1 against a
// bitset, gives a bitset or array. A run c1 against an array or run is built
// as a run and then converted to its most compact representation, which may
// stay a run.
func containerAndNot(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	c1, t1 = unwrapShared(c1, t1)
	c2, t2 = unwrapShared(c2, t2)

	switch a := c1.(type) {
	case *bitsetContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return finalizeBitsetResult(andNotBitsetBitset(a, b))
		case *arrayContainer:
			return finalizeBitsetResult(andNotBitsetArray(a, b))
		case *runContainer:
			return finalizeBitsetResult(andNotBitsetRun(a, b))
		}
	case *arrayContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return andNotArrayBitset(a, b), typeArray
		case *arrayContainer:
			return andNotArrayArray(a, b), typeArray
		case *runContainer:
			return andNotArrayRun(a, b), typeArray
		}
	case *runContainer:
		switch b := c2.(type) {
		case *bitsetContainer:
			return finalizeBitsetResult(andNotRunBitset(a, b))
		case *arrayContainer:
			return finalizeRunResult(andNotRunViaBitset(a, b.toBitset()))
		case *runContainer:
			return finalizeRunResult(andNotRunViaBitset(a, b.toBitset()))
		}
	}
	panic("roaring: containerAndNot: unreachable type combination")
}

// andNotRunBitset computes rc ANDNOT bc: every element of rc not set in bc.
func andNotRunBitset(rc *runContainer, bc *bitsetContainer) *bitsetContainer {
	result := newBitsetContainer()
	card := 0
	for _, iv := range rc.runs {
		for v := int(iv.start); v <= int(iv.last()); v++ {
			if !bc.contains(uint16(v)) {
				w, b := wordBit(uint16(v))
				result.words[w] |= uint64(1) << b
				card++
			}
		}
	}
	result.card = card
	return result
}

func andNotBitsetBitset(a, b *bitsetContainer) *bitsetContainer {
	result := newBitsetContainer()
	card := 0
	for i := range a.words {
		w := a.words[i] &^ b.words[i]
		result.words[i] = w
		card += popcount64(w)
	}
	result.card = card
	return result
}

func andNotBitsetArray(bc *bitsetContainer, ac *arrayContainer) *bitsetContainer {
	result := &bitsetContainer{words: bc.words, card: bc.card}
	for _, v := range ac.values {
		result.unsetBit(v)
	}
	return result
}

func andNotBitsetRun(bc *bitsetContainer, rc *runContainer) *bitsetContainer {
	result := &bitsetContainer{words: bc.words, card: bc.card}
	for _, iv := range rc.runs {
		for v := int(iv.start); v <= int(iv.last()); v++ {
			result.unsetBit(uint16(v))
		}
	}
	return result
}

func andNotArrayBitset(ac *arrayContainer, bc *bitsetContainer) *arrayContainer {
	result := newArrayContainerCapacity(len(ac.values))
	for _, v := range ac.values {
		if !bc.contains(v) {
			result.values = append(result.values, v)
		}
	}
	return result
}

func andNotArrayArray(a, b *arrayContainer) *arrayContainer {
	result := newArrayContainerCapacity(len(a.values))
	i, j := 0, 0
	for i < len(a.values) {
		if j >= len(b.values) || a.values[i] < b.values[j] {
			result.values = append(result.values, a.values[i])
			i++
		} else if a.values[i] > b.values[j] {
			j++
		} else {
			i++
			j++
		}
	}
	return result
}

func andNotArrayRun(ac *arrayContainer, rc *runContainer) *arrayContainer {
	result := newArrayContainerCapacity(len(ac.values))
	for _, v := range ac.values {
		if !rc.contains(v) {
			result.values = append(result.values, v)
		}
	}
	return result
}

// andNotRunViaBitset computes rc ANDNOT other through a dense intermediate.
func andNotRunViaBitset(rc *runContainer, other *bitsetContainer) *runContainer {
	return andNotBitsetBitset(rc.toBitset(), other).toRun()
}

// --- in-place variants ------------------------------------------------

// containerIAnd computes c1 AND c2 in place where possible. c1 is consumed:
// the caller must not free it separately, and must use the returned handle
// (which may or may not be c1) from here on.
func containerIAnd(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	c2u, t2u := unwrapShared(c2, t2)
	c1, t1 = getWritableCopyIfShared(c1, t1)

	if bc, ok := c1.(*bitsetContainer); ok {
		switch b := c2u.(type) {
		case *bitsetContainer:
			card := 0
			for i := range bc.words {
				bc.words[i] &= b.words[i]
				card += popcount64(bc.words[i])
			}
			bc.card = card
			return finalizeBitsetResult(bc)
		case *arrayContainer:
			return andBitsetArray(bc, b), typeArray
		case *runContainer:
			return finalizeBitsetResult(andBitsetRun(bc, b))
		}
	}
	// Array ∘ anything, and run ∘ anything, are not genuinely in-place here;
	// the allocating path is reused and the new handle returned.
	return containerAnd(c1, t1, c2u, t2u)
}

// containerIOr computes c1 OR c2 in place where possible.
func containerIOr(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	return iorImpl(c1, t1, c2, t2, false)
}

// containerLazyIOr is containerIOr's lazy counterpart.
func containerLazyIOr(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	return iorImpl(c1, t1, c2, t2, true)
}

func iorImpl(c1 container, t1 typecode, c2 container, t2 typecode, lazy bool) (container, typecode) {
	c2u, t2u := unwrapShared(c2, t2)
	c1, t1 = getWritableCopyIfShared(c1, t1)

	if bc, ok := c1.(*bitsetContainer); ok {
		switch b := c2u.(type) {
		case *bitsetContainer:
			if lazy {
				for i := range bc.words {
					bc.words[i] |= b.words[i]
				}
				bc.stale = true
				return bc, typeBitset
			}
			card := 0
			for i := range bc.words {
				bc.words[i] |= b.words[i]
				card += popcount64(bc.words[i])
			}
			bc.card = card
			return bc, typeBitset
		case *arrayContainer:
			for _, v := range b.values {
				bc.setBit(v)
			}
			if lazy {
				bc.stale = true
			}
			return bc, typeBitset
		case *runContainer:
			if b.isFull() && !lazy {
				return b.copyContainer(), typeRun
			}
			for _, iv := range b.runs {
				setRange(bc, iv.start, iv.last())
			}
			if lazy {
				bc.stale = true
			} else {
				bc.card = bc.computeCardinality()
			}
			return bc, typeBitset
		}
	}
	if rc, ok := c1.(*runContainer); ok {
		if b, ok := c2u.(*runContainer); ok {
			rc.unionInPlace(b)
			if lazy {
				return rc, typeRun
			}
			return finalizeRunResult(rc)
		}
	}
	return orImpl(c1, t1, c2u, t2u, lazy)
}

// containerIXor computes c1 XOR c2 in place where possible.
func containerIXor(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	c2u, t2u := unwrapShared(c2, t2)
	c1, t1 = getWritableCopyIfShared(c1, t1)

	if bc, ok := c1.(*bitsetContainer); ok {
		switch b := c2u.(type) {
		case *bitsetContainer:
			for i := range bc.words {
				bc.words[i] ^= b.words[i]
			}
			bc.card = bc.computeCardinality()
			return bc, typeBitset
		case *arrayContainer:
			for _, v := range b.values {
				if bc.contains(v) {
					bc.unsetBit(v)
				} else {
					bc.setBit(v)
				}
			}
			return bc, typeBitset
		case *runContainer:
			for _, iv := range b.runs {
				for v := int(iv.start); v <= int(iv.last()); v++ {
					if bc.contains(uint16(v)) {
						bc.unsetBit(uint16(v))
					} else {
						bc.setBit(uint16(v))
					}
				}
			}
			return bc, typeBitset
		}
	}
	return containerXor(c1, t1, c2u, t2u)
}

// containerIAndNot computes c1 ANDNOT c2 in place where possible.
func containerIAndNot(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode) {
	c2u, t2u := unwrapShared(c2, t2)
	c1, t1 = getWritableCopyIfShared(c1, t1)

	if bc, ok := c1.(*bitsetContainer); ok {
		switch b := c2u.(type) {
		case *bitsetContainer:
			card := 0
			for i := range bc.words {
				bc.words[i] &^= b.words[i]
				card += popcount64(bc.words[i])
			}
			bc.card = card
			return finalizeBitsetResult(bc)
		case *arrayContainer:
			for _, v := range b.values {
				bc.unsetBit(v)
			}
			return finalizeBitsetResult(bc)
		case *runContainer:
			for _, iv := range b.runs {
				for v := int(iv.start); v <= int(iv.last()); v++ {
					bc.unsetBit(uint16(v))
				}
			}
			return finalizeBitsetResult(bc)
		}
	}
	return containerAndNot(c1, t1, c2u, t2u)
}

// --- repair, add, equals ------------------------------------------------

// containerAdd adds v to c, converting array to bitset when doing so would
// push cardinality above DefaultMaxSize: the array container never converts
// itself, so this dispatcher-level function carries that responsibility.
func containerAdd(c container, t typecode, v uint16) (container, typecode, bool) {
	c, t = getWritableCopyIfShared(c, t)
	switch cc := c.(type) {
	case *arrayContainer:
		changed := cc.add(v)
		if changed && len(cc.values) > DefaultMaxSize {
			return cc.toBitset(), typeBitset, true
		}
		return cc, typeArray, changed
	case *bitsetContainer:
		return cc, typeBitset, cc.add(v)
	case *runContainer:
		return cc, typeRun, cc.add(v)
	}
	panic("roaring: containerAdd: unexpected typecode")
}

// containerRemove removes v from c.
func containerRemove(c container, t typecode, v uint16) (container, typecode, bool) {
	c, t = getWritableCopyIfShared(c, t)
	switch cc := c.(type) {
	case *arrayContainer:
		return cc, typeArray, cc.remove(v)
	case *bitsetContainer:
		return cc, typeBitset, cc.remove(v)
	case *runContainer:
		return cc, typeRun, cc.remove(v)
	}
	panic("roaring: containerRemove: unexpected typecode")
}

// containerRepairAfterLazy restores the eager invariants after a chain of
// lazy operations: a bitset recomputes its cardinality and
// downgrades to array if it now fits; a run is passed through the
// efficient-conversion step; an array is already canonical; a shared
// container recurses into its inner and unwraps if it is the sole owner.
func containerRepairAfterLazy(c container, t typecode) (container, typecode) {
	if t == typeShared {
		sc := c.(*sharedContainer)
		inner, innerType := containerRepairAfterLazy(sc.inner, sc.innerType)
		sc.inner, sc.innerType = inner, innerType
		if sc.refcount == 1 {
			return inner, innerType
		}
		return sc, typeShared
	}
	switch cc := c.(type) {
	case *bitsetContainer:
		cc.card = cc.computeCardinality()
		cc.stale = false
		if cc.card <= DefaultMaxSize {
			return cc.toArray(), typeArray
		}
		return cc, typeBitset
	case *runContainer:
		return finalizeRunResult(cc)
	case *arrayContainer:
		return cc, typeArray
	}
	panic("roaring: containerRepairAfterLazy: unexpected typecode")
}

// containerEquals reports whether c1 and c2 denote the same set, regardless
// of representation.
func containerEquals(c1 container, t1 typecode, c2 container, t2 typecode) bool {
	c1, t1 = unwrapShared(c1, t1)
	c2, t2 = unwrapShared(c2, t2)

	switch a := c1.(type) {
	case *arrayContainer:
		return a.equals(c2)
	case *bitsetContainer:
		return a.equals(c2)
	case *runContainer:
		return a.equals(c2)
	}
	panic("roaring: containerEquals: unexpected typecode")
}

func popcount64(w uint64) int {
	n := 0
	for w != 0 {
		w &= w - 1
		n++
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
