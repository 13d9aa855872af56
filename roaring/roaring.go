// This file assembles the container-level algorithms in array.go, bitmap.go,
// run.go, shared.go, and dispatch.go into the Bitmap type that client code
// actually holds.
package roaring

import (
	"fmt"
	"io"
	"sort"
)

// Option configures a Bitmap at construction time.
type Option func(*Bitmap)

// WithMaxSize overrides the array/bitset cardinality crossover that Add
// applies when an array container of this Bitmap grows. A value of 0 means
// DefaultMaxSize. The set operations (And, Or, Xor, AndNot, LazyOr) and
// RepairAfterLazy do not read it: they always use DefaultMaxSize.
func WithMaxSize(n int) Option {
	return func(rb *Bitmap) { rb.maxSize = n }
}

// entry is one (key, container) slot in a Bitmap, kept in a slice sorted by
// key so iteration, serialization, and rank queries never need to sort a map.
type entry struct {
	key uint16
	c   container
	t   typecode
}

// Bitmap is a compressed set of uint32 values.
type Bitmap struct {
	entries []entry
	maxSize int
}

// New creates an empty Bitmap.
func New(opts ...Option) *Bitmap {
	rb := &Bitmap{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(rb)
	}
	return rb
}

func highLow(v uint32) (uint16, uint16) {
	return uint16(v >> 16), uint16(v & 0xFFFF)
}

// find returns the index of key's entry and whether it exists; if it does
// not, the index is where it would need to be inserted to keep entries
// sorted by key.
func (rb *Bitmap) find(key uint16) (int, bool) {
	i := sort.Search(len(rb.entries), func(i int) bool { return rb.entries[i].key >= key })
	return i, i < len(rb.entries) && rb.entries[i].key == key
}

func (rb *Bitmap) maxSizeOrDefault() int {
	if rb.maxSize == 0 {
		return DefaultMaxSize
	}
	return rb.maxSize
}

// Add inserts v, reporting whether it was newly added.
func (rb *Bitmap) Add(v uint32) bool {
	key, low := highLow(v)
	i, ok := rb.find(key)
	if !ok {
		ac := newArrayContainer()
		ac.add(low)
		rb.entries = append(rb.entries, entry{})
		copy(rb.entries[i+1:], rb.entries[i:])
		rb.entries[i] = entry{key: key, c: ac, t: typeArray}
		return true
	}
	e := &rb.entries[i]
	c, t := getWritableCopyIfShared(e.c, e.t)
	switch cc := c.(type) {
	case *arrayContainer:
		changed := cc.add(low)
		if changed && len(cc.values) > rb.maxSizeOrDefault() {
			e.c, e.t = cc.toBitset(), typeBitset
		} else {
			e.c, e.t = cc, typeArray
		}
		return changed
	default:
		newC, newT, changed := containerAdd(c, t, low)
		e.c, e.t = newC, newT
		return changed
	}
}

// Contains reports whether v is a member of rb.
func (rb *Bitmap) Contains(v uint32) bool {
	key, low := highLow(v)
	i, ok := rb.find(key)
	if !ok {
		return false
	}
	return containerContains(rb.entries[i].c, rb.entries[i].t, low)
}

// Remove deletes v, reporting whether it was present.
func (rb *Bitmap) Remove(v uint32) bool {
	key, low := highLow(v)
	i, ok := rb.find(key)
	if !ok {
		return false
	}
	e := &rb.entries[i]
	c, t := getWritableCopyIfShared(e.c, e.t)
	newC, newT, changed := containerRemove(c, t, low)
	if containerCardinality(newC, newT) == 0 {
		rb.entries = append(rb.entries[:i], rb.entries[i+1:]...)
		return changed
	}
	e.c, e.t = newC, newT
	return changed
}

// Cardinality returns the total number of members.
func (rb *Bitmap) Cardinality() int {
	n := 0
	for _, e := range rb.entries {
		n += containerCardinality(e.c, e.t)
	}
	return n
}

// IsEmpty reports whether rb has no members.
func (rb *Bitmap) IsEmpty() bool {
	return len(rb.entries) == 0
}

// Iterate calls fn for every member of rb in ascending order, stopping early
// if fn returns false.
func (rb *Bitmap) Iterate(fn func(v uint32) bool) {
	for _, e := range rb.entries {
		base := uint32(e.key) << 16
		cont := true
		containerIterate(e.c, e.t, base, func(v uint32) bool {
			cont = fn(v)
			return cont
		})
		if !cont {
			return
		}
	}
}

// ToSlice returns every member of rb in ascending order.
func (rb *Bitmap) ToSlice() []uint32 {
	out := make([]uint32, 0, rb.Cardinality())
	for _, e := range rb.entries {
		out = append(out, containerToUint32Slice(e.c, e.t, uint32(e.key)<<16)...)
	}
	return out
}

// Rank returns the number of members of rb that are <= v.
func (rb *Bitmap) Rank(v uint32) int {
	key, low := highLow(v)
	rank := 0
	for _, e := range rb.entries {
		if e.key < key {
			rank += containerCardinality(e.c, e.t)
			continue
		}
		if e.key == key {
			c, _ := unwrapShared(e.c, e.t)
			switch cc := c.(type) {
			case *arrayContainer:
				rank += cc.rank(low)
			case *bitsetContainer:
				rank += cc.rank(low)
			case *runContainer:
				rank += rankRun(cc, low)
			}
			break
		}
		break
	}
	return rank
}

func rankRun(rc *runContainer, v uint16) int {
	rank := 0
	for _, iv := range rc.runs {
		if iv.last() <= v {
			rank += iv.count()
			continue
		}
		if iv.start <= v {
			rank += int(v-iv.start) + 1
		}
		break
	}
	return rank
}

// Clone returns a copy-on-write snapshot of rb: every container becomes
// shared between rb and the returned Bitmap, so neither mutation touches
// the other's data, and no container is actually copied until one side
// writes to it.
func (rb *Bitmap) Clone() *Bitmap {
	clone := &Bitmap{entries: make([]entry, len(rb.entries)), maxSize: rb.maxSize}
	for i, e := range rb.entries {
		sharedC, sharedT := getSharedContainer(e.c, e.t, 2)
		rb.entries[i].c, rb.entries[i].t = sharedC, sharedT
		clone.entries[i] = entry{key: e.key, c: sharedC, t: sharedT}
	}
	return clone
}

// binOp is the shape shared by And, Or, Xor, AndNot's per-container dispatch.
type binOp func(c1 container, t1 typecode, c2 container, t2 typecode) (container, typecode)

func (rb *Bitmap) merge(other *Bitmap, op binOp, keepUnmatchedLeft, keepUnmatchedRight bool) *Bitmap {
	result := &Bitmap{maxSize: rb.maxSize}
	i, j := 0, 0
	for i < len(rb.entries) || j < len(other.entries) {
		switch {
		case j >= len(other.entries) || (i < len(rb.entries) && rb.entries[i].key < other.entries[j].key):
			if keepUnmatchedLeft {
				result.entries = append(result.entries, rb.entries[i])
			}
			i++
		case i >= len(rb.entries) || other.entries[j].key < rb.entries[i].key:
			if keepUnmatchedRight {
				result.entries = append(result.entries, other.entries[j])
			}
			j++
		default:
			c, t := op(rb.entries[i].c, rb.entries[i].t, other.entries[j].c, other.entries[j].t)
			// Test emptiness without reading the cardinality cache, which a
			// lazy operation leaves stale.
			nonEmpty := false
			containerIterate(c, t, 0, func(uint32) bool { nonEmpty = true; return false })
			if nonEmpty {
				result.entries = append(result.entries, entry{key: rb.entries[i].key, c: c, t: t})
			}
			i++
			j++
		}
	}
	return result
}

// And returns the intersection of rb and other.
func (rb *Bitmap) And(other *Bitmap) *Bitmap {
	return rb.merge(other, containerAnd, false, false)
}

// Or returns the union of rb and other.
func (rb *Bitmap) Or(other *Bitmap) *Bitmap {
	return rb.merge(other, containerOr, true, true)
}

// Xor returns the symmetric difference of rb and other.
func (rb *Bitmap) Xor(other *Bitmap) *Bitmap {
	return rb.merge(other, containerXor, true, true)
}

// AndNot returns the members of rb that are not in other.
func (rb *Bitmap) AndNot(other *Bitmap) *Bitmap {
	return rb.merge(other, containerAndNot, true, false)
}

// OrMany computes the n-ary union of bitmaps, pairwise, without building any
// intermediate beyond the running accumulator.
func OrMany(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return New()
	}
	result := bitmaps[0].Clone()
	for _, b := range bitmaps[1:] {
		result = result.Or(b)
	}
	return result
}

// LazyOr computes the union of rb and other the way Or does, except that any
// bitset container produced along the way leaves its cardinality cache
// stale. Callers must call RepairAfterLazy on the result before reading its
// Cardinality, calling Serialize, or otherwise relying on any cached count.
// This lets a caller fold many bitmaps together (e.g. while bulk-indexing)
// and pay the popcount cost once at the end instead of after every step.
func (rb *Bitmap) LazyOr(other *Bitmap) *Bitmap {
	return rb.merge(other, containerLazyOr, true, true)
}

// RepairAfterLazy restores every container's eager invariants after a chain
// of lazy operations, recomputing cardinality caches and reselecting the
// most compact representation where that changed.
func (rb *Bitmap) RepairAfterLazy() {
	for i, e := range rb.entries {
		c, t := containerRepairAfterLazy(e.c, e.t)
		rb.entries[i].c, rb.entries[i].t = c, t
	}
}

// Equals reports whether rb and other denote the same set.
func (rb *Bitmap) Equals(other *Bitmap) bool {
	if len(rb.entries) != len(other.entries) {
		return false
	}
	for i, e := range rb.entries {
		o := other.entries[i]
		if e.key != o.key || !containerEquals(e.c, e.t, o.c, o.t) {
			return false
		}
	}
	return true
}

// RunOptimize converts each array or bitset container into a run container
// when the run form is strictly smaller. Run containers are left as they
// are, and arrays and bitsets are never converted into each other.
func (rb *Bitmap) RunOptimize() {
	for i, e := range rb.entries {
		c, t := unwrapShared(e.c, e.t)
		var candidate container
		var candidateType typecode
		switch cc := c.(type) {
		case *arrayContainer:
			candidate, candidateType = cc.toRun(), typeRun
		case *bitsetContainer:
			candidate, candidateType = cc.toRun(), typeRun
		case *runContainer:
			continue
		default:
			continue
		}
		if containerSizeInBytes(candidate, candidateType) < containerSizeInBytes(c, t) {
			rb.entries[i].c, rb.entries[i].t = candidate, candidateType
		}
	}
}

// Serialize writes rb in the portable container format: a little-endian u32
// container count, then for each container (ascending by key) a
// little-endian u16 key, a single typecode byte, and that container's
// self-delimiting payload.
func (rb *Bitmap) Serialize(w io.Writer) error {
	var hdr [4]byte
	putUint32(hdr[:], uint32(len(rb.entries)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("roaring: writing container count: %w", err)
	}
	for _, e := range rb.entries {
		var keyBuf [2]byte
		putUint16(keyBuf[:], e.key)
		if _, err := w.Write(keyBuf[:]); err != nil {
			return fmt.Errorf("roaring: writing container key: %w", err)
		}
		_, t := unwrapShared(e.c, e.t)
		if _, err := w.Write([]byte{byte(t)}); err != nil {
			return fmt.Errorf("roaring: writing container typecode: %w", err)
		}
		if _, err := containerWriteTo(e.c, e.t, w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize replaces rb's contents with a bitmap read from r in the
// format Serialize produces.
func (rb *Bitmap) Deserialize(r io.Reader) error {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("roaring: reading container count: %w", err)
	}
	n := getUint32(hdr[:])
	entries := make([]entry, 0, n)
	var prevKey uint16
	for i := uint32(0); i < n; i++ {
		var keyBuf [2]byte
		if _, err := io.ReadFull(r, keyBuf[:]); err != nil {
			return fmt.Errorf("roaring: reading container key: %w", err)
		}
		key := getUint16(keyBuf[:])
		if i > 0 && key <= prevKey {
			return fmt.Errorf("roaring: container keys not strictly ascending at index %d", i)
		}
		prevKey = key

		var tByte [1]byte
		if _, err := io.ReadFull(r, tByte[:]); err != nil {
			return fmt.Errorf("roaring: reading container typecode: %w", err)
		}
		t := typecode(tByte[0])
		c, err := containerReadFrom(t, r)
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: key, c: c, t: t})
	}
	rb.entries = entries
	return nil
}
