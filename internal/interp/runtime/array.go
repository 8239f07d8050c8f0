package runtime

import (
	"strings"
	"unsafe"
	"weak"
)

// arrayBacking is the shared mutable vector every array/slice value views.
// It mirrors `original_source/src/flat/sharedarray.h`'s SharedArrayObj: one
// owning vector plus a registry of the slices currently viewing it.
type arrayBacking struct {
	elems  []Value
	slices map[weak.Pointer[ArrayValue]]struct{}
}

func (b *arrayBacking) registerSlice(av *ArrayValue) {
	if b.slices == nil {
		b.slices = make(map[weak.Pointer[ArrayValue]]struct{})
	}
	b.slices[weak.Make(av)] = struct{}{}
}

func (b *arrayBacking) unregisterSlice(av *ArrayValue) {
	delete(b.slices, weak.Make(av))
}

// detachAliasedSlicesCovering clones every still-live slice whose window
// covers absolute index idx into its own private backing, so a direct
// mutation of this backing at idx never leaks into an aliased slice's
// observed contents. Dead (collected) slice entries are pruned along the
// way in place of the destructor-driven cleanup the original relies on.
func (b *arrayBacking) detachAliasedSlicesCovering(idx int) {
	for w := range b.slices {
		av := w.Value()
		if av == nil {
			delete(b.slices, w)
			continue
		}
		if av.offset <= idx && idx < av.offset+av.length {
			av.detachSelf()
		}
	}
}

// ArrayValue is a reference-type array/slice handle: copying the struct
// (as every assignment, argument bind, and container store does via
// CopyHeader) shares the backing vector but gives the copy its own
// offset/length/isSlice triple — the same shape as a Go slice header, and
// the Go analogue of the original's shared_ptr-based copy constructor.
type ArrayValue struct {
	backing *arrayBacking
	offset  int
	length  int
	isSlice bool
}

func NewArray(elems []Value) *ArrayValue {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return &ArrayValue{backing: &arrayBacking{elems: cp}}
}

func (*ArrayValue) Type() string { return "array" }

func (a *ArrayValue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	n := a.Size()
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := a.Get(i)
		sb.WriteString(v.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// Offset is the absolute index into backing.elems this value's window
// starts at.
func (a *ArrayValue) Offset() int {
	if a.isSlice {
		return a.offset
	}
	return 0
}

// Size is the number of elements visible through this value's window.
func (a *ArrayValue) Size() int {
	if a.isSlice {
		return a.length
	}
	return len(a.backing.elems)
}

func (a *ArrayValue) IsSlice() bool { return a.isSlice }

// IntPtr is a stable identity for the backing vector, used only for
// debugging/identity comparisons (§4.4's testable property: "slices and
// their backing container report the same intptr until a divergent
// mutation").
func (a *ArrayValue) IntPtr() int64 { return int64(uintptr(unsafe.Pointer(a.backing))) }

// UseCount approximates the original's shared_ptr::use_count(): the
// backing itself plus every still-live slice registered against it. Go's
// GC gives no true external refcount, so this undercounts plain (non-slice)
// aliases of the same backing; that only affects the cheap early-exit the
// original takes, never correctness, since mutation always rescans the
// slice registry regardless (see detachAliasedSlicesCovering).
func (a *ArrayValue) UseCount() int { return len(a.backing.slices) + 1 }

// CopyHeader returns a new *ArrayValue sharing this value's backing but
// with an independent offset/length/isSlice triple — the explicit stand-in
// for the C++ original's implicit copy constructor, invoked by the
// evaluator at every assignment, argument bind, and container-store point.
func (a *ArrayValue) CopyHeader() *ArrayValue {
	cp := &ArrayValue{backing: a.backing, offset: a.offset, length: a.length, isSlice: a.isSlice}
	if cp.isSlice {
		cp.backing.registerSlice(cp)
	}
	return cp
}

// Get returns the element at local index i (0-based within this value's
// window), with negative-index wraparound (§4.4).
func (a *ArrayValue) Get(i int) (Value, bool) {
	n := a.Size()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, false
	}
	return a.backing.elems[a.Offset()+i], true
}

// Put writes v at local index i, running the exact two-branch COW check
// from original_source's LValue::get_value_for_put(): if this value is
// itself a slice, detach (privatize) its own backing first; otherwise scan
// for other live slices whose window covers the touched index and detach
// each of those.
func (a *ArrayValue) Put(i int, v Value) bool {
	n := a.Size()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return false
	}
	if a.isSlice {
		a.detachSelf()
	} else {
		a.backing.detachAliasedSlicesCovering(i)
	}
	a.backing.elems[a.Offset()+i] = v
	return true
}

// detachSelf clones this value's visible window into a fresh, privately
// owned backing vector and unregisters it from the old one. Equivalent to
// SharedArrayObj::clone_internal_vec().
func (a *ArrayValue) detachSelf() {
	if !a.isSlice {
		return
	}
	old := a.backing
	cp := make([]Value, a.length)
	copy(cp, old.elems[a.offset:a.offset+a.length])
	old.unregisterSlice(a)
	a.backing = &arrayBacking{elems: cp}
	a.isSlice = false
	a.offset = 0
	a.length = 0
}

// Slice returns a new view over [start, end) of this array's current
// window, registered against the same backing so future mutations of that
// backing know to protect it.
func (a *ArrayValue) Slice(start, end *int) *ArrayValue {
	n := a.Size()
	lo, hi := 0, n
	if start != nil {
		lo = resolveBound(*start, n)
	}
	if end != nil {
		hi = resolveBound(*end, n)
	}
	if hi < lo {
		hi = lo
	}
	view := &ArrayValue{
		backing: a.backing,
		offset:  a.Offset() + lo,
		length:  hi - lo,
		isSlice: true,
	}
	a.backing.registerSlice(view)
	return view
}

// Concat implements array + array: always produces a fresh, unaliased
// backing (§4.4).
func (a *ArrayValue) Concat(other *ArrayValue) *ArrayValue {
	n1, n2 := a.Size(), other.Size()
	out := make([]Value, 0, n1+n2)
	for i := 0; i < n1; i++ {
		v, _ := a.Get(i)
		out = append(out, v)
	}
	for i := 0; i < n2; i++ {
		v, _ := other.Get(i)
		out = append(out, v)
	}
	return NewArray(out)
}

// Append appends a value in place, always through the non-slice owning
// backing; if this value is itself a slice, it is detached first so the
// append never silently grows someone else's shared window.
func (a *ArrayValue) Append(v Value) {
	if a.isSlice {
		a.detachSelf()
	}
	a.backing.elems = append(a.backing.elems, v)
}

// detachForStructuralChange runs the same detach protocol Put uses
// (§4.4's "append/pop/erase follow the same rule") for any mutation that
// changes the backing vector's length rather than just one cell: a slice
// is privatized outright, and a non-slice aliased by any slice (its window
// can no longer agree with the post-mutation length) is privatized too.
func (a *ArrayValue) detachForStructuralChange() {
	if a.isSlice {
		a.detachSelf()
		return
	}
	if len(a.backing.slices) > 0 {
		old := a.backing
		cp := make([]Value, len(old.elems))
		copy(cp, old.elems)
		a.backing = &arrayBacking{elems: cp}
	}
}

// Pop removes and returns the last element, or (nil, false) if empty.
func (a *ArrayValue) Pop() (Value, bool) {
	n := a.Size()
	if n == 0 {
		return nil, false
	}
	a.detachForStructuralChange()
	last := a.Offset() + n - 1
	v := a.backing.elems[last]
	a.backing.elems = append(a.backing.elems[:last], a.backing.elems[last+1:]...)
	if a.isSlice {
		a.length--
	}
	return v, true
}

// Erase removes the element at local index i, reporting whether i was in
// range.
func (a *ArrayValue) Erase(i int) bool {
	n := a.Size()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return false
	}
	a.detachForStructuralChange()
	abs := a.Offset() + i
	a.backing.elems = append(a.backing.elems[:abs], a.backing.elems[abs+1:]...)
	if a.isSlice {
		a.length--
	}
	return true
}

// Insert inserts v before local index i (i == Size() appends at the end).
func (a *ArrayValue) Insert(i int, v Value) bool {
	n := a.Size()
	if i < 0 {
		i += n
	}
	if i < 0 || i > n {
		return false
	}
	a.detachForStructuralChange()
	abs := a.Offset() + i
	a.backing.elems = append(a.backing.elems, nil)
	copy(a.backing.elems[abs+1:], a.backing.elems[abs:])
	a.backing.elems[abs] = v
	if a.isSlice {
		a.length++
	}
	return true
}

// IndexOf returns the first local index at which eq(elem, target) holds,
// or -1 if none matches (used by the reference `find` built-in).
func (a *ArrayValue) IndexOf(target Value, eq func(x, y Value) bool) int {
	n := a.Size()
	for i := 0; i < n; i++ {
		v, _ := a.Get(i)
		if eq(v, target) {
			return i
		}
	}
	return -1
}

// Equal implements structural array equality (§4.4 invariant: equality is
// by value, not identity).
func (a *ArrayValue) Equal(other *ArrayValue, eq func(x, y Value) bool) bool {
	if a.Size() != other.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		av, _ := a.Get(i)
		bv, _ := other.Get(i)
		if !eq(av, bv) {
			return false
		}
	}
	return true
}
