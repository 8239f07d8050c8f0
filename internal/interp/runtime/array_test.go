package runtime_test

import (
	"math"
	"testing"

	"github.com/cwbudde/go-script/internal/interp/runtime"
)

func ints(vs ...int64) []runtime.Value {
	out := make([]runtime.Value, len(vs))
	for i, v := range vs {
		out[i] = runtime.Int{Value: v}
	}
	return out
}

func TestArraySliceIndependentAfterMutation(t *testing.T) {
	// §8 invariant: slicing an array then mutating the original leaves the
	// slice unchanged, and their intptr values diverge once that happens.
	a := runtime.NewArray(ints(1, 2, 3, 4, 5))
	one := 1
	three := 3
	s := a.Slice(&one, &three) // [2, 3]

	if s.Size() != 2 {
		t.Fatalf("want slice size 2, got %d", s.Size())
	}
	before := a.IntPtr()
	if s.IntPtr() != before {
		t.Fatalf("freshly taken slice should share intptr with its backing")
	}

	a.Put(1, runtime.Int{Value: 99})

	v, _ := s.Get(0)
	if iv, ok := v.(runtime.Int); !ok || iv.Value != 2 {
		t.Errorf("slice element should be unaffected by original mutation, got %v", v)
	}
	if s.IntPtr() == a.IntPtr() {
		t.Errorf("slice and original should have diverged intptr after the mutating Put")
	}
}

func TestArraySliceMatchesElementAccess(t *testing.T) {
	// §8 invariant: a[i] == a[i:i+1][0].
	a := runtime.NewArray(ints(10, 20, 30))
	two := 2
	three := 3
	s := a.Slice(&two, &three)
	direct, _ := a.Get(2)
	sliced, _ := s.Get(0)
	if !runtime.Equal(direct, sliced) {
		t.Errorf("a[2] (%v) should equal a[2:3][0] (%v)", direct, sliced)
	}
}

func TestArrayOfSizeNAllNone(t *testing.T) {
	elems := make([]runtime.Value, 5)
	for i := range elems {
		elems[i] = runtime.NoneValue
	}
	a := runtime.NewArray(elems)
	if a.Size() != 5 {
		t.Fatalf("want len 5, got %d", a.Size())
	}
	for i := 0; i < 5; i++ {
		v, ok := a.Get(i)
		if !ok {
			t.Fatalf("element %d missing", i)
		}
		if _, isNone := v.(runtime.None); !isNone {
			t.Errorf("element %d should be none, got %v", i, v)
		}
	}
}

func TestArrayNegativeIndex(t *testing.T) {
	a := runtime.NewArray(ints(1, 2, 3))
	v, ok := a.Get(-1)
	if !ok {
		t.Fatalf("want negative index to resolve")
	}
	if iv := v.(runtime.Int); iv.Value != 3 {
		t.Errorf("want last element 3, got %d", iv.Value)
	}
}

func TestArrayCloneIsIndependentBacking(t *testing.T) {
	a := runtime.NewArray(ints(1, 2, 3))
	clone := runtime.Clone(a).(*runtime.ArrayValue)
	if clone.IntPtr() == a.IntPtr() {
		t.Fatalf("clone should have its own backing, got shared intptr")
	}
	a.Put(0, runtime.Int{Value: 100})
	v, _ := clone.Get(0)
	if iv := v.(runtime.Int); iv.Value != 1 {
		t.Errorf("clone should be unaffected by mutation of the original, got %d", iv.Value)
	}
}

func TestArrayCopyHeaderSharesBacking(t *testing.T) {
	// Plain assignment (CopyHeader) deliberately shares the backing,
	// unlike clone().
	a := runtime.NewArray(ints(1, 2, 3))
	cp := a.CopyHeader()
	if cp.IntPtr() != a.IntPtr() {
		t.Fatalf("CopyHeader should share the same backing intptr")
	}
}

func TestArrayAppendDetachesSlice(t *testing.T) {
	a := runtime.NewArray(ints(1, 2, 3))
	zero := 0
	two := 2
	s := a.Slice(&zero, &two) // [1, 2], still a slice view

	s.Append(runtime.Int{Value: 42})

	if s.Size() != 3 {
		t.Fatalf("want size 3 after append, got %d", s.Size())
	}
	if a.Size() != 3 {
		t.Errorf("appending to the slice should not grow the original, got size %d", a.Size())
	}
}

func TestArrayPopErraseInsert(t *testing.T) {
	a := runtime.NewArray(ints(1, 2, 3))
	last, ok := a.Pop()
	if !ok || last.(runtime.Int).Value != 3 {
		t.Fatalf("want popped 3, got %v ok=%v", last, ok)
	}
	if a.Size() != 2 {
		t.Fatalf("want size 2 after pop, got %d", a.Size())
	}

	if !a.Erase(0) {
		t.Fatalf("erase(0) should succeed")
	}
	v, _ := a.Get(0)
	if v.(runtime.Int).Value != 2 {
		t.Errorf("want remaining element 2, got %v", v)
	}

	if !a.Insert(0, runtime.Int{Value: 7}) {
		t.Fatalf("insert(0) should succeed")
	}
	v, _ = a.Get(0)
	if v.(runtime.Int).Value != 7 {
		t.Errorf("want inserted 7 at index 0, got %v", v)
	}
}

func TestArrayIndexOf(t *testing.T) {
	a := runtime.NewArray(ints(5, 6, 7))
	idx := a.IndexOf(runtime.Int{Value: 6}, runtime.Equal)
	if idx != 1 {
		t.Errorf("want index 1, got %d", idx)
	}
	idx = a.IndexOf(runtime.Int{Value: 99}, runtime.Equal)
	if idx != -1 {
		t.Errorf("want -1 for missing target, got %d", idx)
	}
}

func TestArrayEqualityIsStructural(t *testing.T) {
	a := runtime.NewArray(ints(1, 2, 3))
	b := runtime.NewArray(ints(1, 2, 3))
	if a.IntPtr() == b.IntPtr() {
		t.Fatalf("test setup should produce distinct backings")
	}
	if !runtime.Equal(a, b) {
		t.Errorf("arrays with equal elements should compare equal regardless of identity")
	}
}

func TestEqualReflexiveExceptNaN(t *testing.T) {
	// §8 invariant: equality is reflexive except for NaN.
	a := runtime.NewArray(ints(1, 2, 3))
	if !runtime.Equal(a, a) {
		t.Errorf("array should equal itself")
	}
	if !runtime.Equal(runtime.Int{Value: 5}, runtime.Int{Value: 5}) {
		t.Errorf("equal ints should compare equal")
	}
	nan := runtime.Float{Value: math.NaN()}
	if runtime.Equal(nan, nan) {
		t.Errorf("NaN should not equal itself")
	}
}
