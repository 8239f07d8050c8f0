package runtime_test

import (
	"testing"

	"github.com/cwbudde/go-script/internal/interp/runtime"
)

func TestStringSliceNegativeIndexWraparound(t *testing.T) {
	s := runtime.NewString("hello")
	neg1 := -1
	got := s.Slice(&neg1, nil)
	if got.Value != "o" {
		t.Errorf("want %q, got %q", "o", got.Value)
	}
}

func TestStringSliceClampsOutOfRangeBounds(t *testing.T) {
	s := runtime.NewString("hi")
	lo := -100
	hi := 100
	got := s.Slice(&lo, &hi)
	if got.Value != "hi" {
		t.Errorf("want full string, got %q", got.Value)
	}
}

func TestStringConcatIsFreshAllocation(t *testing.T) {
	a := runtime.NewString("foo")
	b := runtime.NewString("bar")
	c := a.Concat(b)
	if c.Value != "foobar" {
		t.Errorf("want foobar, got %q", c.Value)
	}
	if a.Value != "foo" || b.Value != "bar" {
		t.Errorf("operands must stay untouched, got %q %q", a.Value, b.Value)
	}
}

func TestStringRepeatNonPositiveYieldsEmpty(t *testing.T) {
	s := runtime.NewString("ab")
	if got := s.Repeat(0); got.Value != "" {
		t.Errorf("want empty string for n=0, got %q", got.Value)
	}
	if got := s.Repeat(-3); got.Value != "" {
		t.Errorf("want empty string for negative n, got %q", got.Value)
	}
	if got := s.Repeat(3); got.Value != "ababab" {
		t.Errorf("want ababab, got %q", got.Value)
	}
}

func TestStringIndexNegativeWraparound(t *testing.T) {
	s := runtime.NewString("abc")
	b, ok := s.Index(-1)
	if !ok || b != 'c' {
		t.Errorf("want 'c', got %q ok=%v", b, ok)
	}
	if _, ok := s.Index(3); ok {
		t.Errorf("want out-of-range index to report false")
	}
}

func TestStringHashDistinguishesValues(t *testing.T) {
	a := runtime.NewString("x")
	b := runtime.NewString("x")
	c := runtime.NewString("y")
	if a.Hash() != b.Hash() {
		t.Errorf("equal strings must hash equal")
	}
	if a.Hash() == c.Hash() {
		t.Errorf("different strings must not collide here")
	}
}

func TestCloneOnStringDictArrayIsIndependent(t *testing.T) {
	s := runtime.NewString("orig")
	sc := runtime.Clone(s).(*runtime.StringValue)
	if sc.Value != "orig" {
		t.Errorf("want clone to carry the same text, got %q", sc.Value)
	}

	d := runtime.NewDict()
	d.Set(runtime.NewString("k"), runtime.Int{Value: 1})
	dc := runtime.Clone(d).(*runtime.DictValue)
	dc.Set(runtime.NewString("k"), runtime.Int{Value: 2})
	v, _ := d.Get(runtime.NewString("k"))
	if v.(runtime.Int).Value != 1 {
		t.Errorf("cloning a dict must not let writes through the clone touch the original, got %v", v)
	}
}

func TestEqualCrossNumericTypes(t *testing.T) {
	if !runtime.Equal(runtime.Int{Value: 2}, runtime.Float{Value: 2.0}) {
		t.Errorf("int 2 should equal float 2.0")
	}
	if runtime.Equal(runtime.Int{Value: 2}, runtime.NewString("2")) {
		t.Errorf("int should never equal a string, even with matching text")
	}
}

func TestCompareStringsLexicographic(t *testing.T) {
	c, err := runtime.Compare(runtime.NewString("abc"), runtime.NewString("abd"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf("want abc < abd, got comparison %d", c)
	}
}

func TestCompareIncomparableTypesErrors(t *testing.T) {
	if _, err := runtime.Compare(runtime.NewDict(), runtime.NewDict()); err == nil {
		t.Errorf("want an error comparing two dictionaries")
	}
}
