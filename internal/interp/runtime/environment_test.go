package runtime_test

import (
	"testing"

	"github.com/cwbudde/go-script/internal/interp/runtime"
)

func TestEnvironmentLookupWalksOuterScopes(t *testing.T) {
	root := runtime.NewEnvironment()
	root.Define("x", runtime.Int{Value: 1}, false)
	inner := runtime.NewEnclosedEnvironment(root)
	cell, ok := inner.Lookup("x")
	if !ok {
		t.Fatalf("want x visible from the enclosed scope")
	}
	if cell.Get().(runtime.Int).Value != 1 {
		t.Errorf("want x == 1, got %v", cell.Get())
	}
}

func TestEnvironmentShadowingDoesNotMutateOuter(t *testing.T) {
	root := runtime.NewEnvironment()
	root.Define("x", runtime.Int{Value: 1}, false)
	inner := runtime.NewEnclosedEnvironment(root)
	inner.Define("x", runtime.Int{Value: 2}, false)

	outerCell, _ := root.Lookup("x")
	innerCell, _ := inner.Lookup("x")
	if outerCell.Get().(runtime.Int).Value != 1 {
		t.Errorf("outer x should stay 1, got %v", outerCell.Get())
	}
	if innerCell.Get().(runtime.Int).Value != 2 {
		t.Errorf("inner x should shadow to 2, got %v", innerCell.Get())
	}
}

func TestEnvironmentRedeclareInSameScopeErrors(t *testing.T) {
	env := runtime.NewEnvironment()
	if _, err := env.Define("x", runtime.Int{Value: 1}, false); err != nil {
		t.Fatalf("first define should succeed: %v", err)
	}
	if _, err := env.Define("x", runtime.Int{Value: 2}, false); err == nil {
		t.Errorf("redeclaring x in the same scope should error")
	}
}

func TestConstCellRejectsAssignment(t *testing.T) {
	cell := runtime.NewVarCell(runtime.Int{Value: 1}, true)
	if err := cell.Set(runtime.Int{Value: 2}); err != runtime.ErrConstAssign {
		t.Errorf("want ErrConstAssign, got %v", err)
	}
}

func TestArrayElemCellRunsCOWProtocol(t *testing.T) {
	a := runtime.NewArray([]runtime.Value{runtime.Int{Value: 1}, runtime.Int{Value: 2}})
	one := 1
	two := 2
	s := a.Slice(&one, &two)

	cell := runtime.ArrayElemCell(a, 0)
	if err := cell.Set(runtime.Int{Value: 99}); err != nil {
		t.Fatalf("set should succeed: %v", err)
	}
	v, _ := a.Get(0)
	if v.(runtime.Int).Value != 99 {
		t.Errorf("want a[0] == 99, got %v", v)
	}
	sv, _ := s.Get(0)
	if sv.(runtime.Int).Value != 2 {
		t.Errorf("slice over index 1 should be unaffected, got %v", sv)
	}
}

func TestDictElemCellAutovivifies(t *testing.T) {
	d := runtime.NewDict()
	key := runtime.NewString("k")
	cell := runtime.DictElemCell(d, key)
	if _, isNone := cell.Get().(runtime.None); !isNone {
		t.Fatalf("want autovivified none before any write")
	}
	if err := cell.Set(runtime.Int{Value: 7}); err != nil {
		t.Fatalf("set should succeed: %v", err)
	}
	v, ok := d.Get(key)
	if !ok || v.(runtime.Int).Value != 7 {
		t.Errorf("want d[k] == 7, got %v ok=%v", v, ok)
	}
}
