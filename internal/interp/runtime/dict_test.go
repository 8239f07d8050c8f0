package runtime_test

import (
	"testing"

	"github.com/cwbudde/go-script/internal/interp/runtime"
)

func TestDictAutovivification(t *testing.T) {
	d := runtime.NewDict()
	key := runtime.NewString("missing")
	if _, ok := d.Get(key); ok {
		t.Fatalf("key should not be present yet")
	}
	v := d.Ensure(key)
	if _, isNone := v.(runtime.None); !isNone {
		t.Errorf("autovivified value should default to none, got %v", v)
	}
	if got, ok := d.Get(key); !ok || !runtime.Equal(got, runtime.NoneValue) {
		t.Errorf("autovivified key should now be retrievable as none")
	}
	if d.Len() != 1 {
		t.Errorf("want len 1 after autovivifying one key, got %d", d.Len())
	}
}

func TestDictSetOverwritesInPlace(t *testing.T) {
	d := runtime.NewDict()
	key := runtime.NewString("a")
	d.Set(key, runtime.Int{Value: 1})
	d.Set(key, runtime.Int{Value: 2})
	if d.Len() != 1 {
		t.Fatalf("overwriting an existing key should not grow the dict, got len %d", d.Len())
	}
	v, _ := d.Get(key)
	if v.(runtime.Int).Value != 2 {
		t.Errorf("want overwritten value 2, got %v", v)
	}
}

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := runtime.NewDict()
	d.Set(runtime.NewString("z"), runtime.Int{Value: 1})
	d.Set(runtime.NewString("a"), runtime.Int{Value: 2})
	d.Set(runtime.NewString("m"), runtime.Int{Value: 3})
	keys := d.Keys()
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("want %d keys, got %d", len(want), len(keys))
	}
	for i, k := range keys {
		if k.(*runtime.StringValue).Value != want[i] {
			t.Errorf("key %d: want %q, got %q", i, want[i], k.(*runtime.StringValue).Value)
		}
	}
}

func TestDictDeleteRemovesFromOrder(t *testing.T) {
	d := runtime.NewDict()
	d.Set(runtime.NewString("a"), runtime.Int{Value: 1})
	d.Set(runtime.NewString("b"), runtime.Int{Value: 2})
	if !d.Delete(runtime.NewString("a")) {
		t.Fatalf("delete of a present key should report true")
	}
	if d.Delete(runtime.NewString("a")) {
		t.Errorf("deleting an already-removed key should report false")
	}
	if d.Len() != 1 {
		t.Fatalf("want len 1 after delete, got %d", d.Len())
	}
	keys := d.Keys()
	if len(keys) != 1 || keys[0].(*runtime.StringValue).Value != "b" {
		t.Errorf("want remaining key b, got %v", keys)
	}
}

func TestDictCopyHeaderIsIndependent(t *testing.T) {
	d := runtime.NewDict()
	d.Set(runtime.NewString("a"), runtime.Int{Value: 1})
	cp := d.CopyHeader()
	cp.Set(runtime.NewString("a"), runtime.Int{Value: 99})
	v, _ := d.Get(runtime.NewString("a"))
	if v.(runtime.Int).Value != 1 {
		t.Errorf("original dict should be unaffected by mutating the copy, got %v", v)
	}
}

func TestDictNoneIsHashable(t *testing.T) {
	d := runtime.NewDict()
	d.Set(runtime.NoneValue, runtime.Int{Value: 42})
	v, ok := d.Get(runtime.NoneValue)
	if !ok {
		t.Fatalf("none should be usable as a dict key")
	}
	if v.(runtime.Int).Value != 42 {
		t.Errorf("want 42, got %v", v)
	}
}
