package evaluator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// renderEnv formats the named bindings, looked up through env's scope
// chain, as "name = value" lines in the order the names are given, so the
// snapshot is deterministic; an unbound name renders as "<unbound>".
func renderEnv(env *runtime.Environment, names ...string) string {
	lines := make([]string, 0, len(names))
	for _, n := range names {
		cell, ok := env.Lookup(n)
		val := "<unbound>"
		if ok {
			val = runtime.ToString(cell.Get())
		}
		lines = append(lines, fmt.Sprintf("%s = %s", n, val))
	}
	return strings.Join(lines, "\n")
}

// renderArray renders an array's elements as a comma-joined string of their
// to_string forms, for snapshotting array-shaped results.
func renderArray(v runtime.Value) string {
	arr, ok := v.(*runtime.ArrayValue)
	if !ok {
		return runtime.ToString(v)
	}
	parts := make([]string, arr.Size())
	for i := range parts {
		e, _ := arr.Get(i)
		parts[i] = runtime.ToString(e)
	}
	return strings.Join(parts, ", ")
}

// TestSnapshotOperatorPrecedence covers the full precedence ladder end to
// end against a recorded baseline rather than a single hand-picked value.
func TestSnapshotOperatorPrecedence(t *testing.T) {
	env := runScript(t, `
var a = 2 + 3 * 4 - 6 / 2;
var b = (2 + 3) * (4 - 6) / 2;
var c = 1 < 2 && 3 > 2 || 0;
var d = ~2 & 3 | 4;
`)
	snaps.MatchSnapshot(t, "operator_precedence", renderEnv(env, "a", "b", "c", "d"))
}

// TestSnapshotSliceAppendIndependence records the COW invariant that
// appending to the original array never disturbs an already-taken slice.
func TestSnapshotSliceAppendIndependence(t *testing.T) {
	env := runScript(t, `
var a = [1, 2, 3, 4, 5];
var s = a[1:4];
append(a, 99);
append(a, 100);
`)
	sliceVal := lookup(t, env, "s")
	arrVal := lookup(t, env, "a")
	out := fmt.Sprintf("slice = [%s]\narray = [%s]", renderArray(sliceVal), renderArray(arrVal))
	snaps.MatchSnapshot(t, "slice_append_independence", out)
}

// TestSnapshotTryFinallyReturnInteraction records the rule that a return
// inside finally overrides whatever the try block was returning, across a
// small family of return-vs-no-return finally combinations.
func TestSnapshotTryFinallyReturnInteraction(t *testing.T) {
	env := runScript(t, `
func f1() {
	try {
		return 1;
	} finally {
		return 2;
	}
}
func f2() {
	try {
		return 1;
	} finally {
		var noop = 0;
	}
}
var r1 = f1();
var r2 = f2();
`)
	snaps.MatchSnapshot(t, "try_finally_return_interaction", renderEnv(env, "r1", "r2"))
}

// TestSnapshotCustomExceptionPayload records the shape of a user-defined
// exception name/payload pair surviving a throw/catch/rethrow round trip.
func TestSnapshotCustomExceptionPayload(t *testing.T) {
	env := runScript(t, `
var seen = [];
try {
	try {
		throw exception("ValidationError", "field must not be empty");
	} catch (ValidationError as e) {
		append(seen, exdata(e));
		rethrow;
	}
} catch (ValidationError as e) {
	append(seen, exdata(e));
}
`)
	seen := lookup(t, env, "seen")
	snaps.MatchSnapshot(t, "custom_exception_payload", renderArray(seen))
}

// TestSnapshotStringSliceAndSubscript records negative-index and
// open-ended string slicing together.
func TestSnapshotStringSliceAndSubscript(t *testing.T) {
	env := runScript(t, `
var s = "hello world";
var firstWord = s[0:5];
var lastWord = s[6:];
var lastChar = s[-1:];
`)
	snaps.MatchSnapshot(t, "string_slice_and_subscript", renderEnv(env, "firstWord", "lastWord", "lastChar"))
}

// TestSnapshotForeachIndexedOverSortedDictKeys records an indexed foreach
// over an array of sorted dictionary keys, a composition of foreach,
// sort and dict the evaluator has to get right together, not just alone.
func TestSnapshotForeachIndexedOverSortedDictKeys(t *testing.T) {
	env := runScript(t, `
var d = {"banana": 2, "apple": 1, "cherry": 3};
var ks = keys(d);
var sorted = sort(ks);
var lines = [];
foreach (i, k in indexed sorted) {
	append(lines, str(i) + ":" + k + "=" + str(d[k]));
}
`)
	lines := lookup(t, env, "lines")
	snaps.MatchSnapshot(t, "foreach_indexed_over_sorted_dict_keys", renderArray(lines))
}
