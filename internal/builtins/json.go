package builtins

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-script/internal/ast"
	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
	"github.com/cwbudde/go-script/internal/interp/evaluator"
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// builtinJSONDecode implements `json_decode(s)` (SPEC_FULL.md DOMAIN
// STACK): parses a JSON string into nested array/dict script values using
// tidwall/gjson's path-free Parse/ForEach walk.
func builtinJSONDecode(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("json_decode", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*runtime.StringValue)
	if !ok {
		return nil, typeError(args[0].Start(), "json_decode() expects a string, got %s", v.Type())
	}
	if !json.Valid([]byte(s.Value)) {
		return nil, evaluator.Raise(ierrors.InvalidArgument, args[0].Start(), "json_decode(): invalid JSON")
	}
	return gjsonToValue(gjson.Parse(s.Value)), nil
}

func gjsonToValue(r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.NoneValue
	case gjson.False:
		return runtime.Int{Value: 0}
	case gjson.True:
		return runtime.Int{Value: 1}
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return runtime.Int{Value: n}
			}
		}
		return runtime.Float{Value: r.Num}
	case gjson.String:
		return runtime.NewString(r.String())
	default: // gjson.JSON: array or object
		if r.IsArray() {
			elems := r.Array()
			out := make([]runtime.Value, len(elems))
			for i, e := range elems {
				out[i] = gjsonToValue(e)
			}
			return runtime.NewArray(out)
		}
		d := runtime.NewDict()
		r.ForEach(func(key, value gjson.Result) bool {
			d.Set(runtime.NewString(key.String()), gjsonToValue(value))
			return true
		})
		return d
	}
}

// builtinJSONEncode implements `json_encode(v)`: serializes a script value
// back to a JSON string by building it incrementally with
// tidwall/sjson.SetRaw, one element/field at a time.
func builtinJSONEncode(ev *evaluator.Evaluator, env *runtime.Environment, args []ast.Expression) (runtime.Value, error) {
	if err := arity("json_encode", args, 1); err != nil {
		return nil, err
	}
	v, err := evalArg(ev, env, args, 0)
	if err != nil {
		return nil, err
	}
	raw, err := encodeJSONValue(v, args[0])
	if err != nil {
		return nil, err
	}
	return runtime.NewString(raw), nil
}

func encodeJSONValue(v runtime.Value, expr ast.Expression) (string, error) {
	switch x := v.(type) {
	case runtime.None:
		return "null", nil
	case runtime.Int:
		return strconv.FormatInt(x.Value, 10), nil
	case runtime.Float:
		return strconv.FormatFloat(x.Value, 'g', -1, 64), nil
	case *runtime.StringValue:
		b, err := json.Marshal(x.Value)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case *runtime.ArrayValue:
		out := "[]"
		n := x.Size()
		for i := 0; i < n; i++ {
			elem, _ := x.Get(i)
			raw, err := encodeJSONValue(elem, expr)
			if err != nil {
				return "", err
			}
			var serr error
			out, serr = sjson.SetRaw(out, strconv.Itoa(i), raw)
			if serr != nil {
				return "", serr
			}
		}
		return out, nil
	case *runtime.DictValue:
		out := "{}"
		for _, pair := range x.Pairs() {
			raw, err := encodeJSONValue(pair[1], expr)
			if err != nil {
				return "", err
			}
			var serr error
			out, serr = sjson.SetRaw(out, pair[0].String(), raw)
			if serr != nil {
				return "", serr
			}
		}
		return out, nil
	default:
		return "", typeError(expr.Start(), "json_encode() cannot serialize value of type %s", v.Type())
	}
}
