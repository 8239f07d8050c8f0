package runtime

import "fmt"

// ArithError / CompareError are returned (rather than panicking) when an
// operator is applied to an unsupported type combination; the evaluator
// turns these into the catalogued `type-error` (internal/interp/errors).
type ArithError struct{ Op, Left, Right string }

func (e *ArithError) Error() string {
	return fmt.Sprintf("unsupported operand types for %s: %s and %s", e.Op, e.Left, e.Right)
}

// ToString renders any value using its own String(), the single dispatch
// point §4.4 calls `to_string`.
func ToString(v Value) string { return v.String() }

// Len implements the `len` dispatch operation for every tag it applies to.
func Len(v Value) (int, error) {
	switch x := v.(type) {
	case *StringValue:
		return x.Len(), nil
	case *ArrayValue:
		return x.Size(), nil
	case *DictValue:
		return x.Len(), nil
	default:
		return 0, &ArithError{Op: "len", Left: v.Type(), Right: ""}
	}
}

// Hash implements the `hash` dispatch operation; only the hashable tags
// (none, int, float, string) participate.
func Hash(v Value) (string, bool) { return HashKey(v) }

// Clone implements the `clone` dispatch operation: trivial tags clone by
// value automatically (Go copies them when assigned), shared tags get an
// explicit independent-backing copy.
func Clone(v Value) Value {
	switch x := v.(type) {
	case *ArrayValue:
		// A clone always gets its own independent backing, unlike a plain
		// assignment (CopyHeader) which deliberately shares it.
		elems := make([]Value, x.Size())
		for i := 0; i < x.Size(); i++ {
			elems[i], _ = x.Get(i)
		}
		return NewArray(elems)
	case *DictValue:
		return x.CopyHeader()
	case *StringValue:
		return NewString(x.Value)
	default:
		return v // trivial tags: Go's value semantics already give an independent copy
	}
}

// Add implements `+` across every supported combination (§4.4).
func Add(l, r Value) (Value, error) {
	switch lv := l.(type) {
	case Int:
		switch rv := r.(type) {
		case Int:
			return Int{lv.Value + rv.Value}, nil
		case Float:
			return Float{float64(lv.Value) + rv.Value}, nil
		}
	case Float:
		switch rv := r.(type) {
		case Int:
			return Float{lv.Value + float64(rv.Value)}, nil
		case Float:
			return Float{lv.Value + rv.Value}, nil
		}
	case *StringValue:
		return lv.Concat(NewString(ToString(r))), nil
	case *ArrayValue:
		if rv, ok := r.(*ArrayValue); ok {
			return lv.Concat(rv), nil
		}
	}
	return nil, &ArithError{Op: "+", Left: l.Type(), Right: r.Type()}
}

// numeric applies intOp/floatOp across the int/float combinations,
// erroring for anything else — the shared shape behind Sub/Mul/Div/Mod.
func numeric(op string, l, r Value, intOp func(a, b int64) (int64, error), floatOp func(a, b float64) float64) (Value, error) {
	li, lIsInt := l.(Int)
	ri, rIsInt := r.(Int)
	if lIsInt && rIsInt {
		v, err := intOp(li.Value, ri.Value)
		if err != nil {
			return nil, err
		}
		return Int{v}, nil
	}
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		return Float{floatOp(lf, rf)}, nil
	}
	return nil, &ArithError{Op: op, Left: l.Type(), Right: r.Type()}
}

func asFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x.Value), true
	case Float:
		return x.Value, true
	default:
		return 0, false
	}
}

var ErrDivByZero = fmt.Errorf("division by zero")

func Sub(l, r Value) (Value, error) {
	return numeric("-", l, r, func(a, b int64) (int64, error) { return a - b, nil }, func(a, b float64) float64 { return a - b })
}

func Mul(l, r Value) (Value, error) {
	return numeric("*", l, r, func(a, b int64) (int64, error) { return a * b, nil }, func(a, b float64) float64 { return a * b })
}

func Div(l, r Value) (Value, error) {
	return numeric("/", l, r,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivByZero
			}
			return a / b, nil
		},
		func(a, b float64) float64 { return a / b })
}

func Mod(l, r Value) (Value, error) {
	return numeric("%", l, r,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivByZero
			}
			return a % b, nil
		},
		func(a, b float64) float64 {
			for a >= b {
				a -= b
			}
			return a
		})
}

// Mult implements `string * n` / `n * string` repetition (n<0 yields
// empty, per the Open Questions decision). Array * n is left unsupported
// (also an Open Questions decision) and falls through to an error.
func Mult(l, r Value) (Value, error) {
	if s, ok := l.(*StringValue); ok {
		if n, ok := r.(Int); ok {
			return s.Repeat(n.Value), nil
		}
	}
	if s, ok := r.(*StringValue); ok {
		if n, ok := l.(Int); ok {
			return s.Repeat(n.Value), nil
		}
	}
	return Mul(l, r)
}

// Equal implements `==` (§4.4: none only equals none; dissimilar types are
// unequal unless both sides carry comparison semantics that agree).
func Equal(l, r Value) bool {
	switch lv := l.(type) {
	case None:
		_, ok := r.(None)
		return ok
	case Int:
		switch rv := r.(type) {
		case Int:
			return lv.Value == rv.Value
		case Float:
			return float64(lv.Value) == rv.Value
		}
		return false
	case Float:
		switch rv := r.(type) {
		case Int:
			return lv.Value == float64(rv.Value)
		case Float:
			return lv.Value == rv.Value
		}
		return false
	case *StringValue:
		rv, ok := r.(*StringValue)
		return ok && lv.Equal(rv)
	case *ArrayValue:
		rv, ok := r.(*ArrayValue)
		return ok && lv.Equal(rv, Equal)
	case *Exception:
		rv, ok := r.(*Exception)
		return ok && lv.Name == rv.Name && Equal(lv.Payload, rv.Payload)
	default:
		return l == r
	}
}

// Compare implements `< > <= >=`, returning an error for uncomparable
// combinations (dictionaries, functions, exceptions, ...).
func Compare(l, r Value) (int, error) {
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if ls, ok := l.(*StringValue); ok {
		if rs, ok := r.(*StringValue); ok {
			return ls.Compare(rs), nil
		}
	}
	return 0, &ArithError{Op: "compare", Left: l.Type(), Right: r.Type()}
}

// Neg implements unary `-`.
func Neg(v Value) (Value, error) {
	switch x := v.(type) {
	case Int:
		return Int{-x.Value}, nil
	case Float:
		return Float{-x.Value}, nil
	default:
		return nil, &ArithError{Op: "unary-", Left: v.Type(), Right: ""}
	}
}

// BitNot implements unary `~` (bitwise complement, integers only).
func BitNot(v Value) (Value, error) {
	x, ok := v.(Int)
	if !ok {
		return nil, &ArithError{Op: "~", Left: v.Type(), Right: ""}
	}
	return Int{^x.Value}, nil
}
