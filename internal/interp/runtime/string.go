package runtime

import "strings"

// StringValue wraps an immutable Go string. Go strings already give O(1)
// substring sharing and are never mutated in place, so unlike arrays a
// string needs no backing/slice-registry split: every "mutation" (§4.4:
// concatenation, repetition, slicing) allocates a brand new Go string and
// wraps it in a fresh StringValue, which is exactly the contract spec.md
// requires without any extra bookkeeping.
type StringValue struct {
	Value string
}

func NewString(s string) *StringValue { return &StringValue{Value: s} }

func (*StringValue) Type() string        { return "string" }
func (s *StringValue) String() string    { return s.Value }
func (s *StringValue) Len() int          { return len(s.Value) }

// Index returns the byte at position i, resolving a negative index by
// counting from the end (§4.4 "negative-index wraparound").
func (s *StringValue) Index(i int) (byte, bool) {
	if i < 0 {
		i += len(s.Value)
	}
	if i < 0 || i >= len(s.Value) {
		return 0, false
	}
	return s.Value[i], true
}

// Slice returns s[start:end] with Python-style negative-index wraparound
// and clamping, per §4.4.
func (s *StringValue) Slice(start, end *int) *StringValue {
	n := len(s.Value)
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
	return NewString(s.Value[lo:hi])
}

func resolveBound(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Concat implements string + string.
func (s *StringValue) Concat(other *StringValue) *StringValue {
	return NewString(s.Value + other.Value)
}

// Repeat implements string * n. A negative or zero n yields the empty
// string (§4.4, Open Questions decision for negative counts).
func (s *StringValue) Repeat(n int64) *StringValue {
	if n <= 0 {
		return NewString("")
	}
	return NewString(strings.Repeat(s.Value, int(n)))
}

func (s *StringValue) Equal(other *StringValue) bool { return s.Value == other.Value }
func (s *StringValue) Compare(other *StringValue) int {
	return strings.Compare(s.Value, other.Value)
}

func (s *StringValue) Hash() string { return "s:" + s.Value }
