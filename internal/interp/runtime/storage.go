package runtime

// CopyForStorage is the explicit stand-in for the C++ original's implicit
// copy constructor (§9 design note): every point that moves a value into
// new storage — a variable binding, a parameter, an array/dict element —
// calls this so an array value shares its backing rather than its header
// with whatever held it before, and a dictionary value gets a new entry
// map. Returned values are not copied. Trivial tags pass through
// unchanged: Go already copies their field values on assignment.
func CopyForStorage(v Value) Value {
	switch x := v.(type) {
	case *ArrayValue:
		return x.CopyHeader()
	case *DictValue:
		return x.CopyHeader()
	default:
		return v
	}
}
