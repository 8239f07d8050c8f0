package runtime

// Exception is the script-level exception value produced by `throw`,
// caught by `catch`, and constructed/inspected by the reference
// `exception`/`exdata` builtin pair (grounded in
// `original_source/src/exceptionobj.h`). It is a plain value like any
// other — catching by name matches against Name, and user code may throw
// any value at all (§4.3), not only an Exception.
type Exception struct {
	Name    string
	Payload Value
}

func NewException(name string, payload Value) *Exception {
	return &Exception{Name: name, Payload: payload}
}

func (*Exception) Type() string { return "exception" }

func (e *Exception) String() string {
	if e.Payload == nil || e.Payload == NoneValue {
		return e.Name + ": "
	}
	return e.Name + ": " + e.Payload.String()
}
