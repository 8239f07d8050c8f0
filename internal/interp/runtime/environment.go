package runtime

import "fmt"

// Environment is a lexical scope: a name-to-cell table plus a link to the
// enclosing scope, the same shape as the teacher's Environment (store +
// outer pointer) — generalized here to store *LValue cells rather than bare
// Values, since a cell is what carries const-ness and needs to be returned
// whole when an expression is evaluated as an assignment target.
type Environment struct {
	store map[string]*LValue
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]*LValue)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]*LValue), outer: outer}
}

// Outer returns the enclosing scope, or nil at the root.
func (e *Environment) Outer() *Environment { return e.outer }

// Lookup searches this scope and then its ancestors for name, returning
// the cell it is bound to.
func (e *Environment) Lookup(name string) (*LValue, bool) {
	if cell, ok := e.store[name]; ok {
		return cell, true
	}
	if e.outer != nil {
		return e.outer.Lookup(name)
	}
	return nil, false
}

// Define introduces name in THIS scope, shadowing any outer binding of the
// same name. Returns an error if name is already defined in this exact
// scope (§4.3 redeclaration rule — shadowing an outer scope is fine,
// redeclaring within the same scope is not).
func (e *Environment) Define(name string, v Value, isConst bool) (*LValue, error) {
	if _, exists := e.store[name]; exists {
		return nil, fmt.Errorf("%q is already defined in this scope", name)
	}
	cell := newVarCell(v, isConst)
	e.store[name] = cell
	return cell, nil
}

// DefineBuiltin installs a built-in as a const binding in this scope
// (normally the root environment). Built-ins may never be rebound, so this
// uses the same const cell machinery as a `const` declaration.
func (e *Environment) DefineBuiltin(name string, v Value) {
	e.store[name] = newVarCell(v, true)
}
