/*
Package environment implements govox's lexically scoped environment
chain: a name→value map with an optional parent, modeling one lexical
scope.

Grounded closely on go-mix/scope/scope.go's LookUp/Bind/Assign
chain-walking methods and lazy map initialization, with GoMix's
Consts/LetVars/LetTypes bookkeeping dropped — govox has only `var`.
GoMix's Copy() (a shallow-copy-for-closures helper) is dropped too: a
govox function closes over a live *Environment pointer directly, by
shared reference, so later mutations of the captured frame stay visible
through the closure — the classic counter-closure pattern depends on it.
*/
package environment

import "github.com/govox-lang/govox/internal/value"

// Environment is one lexical scope frame.
type Environment struct {
	values map[string]value.Value
	parent *Environment
}

// New creates a child environment of parent (nil for the global scope).
func New(parent *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), parent: parent}
}

// Define always writes into this frame, even if the name already exists
// at an outer level — shadowing, never updating an enclosing binding.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get searches this frame then parents, returning an error if the name is
// undefined anywhere in the chain.
func (e *Environment) Get(name string) (value.Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, &UndefinedError{Name: name}
}

// Assign searches for an existing binding from this frame outward and
// updates it in the first frame that has it; it does not create a new
// binding (use Define for that).
func (e *Environment) Assign(name string, v value.Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, v)
	}
	return &UndefinedError{Name: name}
}

// UndefinedError reports a Get/Assign against a name with no binding
// anywhere in the chain.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return "Undefined variable '" + e.Name + "'."
}
