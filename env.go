// env.go — runtime environments.
//
// An Env is one frame of the lexical scope chain: a name→value table plus a
// parent link. A frame is created on every block, function call and class
// body; closures keep their defining frame alive past the activation that
// created it, so frames are shared, garbage-collected values rather than a
// strict ownership tree.
package lox

import "fmt"

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward; GetAt/SetAt jump directly to a frame a known number of hops
// up, which is how the interpreter consumes the resolver's depth table.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
// Defining an already-bound name overwrites it.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}

// Set updates the nearest existing binding of name to v. If no binding exists
// in any visible frame, Set returns an error (it does not implicitly define).
func (e *Env) Set(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Set(name, v)
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// ancestor returns the frame exactly depth hops up the parent chain. The
// resolver guarantees the chain is deep enough for every depth it records.
func (e *Env) ancestor(depth int) *Env {
	env := e
	for i := 0; i < depth; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the frame depth hops up, bypassing textual lookup.
func (e *Env) GetAt(depth int, name string) (Value, error) {
	env := e.ancestor(depth)
	if v, ok := env.table[name]; ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}

// SetAt writes name in the frame depth hops up.
func (e *Env) SetAt(depth int, name string, v Value) error {
	env := e.ancestor(depth)
	if _, ok := env.table[name]; ok {
		env.table[name] = v
		return nil
	}
	return fmt.Errorf("undefined variable: %s", name)
}
