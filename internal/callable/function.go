/*
Package callable implements govox's user-defined function values: a
Function closes over the *environment.Environment active where it was
declared, so nested/returned functions keep reading and writing the
frame they were defined in rather than a snapshot of it.

Grounded on go-mix/function/function.go's field layout (Name/Params/
Body/Closure) and doc-comment density. go-mix's Call method invokes
its Evaluator directly by concrete type; here Call instead takes a small
Evaluator interface (defined in this package, next to its only consumer)
to keep internal/callable free of an import cycle back to internal/eval,
which in turn imports this package for the Function type.
*/
package callable

import (
	"github.com/govox-lang/govox/internal/ast"
	"github.com/govox-lang/govox/internal/environment"
	"github.com/govox-lang/govox/internal/lexer"
	"github.com/govox-lang/govox/internal/value"
)

// Evaluator is the callback surface a Function needs to run its body:
// bind arguments into a fresh child of Closure, execute Body, and unwrap
// any non-local return into a plain value.Value.
type Evaluator interface {
	CallFunction(fn *Function, args []value.Value) (value.Value, error)
}

// Function is a govox `fun` declaration together with the environment it
// closed over at the point of declaration.
type Function struct {
	Name    string
	Params  []lexer.Token
	Body    []ast.Stmt
	Closure *environment.Environment
}

func (f *Function) Type() value.Type { return value.TypeCallable }

// String renders the same "<fn NAME>" tag every callable uses.
func (f *Function) String() string { return value.FnTag(f.Name) }

// Arity is the declared parameter count; the evaluator checks call-site
// argument count against this before invoking Call.
func (f *Function) Arity() int { return len(f.Params) }

// Call delegates to ev, which owns the actual tree-walking logic.
func (f *Function) Call(ev Evaluator, args []value.Value) (value.Value, error) {
	return ev.CallFunction(f, args)
}
