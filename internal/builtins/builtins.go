/*
Package builtins implements govox's three native callables — clock,
floor, substring — registered directly into the global environment.

Grounded on go-mix/std/builtins.go's Builtin{Name, Callback} shape and
go-mix/std/common.go's package-level registration slice, narrowed to
exactly govox's three functions. Unicode-scalar slicing for substring
uses a []rune conversion, the same unit the lexer scans source in —
one consistent unit applied identically everywhere.
*/
package builtins

import (
	"fmt"
	"math"
	"time"

	"github.com/govox-lang/govox/internal/environment"
	"github.com/govox-lang/govox/internal/value"
)

// Fn is a native function body: already-evaluated arguments in, a
// value.Value or error out.
type Fn func(args []value.Value) (value.Value, error)

// Builtin is one native callable.
type Builtin struct {
	Name   string
	ArityN int
	Fn     Fn
}

func (b *Builtin) Type() value.Type { return value.TypeCallable }
func (b *Builtin) String() string   { return value.FnTag(b.Name) }
func (b *Builtin) Arity() int       { return b.ArityN }

// Call runs the native body directly; builtins need no evaluator
// callback, unlike user-defined callable.Function values.
func (b *Builtin) Call(args []value.Value) (value.Value, error) {
	return b.Fn(args)
}

// nowSeconds is swappable in tests so clock() doesn't depend on wall
// clock time.
var nowSeconds = func() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Register defines clock, floor, and substring into env.
func Register(env *environment.Environment) {
	for _, b := range All() {
		env.Define(b.Name, b)
	}
}

// All returns the three builtins, freshly constructed; Register defines
// each of them.
func All() []*Builtin {
	return []*Builtin{clockBuiltin(), floorBuiltin(), substringBuiltin()}
}

func clockBuiltin() *Builtin {
	return &Builtin{
		Name:   "clock",
		ArityN: 0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(nowSeconds()), nil
		},
	}
}

func floorBuiltin() *Builtin {
	return &Builtin{
		Name:   "floor",
		ArityN: 1,
		Fn: func(args []value.Value) (value.Value, error) {
			n, ok := args[0].(value.Number)
			if !ok {
				return nil, fmt.Errorf("floor() argument must be a number.")
			}
			return value.Number(math.Floor(float64(n))), nil
		},
	}
}

// substringBuiltin implements substring(s, i, j): the half-open
// Unicode-scalar range [i, j) of s. i and j are truncated toward zero to
// integers; i < 0 or j > len(s) (in runes) is a runtime error, and
// otherwise j ≤ i yields "" rather than an error.
func substringBuiltin() *Builtin {
	return &Builtin{
		Name:   "substring",
		ArityN: 3,
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, fmt.Errorf("substring() first argument must be a string.")
			}
			iN, ok := args[1].(value.Number)
			if !ok {
				return nil, fmt.Errorf("substring() second argument must be a number.")
			}
			jN, ok := args[2].(value.Number)
			if !ok {
				return nil, fmt.Errorf("substring() third argument must be a number.")
			}

			runes := []rune(string(s))
			i, j := int(iN), int(jN)
			if i < 0 || j > len(runes) {
				return nil, fmt.Errorf("substring() index out of range.")
			}
			if j <= i {
				return value.Str(""), nil
			}
			return value.Str(string(runes[i:j])), nil
		},
	}
}
