/*
Package eval implements govox's tree-walking evaluator: it walks the AST
produced by internal/parser, maintains a chain of internal/environment
frames, and invokes internal/callable.Function and
internal/builtins.Builtin values.

Grounded on go-mix/eval/evaluator.go's Evaluator struct shape
(SetWriter/SetReader, NewEvaluator constructor) and CallFunction/
RegisterFunction naming, adapted from GoMix's dozen-object value model
down to govox's five-value model with closures.

return's non-local exit is a returnSignal threaded as a second return
value out of statement evaluation (checked after every block statement,
loop iteration, and function body), grounded on go-mix/eval/
eval_helpers.go's UnwrapReturnValue/*std.ReturnValue wrapper — the same
"sentinel checked after each statement" idea, done as a typed second
return instead of panic/recover, which keeps a dedicated result carrier
threaded through evaluator frames rather than relying on exceptions.

Runtime errors are plain *RuntimeError Go errors, propagated as ordinary
error returns and caught once at the top of Interpret — not
panic/recover, which go-mix itself reserves only for the CLI's outermost
safety net (go-mix/main/main.go's executeFileWithRecovery), never for
routine evaluator control flow.
*/
package eval

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/govox-lang/govox/internal/ast"
	"github.com/govox-lang/govox/internal/builtins"
	"github.com/govox-lang/govox/internal/callable"
	"github.com/govox-lang/govox/internal/environment"
	"github.com/govox-lang/govox/internal/session"
	"github.com/govox-lang/govox/internal/value"
)

// returnSignal is the non-payload-carrying-by-panic carrier a `return`
// statement produces; it unwinds statement evaluation up to the nearest
// enclosing function call without ever touching the error channel.
type returnSignal struct {
	Value value.Value
}

// Evaluator walks statements against a chain of environment frames. One
// Evaluator is created per Session so every run (REPL session, server
// connection, file, test fixture) gets its own global frame and its own
// flags; lines within one REPL session share it.
type Evaluator struct {
	Globals *environment.Environment
	Session *session.Session

	Stdout io.Writer
	Stderr io.Writer
	Stdin  *bufio.Reader
}

// New creates an Evaluator with the three builtins registered into a
// fresh global frame.
func New(sess *session.Session, stdout, stderr io.Writer, stdin io.Reader) *Evaluator {
	globals := environment.New(nil)
	builtins.Register(globals)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	return &Evaluator{
		Globals: globals,
		Session: sess,
		Stdout:  stdout,
		Stderr:  stderr,
		Stdin:   bufio.NewReader(stdin),
	}
}

// Interpret executes stmts in the global frame, stopping and reporting
// at the first runtime error. A `return` reaching top level simply ends
// the run without error, since govox has no enclosing call frame to
// unwind to there.
func (e *Evaluator) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		sig, err := e.execStmt(stmt, e.Globals)
		if err != nil {
			e.reportRuntimeError(err)
			return err
		}
		if sig != nil {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) reportRuntimeError(err error) {
	e.Session.HadRuntimeError = true
	fmt.Fprintln(e.Stderr, err.Error())
}

// CallFunction implements callable.Evaluator: bind args into a fresh
// child of fn's closure, run its body, and unwrap a non-local return
// into a plain value.Value. If the body completes normally without a
// `return`, the call yields Nil.
func (e *Evaluator) CallFunction(fn *callable.Function, args []value.Value) (value.Value, error) {
	callEnv := environment.New(fn.Closure)
	for i, param := range fn.Params {
		callEnv.Define(param.Lexeme, args[i])
	}
	sig, err := e.execBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		return sig.Value, nil
	}
	return value.Nil{}, nil
}

// execBlock runs stmts against env (already the frame the caller wants
// them evaluated in — Block/function-call sites are responsible for
// creating that child frame first), stopping early on the first error or
// returnSignal.
func (e *Evaluator) execBlock(stmts []ast.Stmt, env *environment.Environment) (*returnSignal, error) {
	for _, stmt := range stmts {
		sig, err := e.execStmt(stmt, env)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

