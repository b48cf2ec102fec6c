package eval

import (
	"fmt"

	"github.com/govox-lang/govox/internal/ast"
	"github.com/govox-lang/govox/internal/callable"
	"github.com/govox-lang/govox/internal/environment"
	"github.com/govox-lang/govox/internal/value"
)

// execStmt evaluates one statement against env, returning a non-nil
// returnSignal if it (or something it runs) executed a `return`.
func (e *Evaluator) execStmt(stmt ast.Stmt, env *environment.Environment) (*returnSignal, error) {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := e.evalExpr(s.Expr, env)
		return nil, err

	case *ast.Print:
		v, err := e.evalExpr(s.Expr, env)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(e.Stdout, value.Stringify(v))
		return nil, nil

	case *ast.PrintOnly:
		v, err := e.evalExpr(s.Expr, env)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(e.Stdout, value.Stringify(v))
		return nil, nil

	case *ast.Var:
		var v value.Value = value.Nil{}
		if s.Initializer != nil {
			var err error
			v, err = e.evalExpr(s.Initializer, env)
			if err != nil {
				return nil, err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return nil, nil

	case *ast.Block:
		child := environment.New(env)
		return e.execBlock(s.Statements, child)

	case *ast.If:
		cond, err := e.evalExpr(s.Condition, env)
		if err != nil {
			return nil, err
		}
		if value.IsTruthy(cond) {
			return e.execStmt(s.Then, env)
		}
		if s.Else != nil {
			return e.execStmt(s.Else, env)
		}
		return nil, nil

	case *ast.While:
		for {
			cond, err := e.evalExpr(s.Condition, env)
			if err != nil {
				return nil, err
			}
			if !value.IsTruthy(cond) {
				return nil, nil
			}
			sig, err := e.execStmt(s.Body, env)
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}

	case *ast.StringLoop:
		return e.execStringLoop(s, env)

	case *ast.Function:
		fn := &callable.Function{
			Name:    s.Name.Lexeme,
			Params:  s.Params,
			Body:    s.Body,
			Closure: env,
		}
		env.Define(s.Name.Lexeme, fn)
		return nil, nil

	case *ast.Return:
		var v value.Value = value.Nil{}
		if s.Value != nil {
			var err error
			v, err = e.evalExpr(s.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return &returnSignal{Value: v}, nil
	}

	return nil, fmt.Errorf("eval: unhandled statement type %T", stmt)
}

// execStringLoop runs `loop (var x in e)`: e must be a Str; each Unicode
// scalar value becomes a one-character Str bound in a fresh child frame
// restored after every iteration, even on error.
func (e *Evaluator) execStringLoop(s *ast.StringLoop, env *environment.Environment) (*returnSignal, error) {
	iter, err := e.evalExpr(s.Iterable, env)
	if err != nil {
		return nil, err
	}
	str, ok := iter.(value.Str)
	if !ok {
		return nil, &RuntimeError{Token: s.Var, Message: "String loop can only iterate over strings."}
	}

	for _, ch := range string(str) {
		child := environment.New(env)
		child.Define(s.Var.Lexeme, value.Str(string(ch)))
		sig, err := e.execStmt(s.Body, child)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}
