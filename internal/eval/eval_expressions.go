package eval

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/govox-lang/govox/internal/ast"
	"github.com/govox-lang/govox/internal/builtins"
	"github.com/govox-lang/govox/internal/callable"
	"github.com/govox-lang/govox/internal/environment"
	"github.com/govox-lang/govox/internal/lexer"
	"github.com/govox-lang/govox/internal/value"
)

// evalExpr evaluates one expression against env. Binary operands and call
// arguments are always fully evaluated left-to-right before the
// combining operation runs.
func (e *Evaluator) evalExpr(expr ast.Expr, env *environment.Environment) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.Literal:
		return literalValue(ex.Value), nil

	case *ast.Grouping:
		return e.evalExpr(ex.Inner, env)

	case *ast.Unary:
		return e.evalUnary(ex, env)

	case *ast.Binary:
		return e.evalBinary(ex, env)

	case *ast.Logical:
		return e.evalLogical(ex, env)

	case *ast.Variable:
		v, err := env.Get(ex.Name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Token: ex.Name, Message: err.Error()}
		}
		return v, nil

	case *ast.Assign:
		v, err := e.evalExpr(ex.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(ex.Name.Lexeme, v); err != nil {
			return nil, &RuntimeError{Token: ex.Name, Message: err.Error()}
		}
		return v, nil

	case *ast.Call:
		return e.evalCall(ex, env)

	case *ast.DynamicLiteral:
		return e.evalDynamicLiteral(ex)

	case *ast.Symbol:
		return value.Str(":" + ex.Name), nil
	}

	return nil, fmt.Errorf("eval: unhandled expression type %T", expr)
}

// literalValue converts the interface{} payload a *ast.Literal carries
// (float64/string/bool/nil, exactly what the lexer/parser produce) into
// a runtime value.Value.
func literalValue(v interface{}) value.Value {
	switch vv := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Bool(vv)
	case float64:
		return value.Number(vv)
	case string:
		return value.Str(vv)
	default:
		return value.Nil{}
	}
}

func (e *Evaluator) evalUnary(ex *ast.Unary, env *environment.Environment) (value.Value, error) {
	right, err := e.evalExpr(ex.Right, env)
	if err != nil {
		return nil, err
	}
	switch ex.Op.Kind {
	case lexer.MINUS:
		n, ok := right.(value.Number)
		if !ok {
			return nil, &RuntimeError{Token: ex.Op, Message: "Operand must be a number."}
		}
		return -n, nil
	case lexer.BANG:
		return value.Bool(!value.IsTruthy(right)), nil
	}
	return nil, fmt.Errorf("eval: unhandled unary operator %s", ex.Op.Kind)
}

func (e *Evaluator) evalBinary(ex *ast.Binary, env *environment.Environment) (value.Value, error) {
	left, err := e.evalExpr(ex.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ex.Right, env)
	if err != nil {
		return nil, err
	}

	switch ex.Op.Kind {
	case lexer.EQUAL_EQUAL:
		return value.Bool(value.Equal(left, right)), nil
	case lexer.BANG_EQUAL:
		return value.Bool(!value.Equal(left, right)), nil

	case lexer.PLUS:
		if ln, lok := left.(value.Number); lok {
			if rn, rok := right.(value.Number); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(value.Str); lok {
			if rs, rok := right.(value.Str); rok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: ex.Op, Message: "Operands must be two numbers or two strings."}

	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, &RuntimeError{Token: ex.Op, Message: "Operands must be numbers."}
		}
		switch ex.Op.Kind {
		case lexer.MINUS:
			return ln - rn, nil
		case lexer.STAR:
			return ln * rn, nil
		case lexer.SLASH:
			return ln / rn, nil
		case lexer.GREATER:
			return value.Bool(ln > rn), nil
		case lexer.GREATER_EQUAL:
			return value.Bool(ln >= rn), nil
		case lexer.LESS:
			return value.Bool(ln < rn), nil
		case lexer.LESS_EQUAL:
			return value.Bool(ln <= rn), nil
		}
	}

	return nil, fmt.Errorf("eval: unhandled binary operator %s", ex.Op.Kind)
}

// evalLogical short-circuits and returns whichever operand value decided
// the result, not a coerced boolean.
func (e *Evaluator) evalLogical(ex *ast.Logical, env *environment.Environment) (value.Value, error) {
	left, err := e.evalExpr(ex.Left, env)
	if err != nil {
		return nil, err
	}
	if ex.Op.Kind == lexer.OR {
		if value.IsTruthy(left) {
			return left, nil
		}
		return e.evalExpr(ex.Right, env)
	}
	// AND
	if !value.IsTruthy(left) {
		return left, nil
	}
	return e.evalExpr(ex.Right, env)
}

func (e *Evaluator) evalCall(ex *ast.Call, env *environment.Environment) (value.Value, error) {
	callee, err := e.evalExpr(ex.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(ex.Args))
	for _, a := range ex.Args {
		v, err := e.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *callable.Function:
		if len(args) != fn.Arity() {
			return nil, arityError(ex.ClosingParen, fn.Arity(), len(args))
		}
		return fn.Call(e, args)
	case *builtins.Builtin:
		if len(args) != fn.Arity() {
			return nil, arityError(ex.ClosingParen, fn.Arity(), len(args))
		}
		v, err := fn.Call(args)
		if err != nil {
			return nil, &RuntimeError{Token: ex.ClosingParen, Message: err.Error()}
		}
		return v, nil
	default:
		return nil, &RuntimeError{Token: ex.ClosingParen, Message: "Can only call functions and classes."}
	}
}

func arityError(tok lexer.Token, want, got int) error {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf("Expected %d arguments but got %d.", want, got)}
}

// evalDynamicLiteral handles `read`/`rand` in expression position.
// `read` prompts without a trailing newline, reads one line, and trims
// surrounding whitespace; end-of-file yields "" rather than an error.
func (e *Evaluator) evalDynamicLiteral(ex *ast.DynamicLiteral) (value.Value, error) {
	switch ex.Kind.Kind {
	case lexer.RAND:
		return value.Number(e.Session.NextRand()), nil
	case lexer.READ:
		fmt.Fprint(e.Stdout, "input required > ")
		line, err := e.Stdin.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, &RuntimeError{Token: ex.Kind, Message: err.Error()}
		}
		return value.Str(strings.TrimSpace(line)), nil
	}
	return nil, fmt.Errorf("eval: unhandled dynamic literal kind %s", ex.Kind.Kind)
}
