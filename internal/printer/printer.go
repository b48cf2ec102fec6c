/*
Package printer renders govox ASTs back into source text: a diagnostic
tool for the -debug CLI flag and the vehicle for a pretty-print/re-parse
round-trip property test.

Grounded on go-mix/main/print_visitor.go's indentation/bytes.Buffer
accumulation style, rewritten as plain recursive functions over the
tagged-variant internal/ast instead of implementing go-mix's
NodeVisitor interface, matching internal/ast's own preference for a
type switch over double-dispatch.

Expr prints with no superfluous parentheses around Binary/Logical nodes,
which keeps a chain like `1 + 2 * 3` round-tripping through the parser's
own precedence climbing instead of accumulating a Grouping wrapper per
node. Unary separates its operator from its operand with a space
(`- 5`, `! !x`) specifically so two adjacent `!` never re-lex as the
`!!`/rand two-character token — the one place the printer has to dodge
the grammar's own ambiguity to stay round-trip safe.
*/
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govox-lang/govox/internal/ast"
)

// Expr renders a single expression node as govox source text.
func Expr(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.Literal:
		return literal(ex.Value)
	case *ast.Grouping:
		return "(" + Expr(ex.Inner) + ")"
	case *ast.Unary:
		return ex.Op.Lexeme + " " + Expr(ex.Right)
	case *ast.Binary:
		return Expr(ex.Left) + " " + ex.Op.Lexeme + " " + Expr(ex.Right)
	case *ast.Logical:
		return Expr(ex.Left) + " " + ex.Op.Lexeme + " " + Expr(ex.Right)
	case *ast.Variable:
		return ex.Name.Lexeme
	case *ast.Assign:
		return ex.Name.Lexeme + " = " + Expr(ex.Value)
	case *ast.Call:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = Expr(a)
		}
		return Expr(ex.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.DynamicLiteral:
		return ex.Kind.Lexeme
	case *ast.Symbol:
		return ":" + ex.Name
	}
	return fmt.Sprintf("<?%T>", e)
}

// literal renders a *ast.Literal's interface{} payload the way govox
// source would spell it, not the way stringify() renders it at runtime —
// in particular strings need their surrounding quotes back.
func literal(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return "nil"
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case string:
		return `"` + vv + `"`
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// Stmt renders one statement node, indenting nested blocks by one level
// per nesting depth — used by the CLI's -debug dump. The round-trip
// property test only covers expressions; statement printing is for
// human-readable diagnostics, not re-parsing.
func Stmt(s ast.Stmt) string {
	return stmtIndented(s, 0)
}

// Program renders a full statement list, one line per top-level
// statement.
func Program(stmts []ast.Stmt) string {
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = Stmt(s)
	}
	return strings.Join(lines, "\n")
}

func stmtIndented(s ast.Stmt, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch st := s.(type) {
	case *ast.Expression:
		return pad + Expr(st.Expr) + ";"
	case *ast.Print:
		return pad + "print " + Expr(st.Expr) + ";"
	case *ast.PrintOnly:
		return pad + "printonly " + Expr(st.Expr) + ";"
	case *ast.Var:
		if st.Initializer == nil {
			return pad + "var " + st.Name.Lexeme + ";"
		}
		return pad + "var " + st.Name.Lexeme + " = " + Expr(st.Initializer) + ";"
	case *ast.Block:
		lines := make([]string, len(st.Statements))
		for i, inner := range st.Statements {
			lines[i] = stmtIndented(inner, depth+1)
		}
		return pad + "{\n" + strings.Join(lines, "\n") + "\n" + pad + "}"
	case *ast.If:
		out := pad + "if (" + Expr(st.Condition) + ") " + strings.TrimLeft(stmtIndented(st.Then, depth), " ")
		if st.Else != nil {
			out += " else " + strings.TrimLeft(stmtIndented(st.Else, depth), " ")
		}
		return out
	case *ast.While:
		return pad + "while (" + Expr(st.Condition) + ") " + strings.TrimLeft(stmtIndented(st.Body, depth), " ")
	case *ast.StringLoop:
		return pad + "loop (var " + st.Var.Lexeme + " in " + Expr(st.Iterable) + ") " +
			strings.TrimLeft(stmtIndented(st.Body, depth), " ")
	case *ast.Function:
		params := make([]string, len(st.Params))
		for i, p := range st.Params {
			params[i] = p.Lexeme
		}
		body := make([]string, len(st.Body))
		for i, inner := range st.Body {
			body[i] = stmtIndented(inner, depth+1)
		}
		return pad + "fun " + st.Name.Lexeme + "(" + strings.Join(params, ", ") + ") {\n" +
			strings.Join(body, "\n") + "\n" + pad + "}"
	case *ast.Return:
		if st.Value == nil {
			return pad + "return;"
		}
		return pad + "return " + Expr(st.Value) + ";"
	}
	return fmt.Sprintf("%s<?%T>", pad, s)
}
