package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/govox-lang/govox/internal/ast"
	"github.com/govox-lang/govox/internal/lexer"
	"github.com/govox-lang/govox/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bangToken() lexer.Token {
	return lexer.Token{Kind: lexer.BANG, Lexeme: "!", Line: 1}
}

// parseExpr parses src as a single expression statement and returns its
// expression node.
func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := parser.New(src + ";")
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors for %q: %v", src, p.Errors())
	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok, "expected an expression statement, got %T", stmts[0])
	return exprStmt.Expr
}

// TestRoundTrip_ExpressionPrintThenReparse checks that printing a
// representative expression and re-parsing the result yields a
// structurally equivalent AST.
func TestRoundTrip_ExpressionPrintThenReparse(t *testing.T) {
	cases := []string{
		`1 + 2 * 3`,
		`(1 + 2) * 3`,
		`-5 + 3`,
		`!true and !false`,
		`f(1, 2 + 3)`,
		`x = x + 1`,
		`:foo`,
		`((1))`,
		`"a" + "b"`,
		`1 < 2 or 3 >= 4`,
	}

	for _, src := range cases {
		src := src
		t.Run(src, func(t *testing.T) {
			original := parseExpr(t, src)
			printed := Expr(original)
			reparsed := parseExpr(t, printed)

			if diff := cmp.Diff(original, reparsed); diff != "" {
				t.Errorf("round-trip mismatch for %q (printed as %q): -original +reparsed\n%s", src, printed, diff)
			}
		})
	}
}

func TestExpr_LiteralsSpellBackAsSource(t *testing.T) {
	assert.Equal(t, "nil", Expr(&ast.Literal{Value: nil}))
	assert.Equal(t, "true", Expr(&ast.Literal{Value: true}))
	assert.Equal(t, "3.5", Expr(&ast.Literal{Value: 3.5}))
	assert.Equal(t, `"hi"`, Expr(&ast.Literal{Value: "hi"}))
}

func TestExpr_UnaryBangSeparatesFromOperandToAvoidRandToken(t *testing.T) {
	inner := &ast.Unary{Op: bangToken(), Right: &ast.Literal{Value: true}}
	outer := &ast.Unary{Op: bangToken(), Right: inner}
	printed := Expr(outer)
	assert.NotContains(t, printed, "!!", "adjacent '!' must stay separated so it never re-lexes as rand's '!!' token")
}

func TestProgram_RendersOneLinePerStatement(t *testing.T) {
	p := parser.New(`var x = 1; print x;`)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	out := Program(stmts)
	assert.Equal(t, "var x = 1;\nprint x;", out)
}
