/*
Package parser implements govox's recursive-descent parser, one method
per grammar precedence level (assignment → logic_or → logic_and →
equality → comparison → term → factor → unary → call → primary), rather
than go-mix/parser/parser.go's Pratt/registered-function-map approach
(its UnaryFuncs/BinaryFuncs) — the grammar already names each
precedence level directly, and reproducing Pratt tables here would
obscure that structure rather than clarify it.

Error collection (par.errors) and per-method doc-comment density are
grounded on go-mix/parser/parser.go; a parseError sentinel (an empty
struct carrying no payload) is panic/recover-caught inside declaration()
to drive synchronization, the idiomatic Go analogue of go-mix's
caught-internally error type.
*/
package parser

import (
	"fmt"

	"github.com/govox-lang/govox/internal/ast"
	"github.com/govox-lang/govox/internal/lexer"
)

// ParseError is one line-tagged diagnostic, formatted as
// "[line L] Error<where>: <message>".
type ParseError struct {
	Line    int
	Where   string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// parseError is the payload-free sentinel panicked to unwind out of a
// broken declaration and into synchronize().
type parseError struct{}

// Parser consumes a token stream and emits a list of statement nodes,
// recovering on error so a single Parse() call can report every
// diagnostic in the source rather than stopping at the first one.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a Parser over src, scanning it to completion first. Any
// lexer diagnostics are folded into the parser's own error list so a
// single HasErrors()/Errors() check covers both stages.
func New(src string) *Parser {
	lex := lexer.New(src)
	tokens, lexErrs := lex.Scan()
	p := &Parser{tokens: tokens}
	for _, le := range lexErrs {
		p.errors = append(p.errors, ParseError{Line: le.Line, Where: le.Where, Message: le.Message})
	}
	return p
}

// NewFromTokens builds a Parser directly over an already-scanned token
// stream, bypassing lexing; it starts with no diagnostics.
func NewFromTokens(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every diagnostic collected so far (lexer + parser).
func (p *Parser) Errors() []ParseError { return p.errors }

// HasErrors reports whether any diagnostic was collected.
func (p *Parser) HasErrors() bool { return len(p.errors) > 0 }

// Parse consumes the whole token stream and returns the program's
// statement list: program → declaration* EOF. Failed
// declarations are synchronized past and omitted from the result, so the
// returned slice may be shorter than the number of top-level forms in the
// source when HasErrors() is true.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// --- token cursor helpers ---

func (p *Parser) peek() lexer.Token  { return p.tokens[p.current] }
func (p *Parser) previous() lexer.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool      { return p.peek().Kind == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.Kind) bool {
	if p.isAtEnd() {
		return kind == lexer.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.Kind, message string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.reportAt(p.peek(), message))
}

// reportAt records a diagnostic at tok's position and returns the
// panic-ready sentinel; callers that should stop parsing the current
// production panic with its result, callers that should keep going
// (e.g. the non-throwing "Invalid assignment target.") just call it and
// continue.
func (p *Parser) reportAt(tok lexer.Token, message string) parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == lexer.EOF {
		where = " at end"
	}
	p.errors = append(p.errors, ParseError{Line: tok.Line, Where: where, Message: message})
	return parseError{}
}

// synchronize discards tokens until it's plausible the next one begins a
// new statement: consume through the next ';', or stop just before one
// of class/fun/var/for/if/while/print/return.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == lexer.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.advance()
	}
}

// --- declarations ---

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(lexer.FUN) {
		return p.functionDeclaration()
	}
	if p.match(lexer.VAR) {
		return p.varDeclaration()
	}
	if p.match(lexer.LOOP) {
		return p.stringLoopStatement()
	}
	return p.statement()
}

func (p *Parser) functionDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect function name.")
	p.consume(lexer.LEFT_PAREN, "Expect '(' after function name.")

	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= 255 {
				p.reportAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(lexer.IDENTIFIER, "Expect parameter name."))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(lexer.LEFT_BRACE, "Expect '{' before function body.")
	body := p.blockStatements()
	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect variable name.")
	var initializer ast.Expr
	if p.match(lexer.EQUAL) {
		initializer = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: initializer}
}

func (p *Parser) stringLoopStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'loop'.")
	p.consume(lexer.VAR, "Expect 'var' in loop header.")
	varTok := p.consume(lexer.IDENTIFIER, "Expect loop variable name.")
	p.consume(lexer.IN, "Expect 'in' after loop variable.")
	iterable := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after loop header.")
	body := p.statement()
	return &ast.StringLoop{Var: varTok, Iterable: iterable, Body: body}
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.PRINTONLY):
		return p.printOnlyStatement()
	case p.match(lexer.LEFT_BRACE):
		return &ast.Block{Statements: p.blockStatements()}
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.FOR):
		return p.forStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) blockStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(lexer.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) requiredBlock(context string) *ast.Block {
	p.consume(lexer.LEFT_BRACE, "Expect '{' "+context+".")
	return &ast.Block{Statements: p.blockStatements()}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition.")
	then := p.requiredBlock("before 'if' body")
	var elseBranch *ast.Block
	if p.match(lexer.ELSE) {
		elseBranch = p.requiredBlock("before 'else' body")
	}
	return &ast.If{Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after while condition.")
	body := p.statement()
	return &ast.While{Condition: cond, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` into
// Block([init, While(cond, Block([body, Expression(incr)]))]),
// defaulting a missing condition to the literal `true`.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		initializer = nil
	case p.match(lexer.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(lexer.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.Expression{Expr: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.While{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Expr: value}
}

func (p *Parser) printOnlyStatement() ast.Stmt {
	value := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintOnly{Expr: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}

// --- expressions, precedence low to high ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment handles `IDENT = assignment | logic_or`. If the LHS is not a
// bare Variable, this reports a non-throwing diagnostic
// ("Invalid assignment target.") rather than aborting the parse.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}
		}
		p.reportAt(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(lexer.STAR, lexer.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

// call left-associates `f()()(x)` as `((f())())(x)` by repeatedly
// wrapping the callee in a new Call node for each trailing "(...)".
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(lexer.LEFT_PAREN) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= 255 {
				p.reportAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, ClosingParen: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.FALSE):
		return &ast.Literal{Value: false}
	case p.match(lexer.TRUE):
		return &ast.Literal{Value: true}
	case p.match(lexer.NIL):
		return &ast.Literal{Value: nil}
	case p.match(lexer.NUMBER, lexer.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(lexer.SYMBOL):
		return &ast.Symbol{Name: p.previous().Literal.(string)}
	case p.match(lexer.READ, lexer.RAND):
		return &ast.DynamicLiteral{Kind: p.previous()}
	case p.match(lexer.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(lexer.LEFT_PAREN):
		expr := p.expression()
		p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	}

	panic(p.reportAt(p.peek(), "Expect expression."))
}
