// parser.go — recursive-descent parser for Lox.
//
// OVERVIEW
// --------
// Consumes the token stream produced by lexer.go and builds the AST defined
// in ast.go. One method per grammar production, with the precedence chain
// (lowest to highest):
//
//	assignment → or → and → equality → comparison → term → factor
//	           → unary → call → primary
//
// Binary and logical operators are left-associative; assignment and unary
// are right-associative. An assignment target must reduce to a variable or a
// property access; anything else is a syntax error attributed to the '='.
//
// ERROR RECOVERY
// --------------
// The parser never stops at the first syntax error. Each error is recorded
// as a *ParseError and the parser synchronizes: it discards tokens until a
// semicolon or a token that can start a declaration (class, fun, var, for,
// if, while, print, return), then resumes. A single run therefore surfaces
// every independent syntax error with its own line/column.
//
// DESUGARING
// ----------
// `for (init; cond; incr) body` is rewritten here into the equivalent
// `{ init; while (cond) { body; incr; } }`; the interpreter never sees a
// `for` node. An omitted condition defaults to `true`.
package lox

import "fmt"

// ParseError is a syntax diagnostic. Line is 1-based, Col 0-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Parser consumes a token stream and produces the program AST.
type Parser struct {
	toks []Token
	i    int
	errs []error
}

// NewParser creates a parser over a token stream ending in EOF.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse returns the program (a sequence of declarations) plus every syntax
// error found. The returned statements are only safe to execute when the
// error list is empty.
func (p *Parser) Parse() ([]Stmt, []error) {
	var prog []Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			prog = append(prog, s)
		}
	}
	return prog, p.errs
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *Parser) prev() Token { return p.toks[p.i-1] }

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *Parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *Parser) errAt(tok Token, msg string) error {
	if tok.Type == EOF {
		msg = msg + " (at end of input)"
	}
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

// synchronize discards tokens until a plausible statement boundary so that
// parsing can continue after a syntax error.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.match(SEMICOLON) {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.i++
	}
}

// ─────────────────────────────── declarations ───────────────────────────────

func (p *Parser) declaration() Stmt {
	var s Stmt
	var err error
	switch {
	case p.match(CLASS):
		s, err = p.classDecl()
	case p.match(FUN):
		s, err = p.funDecl("function")
	case p.match(VAR):
		s, err = p.varDecl()
	default:
		s, err = p.statement()
	}
	if err != nil {
		p.errs = append(p.errs, err)
		p.synchronize()
		return nil
	}
	return s
}

func (p *Parser) classDecl() (Stmt, error) {
	name, err := p.need(ID, "expected class name")
	if err != nil {
		return nil, err
	}
	var super *VariableExpr
	if p.match(LESS) {
		sn, err := p.need(ID, "expected superclass name after '<'")
		if err != nil {
			return nil, err
		}
		super = &VariableExpr{Name: sn}
	}
	if _, err := p.need(LCURLY, "expected '{' before class body"); err != nil {
		return nil, err
	}
	var methods []*FunctionStmt
	for !p.check(RCURLY) && !p.atEnd() {
		m, err := p.funDecl("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, m.(*FunctionStmt))
	}
	if _, err := p.need(RCURLY, "expected '}' after class body"); err != nil {
		return nil, err
	}
	return &ClassStmt{Name: name, Super: super, Methods: methods}, nil
}

func (p *Parser) funDecl(kind string) (Stmt, error) {
	name, err := p.need(ID, "expected "+kind+" name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after "+kind+" name"); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RROUND) {
		for {
			param, err := p.need(ID, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.need(LCURLY, "expected '{' before "+kind+" body"); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDecl() (Stmt, error) {
	name, err := p.need(ID, "expected variable name")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: init}, nil
}

// ──────────────────────────────── statements ────────────────────────────────

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(PRINT):
		return p.printStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(IF):
		return p.ifStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(FOR):
		return p.forStmt()
	case p.match(LCURLY):
		body, err := p.blockBody()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Stmts: body}, nil
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: e}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	kw := p.prev()
	var value Expr
	if !p.check(SEMICOLON) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: kw, Value: value}, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	if _, err := p.need(LROUND, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	if _, err := p.need(LROUND, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// forStmt desugars the C-style for loop into a while wrapped in a block.
func (p *Parser) forStmt() (Stmt, error) {
	if _, err := p.need(LROUND, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		init = nil
	case p.match(VAR):
		init, err = p.varDecl()
		if err != nil {
			return nil, err
		}
	default:
		init, err = p.exprStmt()
		if err != nil {
			return nil, err
		}
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RROUND) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RROUND, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: Bool(true)}
	}
	var loop Stmt = &WhileStmt{Cond: cond, Body: body}
	if init != nil {
		loop = &BlockStmt{Stmts: []Stmt{init, loop}}
	}
	return loop, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: e}, nil
}

// blockBody parses statements until the matching '}' (already inside one).
func (p *Parser) blockBody() ([]Stmt, error) {
	var body []Stmt
	for !p.check(RCURLY) && !p.atEnd() {
		s := p.declaration()
		if s != nil {
			body = append(body, s)
		}
	}
	if _, err := p.need(RCURLY, "expected '}' after block"); err != nil {
		return nil, err
	}
	return body, nil
}

// ─────────────────────────────── expressions ────────────────────────────────

func (p *Parser) expression() (Expr, error) { return p.assignment() }

func (p *Parser) assignment() (Expr, error) {
	e, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		eq := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := e.(type) {
		case *VariableExpr:
			return &AssignExpr{Name: target.Name, Value: value}, nil
		case *GetExpr:
			return &SetExpr{Object: target.Object, Name: target.Name, Value: value}, nil
		}
		return nil, p.errAt(eq, "invalid assignment target")
	}
	return e, nil
}

func (p *Parser) logicOr() (Expr, error) {
	e, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		rhs, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		e = &LogicalExpr{Op: op, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *Parser) logicAnd() (Expr, error) {
	e, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		rhs, err := p.equality()
		if err != nil {
			return nil, err
		}
		e = &LogicalExpr{Op: op, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *Parser) equality() (Expr, error) {
	e, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := p.prev()
		rhs, err := p.comparison()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Op: op, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *Parser) comparison() (Expr, error) {
	e, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, LESS_EQ, GREATER, GREATER_EQ) {
		op := p.prev()
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Op: op, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *Parser) term() (Expr, error) {
	e, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev()
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Op: op, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *Parser) factor() (Expr, error) {
	e, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(MULT, DIV) {
		op := p.prev()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Op: op, Left: e, Right: rhs}
	}
	return e, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Right: rhs}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LROUND):
			e, err = p.finishCall(e)
			if err != nil {
				return nil, err
			}
		case p.match(PERIOD):
			name, err := p.need(ID, "expected property name after '.'")
			if err != nil {
				return nil, err
			}
			e = &GetExpr{Object: e, Name: name}
		default:
			return e, nil
		}
	}
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RROUND) {
		for {
			a, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.need(RROUND, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(NIL):
		return &LiteralExpr{Value: Nil}, nil
	case p.match(TRUE):
		return &LiteralExpr{Value: Bool(true)}, nil
	case p.match(FALSE):
		return &LiteralExpr{Value: Bool(false)}, nil
	case p.match(NUMBER):
		return &LiteralExpr{Value: Num(p.prev().Literal.(float64))}, nil
	case p.match(STRING):
		return &LiteralExpr{Value: Str(p.prev().Literal.(string))}, nil
	case p.match(ID):
		return &VariableExpr{Name: p.prev()}, nil
	case p.match(THIS):
		return &ThisExpr{Keyword: p.prev()}, nil
	case p.match(SUPER):
		kw := p.prev()
		if _, err := p.need(PERIOD, "expected '.' after 'super'"); err != nil {
			return nil, err
		}
		method, err := p.need(ID, "expected superclass method name")
		if err != nil {
			return nil, err
		}
		return &SuperExpr{Keyword: kw, Method: method}, nil
	case p.match(LROUND):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: inner}, nil
	}
	return nil, p.errAt(p.peek(), fmt.Sprintf("unexpected token %q", p.peek().Lexeme))
}
