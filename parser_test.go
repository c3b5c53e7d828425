// parser_test.go
package lox

import "testing"

func parse(t *testing.T, src string) []Stmt {
	t.Helper()
	ts, lexErrs := NewLexer(src).Scan()
	if len(lexErrs) > 0 {
		t.Fatalf("lex errors: %v", lexErrs)
	}
	prog, errs := NewParser(ts).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	return prog
}

func parseErrs(t *testing.T, src string) []error {
	t.Helper()
	ts, _ := NewLexer(src).Scan()
	_, errs := NewParser(ts).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected parse errors for %q, got none", src)
	}
	return errs
}

func onlyExpr(t *testing.T, src string) Expr {
	t.Helper()
	prog := parse(t, src)
	if len(prog) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog))
	}
	es, ok := prog[0].(*ExprStmt)
	if !ok {
		t.Fatalf("want *ExprStmt, got %T", prog[0])
	}
	return es.Expr
}

func Test_Parser_Precedence_TermVsFactor(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	e := onlyExpr(t, "1 + 2 * 3;")
	add, ok := e.(*BinaryExpr)
	if !ok || add.Op.Type != PLUS {
		t.Fatalf("want '+' at root, got %#v", e)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op.Type != MULT {
		t.Fatalf("want '*' on the right, got %#v", add.Right)
	}
}

func Test_Parser_Binary_LeftAssociative(t *testing.T) {
	// 1 - 2 - 3 parses as (1 - 2) - 3
	e := onlyExpr(t, "1 - 2 - 3;")
	outer, ok := e.(*BinaryExpr)
	if !ok || outer.Op.Type != MINUS {
		t.Fatalf("want '-' at root, got %#v", e)
	}
	if _, ok := outer.Left.(*BinaryExpr); !ok {
		t.Fatalf("want nested '-' on the left, got %#v", outer.Left)
	}
}

func Test_Parser_Assignment_RightAssociative(t *testing.T) {
	// a = b = 1 parses as a = (b = 1)
	e := onlyExpr(t, "a = b = 1;")
	outer, ok := e.(*AssignExpr)
	if !ok || outer.Name.Lexeme != "a" {
		t.Fatalf("want assignment to a, got %#v", e)
	}
	inner, ok := outer.Value.(*AssignExpr)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("want nested assignment to b, got %#v", outer.Value)
	}
}

func Test_Parser_Assignment_PropertyTarget(t *testing.T) {
	e := onlyExpr(t, "obj.field = 1;")
	if _, ok := e.(*SetExpr); !ok {
		t.Fatalf("want *SetExpr, got %#v", e)
	}
}

func Test_Parser_Assignment_InvalidTarget(t *testing.T) {
	errs := parseErrs(t, "1 + 2 = 3;")
	pe, ok := errs[0].(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T", errs[0])
	}
	if pe.Msg != "invalid assignment target" {
		t.Fatalf("unexpected message: %q", pe.Msg)
	}
}

func Test_Parser_Logical_Precedence(t *testing.T) {
	// a or b and c parses as a or (b and c)
	e := onlyExpr(t, "a or b and c;")
	or, ok := e.(*LogicalExpr)
	if !ok || or.Op.Type != OR {
		t.Fatalf("want 'or' at root, got %#v", e)
	}
	and, ok := or.Right.(*LogicalExpr)
	if !ok || and.Op.Type != AND {
		t.Fatalf("want 'and' on the right, got %#v", or.Right)
	}
}

func Test_Parser_Calls_Chained(t *testing.T) {
	// f(1)(2).prop parses call-then-call-then-get
	e := onlyExpr(t, "f(1)(2).prop;")
	get, ok := e.(*GetExpr)
	if !ok || get.Name.Lexeme != "prop" {
		t.Fatalf("want property get at root, got %#v", e)
	}
	call2, ok := get.Object.(*CallExpr)
	if !ok || len(call2.Args) != 1 {
		t.Fatalf("want inner call, got %#v", get.Object)
	}
	if _, ok := call2.Callee.(*CallExpr); !ok {
		t.Fatalf("want chained call callee, got %#v", call2.Callee)
	}
}

func Test_Parser_For_DesugarsToWhile(t *testing.T) {
	prog := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := prog[0].(*BlockStmt)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("want outer block [init, while], got %#v", prog[0])
	}
	if _, ok := block.Stmts[0].(*VarStmt); !ok {
		t.Fatalf("want initializer first, got %T", block.Stmts[0])
	}
	loop, ok := block.Stmts[1].(*WhileStmt)
	if !ok {
		t.Fatalf("want while, got %T", block.Stmts[1])
	}
	inner, ok := loop.Body.(*BlockStmt)
	if !ok || len(inner.Stmts) != 2 {
		t.Fatalf("want body block [stmt, incr], got %#v", loop.Body)
	}
}

func Test_Parser_For_EmptyClauses(t *testing.T) {
	prog := parse(t, "for (;;) print 1;")
	loop, ok := prog[0].(*WhileStmt)
	if !ok {
		t.Fatalf("want bare while, got %T", prog[0])
	}
	lit, ok := loop.Cond.(*LiteralExpr)
	if !ok || lit.Value.Tag != VTBool || !lit.Value.Data.(bool) {
		t.Fatalf("omitted condition should default to true, got %#v", loop.Cond)
	}
}

func Test_Parser_Return_WithoutValue(t *testing.T) {
	prog := parse(t, "fun f() { return; }")
	fn := prog[0].(*FunctionStmt)
	ret, ok := fn.Body[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("want return, got %T", fn.Body[0])
	}
	if ret.Value != nil {
		t.Fatalf("bare return should have nil value, got %#v", ret.Value)
	}
}

func Test_Parser_Class_WithSuperclass(t *testing.T) {
	prog := parse(t, "class B < A { speak() { return 1; } }")
	cls, ok := prog[0].(*ClassStmt)
	if !ok {
		t.Fatalf("want class, got %T", prog[0])
	}
	if cls.Super == nil || cls.Super.Name.Lexeme != "A" {
		t.Fatalf("superclass clause missing: %#v", cls.Super)
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name.Lexeme != "speak" {
		t.Fatalf("methods wrong: %#v", cls.Methods)
	}
}

func Test_Parser_Synchronize_ReportsIndependentErrors(t *testing.T) {
	src := `var = 1;
var ok = 2;
print );
`
	errs := parseErrs(t, src)
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %d: %v", len(errs), errs)
	}
	first := errs[0].(*ParseError)
	second := errs[1].(*ParseError)
	if first.Line != 1 || second.Line != 3 {
		t.Fatalf("want errors on lines 1 and 3, got %d and %d", first.Line, second.Line)
	}
}

func Test_Parser_ErrorAtEOF(t *testing.T) {
	errs := parseErrs(t, "print 1")
	pe := errs[0].(*ParseError)
	if pe.Line != 1 {
		t.Fatalf("want line 1, got %d", pe.Line)
	}
}
