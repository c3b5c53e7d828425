// ast.go — syntax tree produced by the parser.
//
// Nodes are pure data: they hold only their syntactic children and the tokens
// needed for error attribution. Every node is allocated once by the parser
// and never mutated afterwards; the resolver keys its depth table on node
// pointer identity, so structurally equal nodes in different positions stay
// distinct.
package lox

// Expr is any expression node.
type Expr interface{ isExpr() }

// LiteralExpr holds an already-decoded literal (nil, bool, number, string).
type LiteralExpr struct {
	Value Value
}

// VariableExpr is a bare identifier reference.
type VariableExpr struct {
	Name Token
}

// AssignExpr is `name = value`.
type AssignExpr struct {
	Name  Token
	Value Expr
}

// LogicalExpr is short-circuiting `and` / `or`.
type LogicalExpr struct {
	Op    Token
	Left  Expr
	Right Expr
}

// BinaryExpr covers arithmetic, comparison and equality operators.
type BinaryExpr struct {
	Op    Token
	Left  Expr
	Right Expr
}

// UnaryExpr is prefix `-` or `!`.
type UnaryExpr struct {
	Op    Token
	Right Expr
}

// CallExpr is `callee(args...)`. Paren is the closing ')' used to attribute
// call-site errors (arity, non-callable callee).
type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

// GetExpr is property access `object.name`.
type GetExpr struct {
	Object Expr
	Name   Token
}

// SetExpr is property assignment `object.name = value`.
type SetExpr struct {
	Object Expr
	Name   Token
	Value  Expr
}

// ThisExpr is the `this` keyword inside a method body.
type ThisExpr struct {
	Keyword Token
}

// SuperExpr is `super.method`.
type SuperExpr struct {
	Keyword Token
	Method  Token
}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Inner Expr
}

func (*LiteralExpr) isExpr()  {}
func (*VariableExpr) isExpr() {}
func (*AssignExpr) isExpr()   {}
func (*LogicalExpr) isExpr()  {}
func (*BinaryExpr) isExpr()   {}
func (*UnaryExpr) isExpr()    {}
func (*CallExpr) isExpr()     {}
func (*GetExpr) isExpr()      {}
func (*SetExpr) isExpr()      {}
func (*ThisExpr) isExpr()     {}
func (*SuperExpr) isExpr()    {}
func (*GroupingExpr) isExpr() {}

// Stmt is any statement node.
type Stmt interface{ isStmt() }

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Expr Expr
}

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Expr Expr
}

// VarStmt is `var name;` or `var name = init;` (Init nil when absent).
type VarStmt struct {
	Name Token
	Init Expr
}

// BlockStmt is `{ ... }`; it opens a fresh scope.
type BlockStmt struct {
	Stmts []Stmt
}

// IfStmt is `if (cond) then else?` (Else nil when absent).
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is `while (cond) body`. `for` loops desugar to this.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// FunctionStmt declares a named function or a class method.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt is `return;` or `return expr;` (Value nil when absent).
// Keyword is kept for error attribution.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

// ClassStmt declares a class; Super is nil when there is no superclass
// clause. The superclass is an ordinary variable reference, resolved like
// any other.
type ClassStmt struct {
	Name    Token
	Super   *VariableExpr
	Methods []*FunctionStmt
}

func (*ExprStmt) isStmt()     {}
func (*PrintStmt) isStmt()    {}
func (*VarStmt) isStmt()      {}
func (*BlockStmt) isStmt()    {}
func (*IfStmt) isStmt()       {}
func (*WhileStmt) isStmt()    {}
func (*FunctionStmt) isStmt() {}
func (*ReturnStmt) isStmt()   {}
func (*ClassStmt) isStmt()    {}
