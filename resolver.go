// resolver.go — static scope resolution.
//
// A single pass over the AST that mirrors runtime environment nesting with a
// stack of lexical scopes, without executing anything. For every variable
// reference (Variable, Assign, This, Super) it records how many scopes
// separate the use from its declaration; the interpreter later jumps exactly
// that many frames instead of searching by name. Globals get no entry and
// fall back to name lookup in the outermost environment.
//
// The same pass rejects the static misuses the grammar cannot express:
// reading a variable in its own initializer, re-declaring a local, `this` or
// `super` outside a class (or `super` without a superclass), `return` at the
// top level, returning a value from `init`, and a class inheriting from
// itself. Errors are collected so one run reports them all.
package lox

import "fmt"

// ResolveError is a static-analysis diagnostic. Line is 1-based, Col 0-based.
type ResolveError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("RESOLVE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

type funKind int

const (
	funNone funKind = iota
	funFunction
	funMethod
	funInitializer
)

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSubclass
)

// Resolver tracks a stack of lexical scopes. Each scope maps a declared name
// to whether its initializer has finished ("declared" false vs "defined"
// true), which is what catches `var a = a;`.
type Resolver struct {
	scopes   []map[string]bool
	locals   map[Expr]int
	curFun   funKind
	curClass classKind
	errs     []error
}

// NewResolver creates an empty resolver positioned at the global scope.
func NewResolver() *Resolver {
	return &Resolver{locals: make(map[Expr]int)}
}

// Resolve walks the program and returns the depth table (keyed by node
// identity) plus every static error found. The table is only meaningful when
// the error list is empty.
func (r *Resolver) Resolve(prog []Stmt) (map[Expr]int, []error) {
	for _, s := range prog {
		r.resolveStmt(s)
	}
	return r.locals, r.errs
}

func (r *Resolver) errAt(tok Token, msg string) {
	r.errs = append(r.errs, &ResolveError{Line: tok.Line, Col: tok.Col, Msg: msg})
}

// ───────────────────────────────── scopes ───────────────────────────────────

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) inGlobalScope() bool { return len(r.scopes) == 0 }

// declare marks a name as existing-but-uninitialized in the current scope.
// Global declarations are unchecked: re-declaring a global is legal.
func (r *Resolver) declare(name Token) {
	if r.inGlobalScope() {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errAt(name, fmt.Sprintf("variable %q already declared in this scope", name.Lexeme))
	}
	scope[name.Lexeme] = false
}

// define marks a declared name as fully initialized.
func (r *Resolver) define(name Token) {
	if r.inGlobalScope() {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack innermost-outward and records the hop
// count for this specific node. No entry means the name is global (or
// undefined, which surfaces at runtime).
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ──────────────────────────────── statements ────────────────────────────────

func (r *Resolver) resolveStmt(s Stmt) {
	switch st := s.(type) {
	case *ExprStmt:
		r.resolveExpr(st.Expr)
	case *PrintStmt:
		r.resolveExpr(st.Expr)
	case *VarStmt:
		r.declare(st.Name)
		if st.Init != nil {
			r.resolveExpr(st.Init)
		}
		r.define(st.Name)
	case *BlockStmt:
		r.beginScope()
		for _, inner := range st.Stmts {
			r.resolveStmt(inner)
		}
		r.endScope()
	case *IfStmt:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *WhileStmt:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Body)
	case *FunctionStmt:
		r.declare(st.Name)
		r.define(st.Name)
		r.resolveFunction(st, funFunction)
	case *ReturnStmt:
		if r.curFun == funNone {
			r.errAt(st.Keyword, "cannot return from top-level code")
		}
		if st.Value != nil {
			if r.curFun == funInitializer {
				r.errAt(st.Keyword, "cannot return a value from an initializer")
			}
			r.resolveExpr(st.Value)
		}
	case *ClassStmt:
		r.resolveClass(st)
	}
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, kind funKind) {
	enclosing := r.curFun
	r.curFun = kind
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, s := range fn.Body {
		r.resolveStmt(s)
	}
	r.endScope()
	r.curFun = enclosing
}

// resolveClass declares the two synthetic scopes every method closes over:
// one binding `super` (only when there is a superclass) enclosing one binding
// `this`. The interpreter materializes environments with the same structure,
// so the depths recorded here line up at runtime.
func (r *Resolver) resolveClass(st *ClassStmt) {
	enclosing := r.curClass
	r.curClass = classPlain

	r.declare(st.Name)
	r.define(st.Name)

	if st.Super != nil {
		if st.Super.Name.Lexeme == st.Name.Lexeme {
			r.errAt(st.Super.Name, "a class cannot inherit from itself")
		}
		r.curClass = classSubclass
		r.resolveExpr(st.Super)
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, m := range st.Methods {
		kind := funMethod
		if m.Name.Lexeme == "init" {
			kind = funInitializer
		}
		r.resolveFunction(m, kind)
	}
	r.endScope()

	if st.Super != nil {
		r.endScope()
	}
	r.curClass = enclosing
}

// ─────────────────────────────── expressions ────────────────────────────────

func (r *Resolver) resolveExpr(e Expr) {
	switch ex := e.(type) {
	case *LiteralExpr:
		// nothing to resolve
	case *VariableExpr:
		if !r.inGlobalScope() {
			if defined, declared := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; declared && !defined {
				r.errAt(ex.Name, fmt.Sprintf("cannot read variable %q in its own initializer", ex.Name.Lexeme))
			}
		}
		r.resolveLocal(ex, ex.Name)
	case *AssignExpr:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex, ex.Name)
	case *LogicalExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *BinaryExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *UnaryExpr:
		r.resolveExpr(ex.Right)
	case *CallExpr:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *GetExpr:
		r.resolveExpr(ex.Object)
	case *SetExpr:
		r.resolveExpr(ex.Object)
		r.resolveExpr(ex.Value)
	case *ThisExpr:
		if r.curClass == classNone {
			r.errAt(ex.Keyword, "cannot use 'this' outside of a class")
			return
		}
		r.resolveLocal(ex, ex.Keyword)
	case *SuperExpr:
		switch r.curClass {
		case classNone:
			r.errAt(ex.Keyword, "cannot use 'super' outside of a class")
			return
		case classPlain:
			r.errAt(ex.Keyword, "cannot use 'super' in a class with no superclass")
			return
		}
		r.resolveLocal(ex, ex.Keyword)
	case *GroupingExpr:
		r.resolveExpr(ex.Inner)
	}
}
