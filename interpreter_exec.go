// interpreter_exec.go — PRIVATE: the tree-walking evaluator.
//   - Executes resolved ASTs against the environment chain; each statement
//     produces side effects, each expression exactly one Value.
//   - Hard failures travel as rtErr panics and are recovered once, at the
//     interpret() boundary, where they become *RuntimeError. No formatting
//     happens here; the public surface in interpreter.go wraps snippets.
//   - `return` is a distinct control signal (returnSig), never an error: it
//     unwinds to the nearest function-call frame and cannot be confused with
//     or caught by the failure path.
//
// No exported identifiers here. The public facade lives in interpreter.go.
package lox

import "fmt"

// rtErr is the internal runtime-failure signal. Recovered in interpret().
type rtErr struct {
	line int
	col  int
	msg  string
}

// returnSig carries a `return` value up to the nearest call frame.
type returnSig struct {
	v Value
}

// failAt aborts the current evaluation, attributing the failure to tok.
func failAt(tok Token, msg string) {
	panic(rtErr{line: tok.Line, col: tok.Col + 1, msg: msg})
}

////////////////////////////////////////////////////////////////////////////////
//                               TOP-LEVEL DRIVER
////////////////////////////////////////////////////////////////////////////////

// interpret executes the program in Global, converting the internal failure
// signal into a *RuntimeError. The resolver has already rejected top-level
// returns, so a returnSig escaping to here is a bug and re-panics.
func (ip *Interpreter) interpret(prog []Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(rtErr); ok {
				err = &RuntimeError{Line: sig.line, Col: sig.col, Msg: sig.msg}
				return
			}
			panic(r)
		}
	}()
	for _, s := range prog {
		ip.execStmt(s, ip.Global)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
//                                  STATEMENTS
////////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) execStmt(s Stmt, env *Env) {
	switch st := s.(type) {
	case *ExprStmt:
		ip.evalExpr(st.Expr, env)
	case *PrintStmt:
		v := ip.evalExpr(st.Expr, env)
		fmt.Fprintln(ip.out, FormatValue(v))
	case *VarStmt:
		v := Nil
		if st.Init != nil {
			v = ip.evalExpr(st.Init, env)
		}
		env.Define(st.Name.Lexeme, v)
	case *BlockStmt:
		ip.execBlock(st.Stmts, NewEnv(env))
	case *IfStmt:
		if truthy(ip.evalExpr(st.Cond, env)) {
			ip.execStmt(st.Then, env)
		} else if st.Else != nil {
			ip.execStmt(st.Else, env)
		}
	case *WhileStmt:
		for truthy(ip.evalExpr(st.Cond, env)) {
			ip.execStmt(st.Body, env)
		}
	case *FunctionStmt:
		// The closure captures the environment in effect at the declaration,
		// which is what lets nested functions close over outer locals.
		env.Define(st.Name.Lexeme, FunVal(&Fun{Decl: st, Env: env}))
	case *ReturnStmt:
		v := Nil
		if st.Value != nil {
			v = ip.evalExpr(st.Value, env)
		}
		panic(returnSig{v: v})
	case *ClassStmt:
		ip.execClass(st, env)
	}
}

func (ip *Interpreter) execBlock(stmts []Stmt, env *Env) {
	for _, s := range stmts {
		ip.execStmt(s, env)
	}
}

// execClass evaluates the optional superclass, builds the method table, and
// binds the class name. Methods close over a synthetic environment holding
// `super` (when present); `this` is bound fresh per call by Fun.bind, not
// captured here. The environment structure must match what the resolver
// declared, hop for hop.
func (ip *Interpreter) execClass(st *ClassStmt, env *Env) {
	var super *Class
	if st.Super != nil {
		sv := ip.evalExpr(st.Super, env)
		if sv.Tag != VTClass {
			failAt(st.Super.Name, "superclass must be a class")
		}
		super = sv.Data.(*Class)
	}

	env.Define(st.Name.Lexeme, Nil)

	methodEnv := env
	if super != nil {
		methodEnv = NewEnv(env)
		methodEnv.Define("super", ClassVal(super))
	}

	methods := make(map[string]*Fun, len(st.Methods))
	for _, m := range st.Methods {
		methods[m.Name.Lexeme] = &Fun{Decl: m, Env: methodEnv, IsInit: m.Name.Lexeme == "init"}
	}

	class := &Class{Name: st.Name.Lexeme, Super: super, Methods: methods}
	if err := env.Set(st.Name.Lexeme, ClassVal(class)); err != nil {
		failAt(st.Name, err.Error())
	}
}

////////////////////////////////////////////////////////////////////////////////
//                                 EXPRESSIONS
////////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) evalExpr(e Expr, env *Env) Value {
	switch ex := e.(type) {
	case *LiteralExpr:
		return ex.Value
	case *GroupingExpr:
		return ip.evalExpr(ex.Inner, env)
	case *VariableExpr:
		return ip.lookUpVariable(ex.Name, ex, env)
	case *AssignExpr:
		v := ip.evalExpr(ex.Value, env)
		if depth, ok := ip.locals[ex]; ok {
			if err := env.SetAt(depth, ex.Name.Lexeme, v); err != nil {
				failAt(ex.Name, err.Error())
			}
		} else if err := ip.Global.Set(ex.Name.Lexeme, v); err != nil {
			failAt(ex.Name, err.Error())
		}
		return v
	case *LogicalExpr:
		left := ip.evalExpr(ex.Left, env)
		if ex.Op.Type == OR {
			if truthy(left) {
				return left
			}
		} else if !truthy(left) {
			return left
		}
		return ip.evalExpr(ex.Right, env)
	case *UnaryExpr:
		return ip.evalUnary(ex, env)
	case *BinaryExpr:
		return ip.evalBinary(ex, env)
	case *CallExpr:
		return ip.evalCall(ex, env)
	case *GetExpr:
		obj := ip.evalExpr(ex.Object, env)
		if obj.Tag != VTInstance {
			failAt(ex.Name, "only instances have properties")
		}
		return ip.getProperty(obj.Data.(*Instance), ex.Name)
	case *SetExpr:
		obj := ip.evalExpr(ex.Object, env)
		if obj.Tag != VTInstance {
			failAt(ex.Name, "only instances have fields")
		}
		v := ip.evalExpr(ex.Value, env)
		obj.Data.(*Instance).Fields[ex.Name.Lexeme] = v
		return v
	case *ThisExpr:
		return ip.lookUpVariable(ex.Keyword, ex, env)
	case *SuperExpr:
		return ip.evalSuper(ex, env)
	}
	panic(fmt.Sprintf("unhandled expression node %T", e))
}

// lookUpVariable consumes the resolver's depth table: annotated references
// jump straight to their frame, everything else is a global by-name lookup.
func (ip *Interpreter) lookUpVariable(name Token, expr Expr, env *Env) Value {
	if depth, ok := ip.locals[expr]; ok {
		v, err := env.GetAt(depth, name.Lexeme)
		if err != nil {
			failAt(name, err.Error())
		}
		return v
	}
	v, err := ip.Global.Get(name.Lexeme)
	if err != nil {
		failAt(name, err.Error())
	}
	return v
}

func (ip *Interpreter) evalUnary(ex *UnaryExpr, env *Env) Value {
	right := ip.evalExpr(ex.Right, env)
	switch ex.Op.Type {
	case MINUS:
		if right.Tag != VTNum {
			failAt(ex.Op, "operand must be a number")
		}
		return Num(-right.Data.(float64))
	case BANG:
		return Bool(!truthy(right))
	}
	panic(fmt.Sprintf("unhandled unary operator %q", ex.Op.Lexeme))
}

func (ip *Interpreter) evalBinary(ex *BinaryExpr, env *Env) Value {
	left := ip.evalExpr(ex.Left, env)
	right := ip.evalExpr(ex.Right, env)

	switch ex.Op.Type {
	case EQ:
		return Bool(valuesEqual(left, right))
	case NEQ:
		return Bool(!valuesEqual(left, right))
	case PLUS:
		if left.Tag == VTNum && right.Tag == VTNum {
			return Num(left.Data.(float64) + right.Data.(float64))
		}
		if left.Tag == VTStr && right.Tag == VTStr {
			return Str(left.Data.(string) + right.Data.(string))
		}
		failAt(ex.Op, "operands must be two numbers or two strings")
	}

	// Every remaining operator is numeric-only.
	if left.Tag != VTNum || right.Tag != VTNum {
		failAt(ex.Op, "operands must be numbers")
	}
	a, b := left.Data.(float64), right.Data.(float64)
	switch ex.Op.Type {
	case MINUS:
		return Num(a - b)
	case MULT:
		return Num(a * b)
	case DIV:
		return Num(a / b)
	case LESS:
		return Bool(a < b)
	case LESS_EQ:
		return Bool(a <= b)
	case GREATER:
		return Bool(a > b)
	case GREATER_EQ:
		return Bool(a >= b)
	}
	panic(fmt.Sprintf("unhandled binary operator %q", ex.Op.Lexeme))
}

func (ip *Interpreter) evalSuper(ex *SuperExpr, env *Env) Value {
	depth := ip.locals[ex]
	sv, err := env.GetAt(depth, "super")
	if err != nil {
		failAt(ex.Keyword, err.Error())
	}
	super := sv.Data.(*Class)
	// `this` lives one frame inside the `super` frame; see resolveClass.
	tv, err := env.GetAt(depth-1, "this")
	if err != nil {
		failAt(ex.Keyword, err.Error())
	}
	method := super.FindMethod(ex.Method.Lexeme)
	if method == nil {
		failAt(ex.Method, fmt.Sprintf("undefined property %q", ex.Method.Lexeme))
	}
	return FunVal(method.bind(tv.Data.(*Instance)))
}

// getProperty looks up a field first, then a method bound to the instance.
func (ip *Interpreter) getProperty(inst *Instance, name Token) Value {
	if v, ok := inst.Fields[name.Lexeme]; ok {
		return v
	}
	if m := inst.Class.FindMethod(name.Lexeme); m != nil {
		return FunVal(m.bind(inst))
	}
	failAt(name, fmt.Sprintf("undefined property %q", name.Lexeme))
	return Nil // unreachable
}

////////////////////////////////////////////////////////////////////////////////
//                              CALLS & CONSTRUCTION
////////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) evalCall(ex *CallExpr, env *Env) Value {
	callee := ip.evalExpr(ex.Callee, env)
	args := make([]Value, 0, len(ex.Args))
	for _, a := range ex.Args {
		args = append(args, ip.evalExpr(a, env))
	}

	switch callee.Tag {
	case VTFun:
		f := callee.Data.(*Fun)
		ip.checkArity(f.Arity(), len(args), ex.Paren)
		return ip.callFun(f, args, ex.Paren)
	case VTClass:
		c := callee.Data.(*Class)
		ip.checkArity(c.Arity(), len(args), ex.Paren)
		return ip.construct(c, args, ex.Paren)
	}
	failAt(ex.Paren, "can only call functions and classes")
	return Nil // unreachable
}

func (ip *Interpreter) checkArity(want, got int, paren Token) {
	if want != got {
		failAt(paren, fmt.Sprintf("expected %d arguments but got %d", want, got))
	}
}

// callFun invokes a function value. User functions run their body in a fresh
// frame under the captured closure; the returnSig unwind is caught here, at
// the call boundary, and anything else keeps propagating.
func (ip *Interpreter) callFun(f *Fun, args []Value, site Token) (result Value) {
	if f.NativeName != "" {
		impl, ok := ip.native[f.NativeName]
		if !ok {
			failAt(site, fmt.Sprintf("native function %q is not registered", f.NativeName))
		}
		v, err := impl(ip, args)
		if err != nil {
			failAt(site, err.Error())
		}
		return v
	}

	env := NewEnv(f.Env)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(returnSig)
			if !ok {
				panic(r)
			}
			result = sig.v
			if f.IsInit {
				result = ip.thisOf(f, site)
			}
		}
	}()

	ip.execBlock(f.Decl.Body, env)
	if f.IsInit {
		return ip.thisOf(f, site)
	}
	return Nil
}

// thisOf reads the receiver out of a bound method's closure. Initializers
// yield it no matter how their body exits.
func (ip *Interpreter) thisOf(f *Fun, site Token) Value {
	v, err := f.Env.GetAt(0, "this")
	if err != nil {
		failAt(site, err.Error())
	}
	return v
}

// construct creates an instance and runs init (if declared), discarding the
// explicit return value in favor of the instance.
func (ip *Interpreter) construct(c *Class, args []Value, site Token) Value {
	inst := &Instance{Class: c, Fields: map[string]Value{}}
	if init := c.FindMethod("init"); init != nil {
		ip.callFun(init.bind(inst), args, site)
	}
	return InstanceVal(inst)
}

////////////////////////////////////////////////////////////////////////////////
//                                   SEMANTICS
////////////////////////////////////////////////////////////////////////////////

// truthy: nil and false are falsy, everything else (0, "" included) is truthy.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// valuesEqual implements `==`: different kinds never compare equal, numbers
// use ordinary floating-point comparison (so NaN != NaN), and callables,
// classes and instances compare by identity.
func valuesEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		return a.Data == b.Data
	}
}
