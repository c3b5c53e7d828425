// interpreter.go — public API surface for the Lox engine.
//
// OVERVIEW
// ========
// This file exposes the public surface of the runtime: the value model
// (`Value`, `ValueTag`, constructors), callables (`Fun`, `Class`,
// `Instance`), the `Interpreter` with its Core/Global environments, and the
// canonical entry points (`Run`, `RunNamed`, `RegisterNative`). The
// tree-walking evaluator itself is private and lives in interpreter_exec.go.
//
// EXECUTION MODEL
// ---------------
// A program runs through four stages: scan → parse → resolve → interpret.
// The first three stages collect diagnostics; if any stage produced errors,
// interpretation never starts and Run returns them all as an ErrorList.
// A runtime error aborts interpretation at the failing expression; output
// printed before the error stands.
//
// The interpreter owns two well-known frames, mirroring each other:
//   - Core:   registered native functions (clock, time, hosts' own).
//   - Global: the user program's top-level state, child of Core.
//
// Run evaluates in Global, so successive Run calls on one interpreter share
// top-level state (REPL-style). Independent programs must each get a fresh
// interpreter; reusing one across unrelated programs is undefined.
//
// RUNTIME ERRORS
// --------------
// Failures inside the evaluator travel as private panic signals and are
// recovered at this boundary, surfacing as a *RuntimeError with a 1-based
// line/column and a caret-style source snippet.
package lox

import (
	"fmt"
	"io"
	"os"
)

// Version of the engine, reported by the CLI.
const Version = "0.3.0"

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which type Value.Data holds (see Value docs).
type ValueTag int

const (
	VTNil      ValueTag = iota // nil (no payload)
	VTBool                     // bool
	VTNum                      // float64 (IEEE double)
	VTStr                      // string
	VTFun                      // *Fun (closure or native)
	VTClass                    // *Class
	VTInstance                 // *Instance
)

// Value is the universal runtime carrier used by the interpreter.
//
// Invariants:
//   - When Tag==VTNil, Data is nil.
//   - Numbers are always float64; there is no separate integer kind.
//   - Values of different tags are never equal; functions, classes and
//     instances compare by identity.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors for convenience.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// FunVal wraps *Fun into a Value (Tag=VTFun).
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// ClassVal wraps *Class into a Value (Tag=VTClass).
func ClassVal(c *Class) Value { return Value{Tag: VTClass, Data: c} }

// InstanceVal wraps *Instance into a Value (Tag=VTInstance).
func InstanceVal(i *Instance) Value { return Value{Tag: VTInstance, Data: i} }

// String renders a human-friendly debug representation.
func (v Value) String() string { return FormatValue(v) }

// NativeImpl is the implementation signature for registered host functions.
// A returned error becomes a runtime error attributed to the call site.
type NativeImpl func(ip *Interpreter, args []Value) (Value, error)

// Fun represents a function as a first-class value: either a user-defined
// closure (Decl + the environment captured at definition time) or a
// registered native (NativeName non-empty).
//
// IsInit marks class initializers, whose calls always yield the instance
// regardless of explicit returns.
type Fun struct {
	Decl   *FunctionStmt
	Env    *Env
	IsInit bool

	NativeName  string // non-empty for registered natives
	NativeArity int
}

// Arity returns the declared parameter count; calls must match it exactly.
func (f *Fun) Arity() int {
	if f.NativeName != "" {
		return f.NativeArity
	}
	return len(f.Decl.Params)
}

// Name returns the function's declared (or registered) name.
func (f *Fun) Name() string {
	if f.NativeName != "" {
		return f.NativeName
	}
	return f.Decl.Name.Lexeme
}

// bind returns a copy of the method whose closure has `this` bound to inst.
func (f *Fun) bind(inst *Instance) *Fun {
	env := NewEnv(f.Env)
	env.Define("this", InstanceVal(inst))
	return &Fun{Decl: f.Decl, Env: env, IsInit: f.IsInit}
}

// Class is a runtime class value. It acts as a callable that constructs
// instances; method lookup walks the explicit superclass chain, never the
// host language's dispatch.
type Class struct {
	Name    string
	Super   *Class
	Methods map[string]*Fun
}

// FindMethod looks name up on the class, then up the superclass chain.
func (c *Class) FindMethod(name string) *Fun {
	for k := c; k != nil; k = k.Super {
		if m, ok := k.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// Arity of a class call is the arity of its init method, or zero.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Instance is a mutable object created by calling a Class. Fields are
// created on first assignment; they are never declared in advance.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// RuntimeError represents an execution-time failure with a source location.
// Line and Col are 1-based.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter is the entry point for evaluating Lox programs.
//
// Public fields:
//   - Core   — native functions; parent of Global. Populated by NewInterpreter.
//   - Global — the user program's top-level environment.
//
// One interpreter serves one logical program; execution is single-threaded
// and synchronous with no suspension points.
type Interpreter struct {
	Global *Env // program-global environment (persists across Run calls)
	Core   *Env // natives; parent of Global

	out    io.Writer
	native map[string]NativeImpl
	locals map[Expr]int // resolver depth table, keyed by node identity
}

// NewInterpreter constructs an engine with the standard natives installed in
// Core and an empty Global. Output defaults to os.Stdout.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		out:    os.Stdout,
		native: map[string]NativeImpl{},
		locals: map[Expr]int{},
	}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	registerStandardBuiltins(ip)
	return ip
}

// SetOutput redirects the `print` statement stream (default os.Stdout).
func (ip *Interpreter) SetOutput(w io.Writer) { ip.out = w }

// Run executes a complete Lox program: scan → parse → resolve → interpret.
//
// Compile-stage failures (lexical, syntax, resolution) are returned together
// as an ErrorList without starting interpretation. A runtime failure is
// returned as a *RuntimeError; output printed before it has already been
// emitted. A nil return means the whole program ran.
func (ip *Interpreter) Run(src string) error {
	return ip.RunNamed("", src)
}

// RunNamed is Run with diagnostics attributed to a source name and rendered
// as caret-annotated snippets of src.
func (ip *Interpreter) RunNamed(name, src string) error {
	toks, lexErrs := NewLexer(src).Scan()
	prog, parseErrs := NewParser(toks).Parse()

	diags := append(lexErrs, parseErrs...)
	if len(diags) > 0 {
		return wrapAll(diags, name, src)
	}

	resolved, resErrs := NewResolver().Resolve(prog)
	if len(resErrs) > 0 {
		return wrapAll(resErrs, name, src)
	}
	// Merge rather than replace: earlier Run calls on this interpreter may
	// have produced closures whose nodes are still live in Global.
	for e, d := range resolved {
		ip.locals[e] = d
	}

	if err := ip.interpret(prog); err != nil {
		return WrapErrorWithName(err, name, src)
	}
	return nil
}

// RegisterNative installs a host function into Core under name. The arity is
// enforced exactly on every call, like user functions.
func (ip *Interpreter) RegisterNative(name string, arity int, impl NativeImpl) {
	ip.native[name] = impl
	ip.Core.Define(name, FunVal(&Fun{NativeName: name, NativeArity: arity}))
}
