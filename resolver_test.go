// resolver_test.go
package lox

import (
	"strings"
	"testing"
)

func resolve(t *testing.T, src string) (map[Expr]int, []error) {
	t.Helper()
	prog := parse(t, src)
	return NewResolver().Resolve(prog)
}

func resolveOK(t *testing.T, src string) map[Expr]int {
	t.Helper()
	locals, errs := resolve(t, src)
	if len(errs) > 0 {
		t.Fatalf("resolve errors for %q: %v", src, errs)
	}
	return locals
}

func resolveErr(t *testing.T, src, wantMsg string) *ResolveError {
	t.Helper()
	_, errs := resolve(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected resolve error for %q, got none", src)
	}
	re, ok := errs[0].(*ResolveError)
	if !ok {
		t.Fatalf("want *ResolveError, got %T", errs[0])
	}
	if !strings.Contains(re.Msg, wantMsg) {
		t.Fatalf("want message containing %q, got %q", wantMsg, re.Msg)
	}
	return re
}

func Test_Resolver_GlobalsGetNoEntry(t *testing.T) {
	locals := resolveOK(t, "var a = 1; print a;")
	if len(locals) != 0 {
		t.Fatalf("globals should not be in the depth table, got %v", locals)
	}
}

func Test_Resolver_LocalDepths(t *testing.T) {
	// `a` read from the inner block is two hops up, `b` zero.
	src := `{
  var a = 1;
  {
    {
      var b = 2;
      print a;
      print b;
    }
  }
}`
	locals := resolveOK(t, src)
	depths := map[string]int{}
	for e, d := range locals {
		if v, ok := e.(*VariableExpr); ok {
			depths[v.Name.Lexeme] = d
		}
	}
	if depths["a"] != 2 {
		t.Fatalf("want depth 2 for a, got %d", depths["a"])
	}
	if depths["b"] != 0 {
		t.Fatalf("want depth 0 for b, got %d", depths["b"])
	}
}

func Test_Resolver_SelfInitializerRead(t *testing.T) {
	re := resolveErr(t, "{ var a = 1; { var a = a; } }", "in its own initializer")
	if re.Line != 1 {
		t.Fatalf("want line 1, got %d", re.Line)
	}
}

func Test_Resolver_SelfInitializerRead_GlobalIsLegal(t *testing.T) {
	// Global re-declaration referencing the old binding is allowed.
	resolveOK(t, "var a = 1; var a = a;")
}

func Test_Resolver_DuplicateLocal(t *testing.T) {
	resolveErr(t, "{ var a = 1; var a = 2; }", "already declared in this scope")
}

func Test_Resolver_DuplicateGlobal_IsLegal(t *testing.T) {
	resolveOK(t, "var a = 1; var a = 2;")
}

func Test_Resolver_DuplicateParam(t *testing.T) {
	resolveErr(t, "fun f(a, a) { return a; }", "already declared in this scope")
}

func Test_Resolver_TopLevelReturn(t *testing.T) {
	resolveErr(t, "return 1;", "cannot return from top-level code")
}

func Test_Resolver_ReturnValueFromInit(t *testing.T) {
	resolveErr(t, "class C { init() { return 1; } }", "cannot return a value from an initializer")
}

func Test_Resolver_BareReturnFromInit_IsLegal(t *testing.T) {
	resolveOK(t, "class C { init() { return; } }")
}

func Test_Resolver_ThisOutsideClass(t *testing.T) {
	resolveErr(t, "print this;", "outside of a class")
	resolveErr(t, "fun f() { return this; }", "outside of a class")
}

func Test_Resolver_SuperOutsideClass(t *testing.T) {
	resolveErr(t, "print super.x;", "outside of a class")
}

func Test_Resolver_SuperWithoutSuperclass(t *testing.T) {
	resolveErr(t, "class C { m() { return super.m(); } }", "no superclass")
}

func Test_Resolver_SuperInSubclass_IsLegal(t *testing.T) {
	resolveOK(t, `class A { m() { return 1; } }
class B < A { m() { return super.m(); } }`)
}

func Test_Resolver_ClassInheritsItself(t *testing.T) {
	resolveErr(t, "class C < C {}", "cannot inherit from itself")
}

func Test_Resolver_CollectsMultipleErrors(t *testing.T) {
	src := `return 1;
print this;
{ var a = 1; var a = 2; }`
	_, errs := resolve(t, src)
	if len(errs) != 3 {
		t.Fatalf("want 3 errors, got %d: %v", len(errs), errs)
	}
}

func Test_Resolver_ClosureCapturesDeclarationSiteBinding(t *testing.T) {
	// The read of `a` inside f resolves through the function scope to the
	// block frame, not to the later shadowing declaration.
	src := `{
  var a = 1;
  fun f() { print a; }
}`
	locals := resolveOK(t, src)
	found := false
	for e, d := range locals {
		if v, ok := e.(*VariableExpr); ok && v.Name.Lexeme == "a" {
			found = true
			if d != 1 {
				t.Fatalf("want depth 1 for captured a, got %d", d)
			}
		}
	}
	if !found {
		t.Fatalf("captured variable missing from depth table: %v", locals)
	}
}
