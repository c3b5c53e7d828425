// printer_test.go
package lox

import (
	"math"
	"testing"
)

func Test_FormatValue_Primitives(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Num(3), "3"},
		{Num(3.5), "3.5"},
		{Num(-0.25), "-0.25"},
		{Num(math.Inf(1)), "+Inf"},
		{Str("hello"), "hello"},
		{Str(""), ""},
	}
	for _, c := range cases {
		if got := FormatValue(c.in); got != c.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func Test_FormatValue_WholeNumbersDropPoint(t *testing.T) {
	if got := FormatValue(Num(100)); got != "100" {
		t.Fatalf("want 100, got %q", got)
	}
	if got := FormatValue(Num(0)); got != "0" {
		t.Fatalf("want 0, got %q", got)
	}
}

func Test_FormatValue_Callables(t *testing.T) {
	fn := &Fun{Decl: &FunctionStmt{Name: Token{Type: ID, Lexeme: "myFun"}}}
	if got := FormatValue(FunVal(fn)); got != "<fn myFun>" {
		t.Fatalf("fn rendering wrong: %q", got)
	}
	nat := &Fun{NativeName: "clock"}
	if got := FormatValue(FunVal(nat)); got != "<native fn clock>" {
		t.Fatalf("native rendering wrong: %q", got)
	}
}

func Test_FormatValue_ClassesAndInstances(t *testing.T) {
	cls := &Class{Name: "Widget"}
	if got := FormatValue(ClassVal(cls)); got != "Widget" {
		t.Fatalf("class rendering wrong: %q", got)
	}
	inst := &Instance{Class: cls, Fields: map[string]Value{}}
	if got := FormatValue(InstanceVal(inst)); got != "Widget instance" {
		t.Fatalf("instance rendering wrong: %q", got)
	}
}

func Test_Value_StringUsesFormatValue(t *testing.T) {
	if Num(2.5).String() != "2.5" {
		t.Fatalf("Value.String diverged from FormatValue")
	}
}
