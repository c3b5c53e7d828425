// errors.go: user-facing error wrapping and caret-snippet rendering
//
// This module turns lexer/parser/resolver/interpreter diagnostics into
// readable, Python-style error snippets with a caret pointing at the
// offending column:
//
//	PARSE ERROR at 3:12: expected ')' after expression
//
//	   2 | var x = (1 + 2
//	   3 |              ;
//	       |            ^
//	   4 | print x;
//
// The snippet includes up to one line of context before and after the error,
// numbers the lines, and places a caret under the 1-based column.
//
// Error types recognized: *LexError (lexer.go), *ParseError (parser.go),
// *ResolveError (resolver.go) — all with 0-based Col — and *RuntimeError
// (interpreter.go) with a 1-based Col. Anything else passes through
// unchanged. Line/column out of range are clamped so rendering never fails.
//
// ErrorList aggregates the diagnostics of a whole compile stage, since scan,
// parse and resolve each keep going after the first failure.
package lox

import (
	"fmt"
	"strings"
)

// ErrorList is an ordered collection of diagnostics from one run. It
// implements error; the message is one rendered diagnostic per block.
type ErrorList []error

func (l ErrorList) Error() string {
	parts := make([]string, 0, len(l))
	for _, e := range l {
		parts = append(parts, strings.TrimRight(e.Error(), "\n"))
	}
	return strings.Join(parts, "\n")
}

// wrapAll renders every diagnostic against the source and aggregates them.
func wrapAll(errs []error, srcName, src string) error {
	out := make(ErrorList, 0, len(errs))
	for _, e := range errs {
		out = append(out, WrapErrorWithName(e, srcName, src))
	}
	return out
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes the engine's diagnostic
// types and leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in <name>")
// included in the header when non-empty. The returned error Unwraps to the
// original diagnostic, so errors.As still sees the concrete type.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lex/parse/resolve Col are 0-based; render as 1-based.
		return &renderedError{prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg), err}
	case *ParseError:
		return &renderedError{prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg), err}
	case *ResolveError:
		return &renderedError{prettyErrorStringLabeled(src, "RESOLVE ERROR", srcName, e.Line, e.Col+1, e.Msg), err}
	case *RuntimeError:
		// RuntimeError is already 1-based.
		return &renderedError{prettyErrorStringLabeled(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg), err}
	default:
		return err
	}
}

// renderedError pairs the human-readable snippet with the diagnostic it was
// rendered from.
type renderedError struct {
	msg string
	err error
}

func (e *renderedError) Error() string { return e.msg }
func (e *renderedError) Unwrap() error { return e.err }

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
