package interpreter

import (
	"bytes"
	"testing"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewWithOptions(Options{Stdout: &out, MaxDepth: DefaultMaxDepth}), &out
}

func evaluate(t *testing.T, term ast.Term) (ast.Term, string) {
	t.Helper()
	interp, out := newTestInterpreter(t)
	result := interp.Evaluate(interp.Global(), term)
	return result, out.String()
}

func mustInt(t *testing.T, term ast.Term, want int32) {
	t.Helper()
	got, ok := term.(*ast.Int)
	if !ok {
		t.Fatalf("expected Int(%d), got %#v", want, term)
	}
	if got.Value != want {
		t.Fatalf("expected Int(%d), got Int(%d)", want, got.Value)
	}
}

func mustBool(t *testing.T, term ast.Term, want bool) {
	t.Helper()
	got, ok := term.(*ast.Bool)
	if !ok {
		t.Fatalf("expected Bool(%t), got %#v", want, term)
	}
	if got.Value != want {
		t.Fatalf("expected Bool(%t), got Bool(%t)", want, got.Value)
	}
}

func mustError(t *testing.T, term ast.Term, code ast.ErrorKind, message, fullText string) *ast.Error {
	t.Helper()
	got, ok := term.(*ast.Error)
	if !ok {
		t.Fatalf("expected error %q, got %#v", message, term)
	}
	if got.Code != code {
		t.Fatalf("expected error code %s, got %s", code, got.Code)
	}
	if got.Message != message {
		t.Fatalf("expected message %q, got %q", message, got.Message)
	}
	if fullText != "" && got.FullText != fullText {
		t.Fatalf("expected full text %q, got %q", fullText, got.FullText)
	}
	return got
}
