package runtime

import (
	"strconv"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
)

// ValuesEqual compares two evaluated terms by kind and payload. Source
// locations are ignored, tuples compare component-wise, functions compare by
// identity and errors by their message and text.
func ValuesEqual(a, b ast.Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *ast.Int:
		return av.Value == b.(*ast.Int).Value
	case *ast.Str:
		return av.Value == b.(*ast.Str).Value
	case *ast.Bool:
		return av.Value == b.(*ast.Bool).Value
	case *ast.Tuple:
		bv := b.(*ast.Tuple)
		return ValuesEqual(av.First, bv.First) && ValuesEqual(av.Second, bv.Second)
	case *ast.Function:
		return av == b.(*ast.Function)
	case *ast.Error:
		bv := b.(*ast.Error)
		return av.Message == bv.Message && av.FullText == bv.FullText
	default:
		// Unevaluated syntax never reaches here from the evaluator.
		return a == b
	}
}

// FirstClassText renders the printable form of a value. ok is false for
// terms that are not first class (tuples and unevaluated syntax).
func FirstClassText(term ast.Term) (text string, ok bool) {
	switch v := term.(type) {
	case *ast.Int:
		return strconv.FormatInt(int64(v.Value), 10), true
	case *ast.Str:
		return v.Value, true
	case *ast.Bool:
		return strconv.FormatBool(v.Value), true
	case *ast.Function:
		return "<function>", true
	default:
		return "", false
	}
}

// Describe renders any value for diagnostics and traces.
func Describe(term ast.Term) string {
	if term == nil {
		return "<nil>"
	}
	if text, ok := FirstClassText(term); ok {
		if s, isStr := term.(*ast.Str); isStr {
			return strconv.Quote(s.Value)
		}
		return text
	}
	switch v := term.(type) {
	case *ast.Tuple:
		return "(" + Describe(v.First) + ", " + Describe(v.Second) + ")"
	case *ast.Error:
		return "<error: " + v.Message + ">"
	default:
		return "<" + string(term.Kind()) + ">"
	}
}
