package interpreter

import (
	"fmt"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
	"github.com/leonardohn/rinha-interpreter/pkg/runtime"
)

// discardName is never stored by let.
const discardName = "_"

func (i *Interpreter) evaluateTerm(frame runtime.FrameID, term ast.Term) ast.Term {
	switch n := term.(type) {
	case *ast.Int, *ast.Str, *ast.Bool, *ast.Function, *ast.Error:
		return term
	case *ast.Var:
		return i.evaluateVar(frame, n)
	case *ast.Let:
		return i.evaluateLet(frame, n)
	case *ast.If:
		return i.evaluateIf(frame, n)
	case *ast.Call:
		return i.evaluateCall(frame, n)
	case *ast.Binary:
		return i.evaluateBinary(frame, n)
	case *ast.Print:
		return i.evaluatePrint(frame, n)
	case *ast.First:
		return i.evaluateFirst(frame, n)
	case *ast.Second:
		return i.evaluateSecond(frame, n)
	case *ast.Tuple:
		return i.evaluateTuple(frame, n)
	case nil:
		return ast.NewErrorKind(ast.ErrorTypeMismatch, "Unexpected term", "Missing term", ast.Location{})
	default:
		return errorFrom(term, ast.ErrorTypeMismatch, "Unexpected term", fmt.Sprintf("Unsupported term kind %q", term.Kind()))
	}
}

func (i *Interpreter) evaluateVar(frame runtime.FrameID, v *ast.Var) ast.Term {
	stored, ok := i.frames.Get(frame, v.Text)
	if !ok {
		return errorFrom(v, ast.ErrorUndefinedVariable, "Undefined variable", fmt.Sprintf("Undefined variable %q", v.Text))
	}
	return i.Evaluate(frame, stored)
}

func (i *Interpreter) evaluateLet(frame runtime.FrameID, let *ast.Let) ast.Term {
	value := i.Evaluate(frame, let.Value)
	if let.Name.Text != discardName {
		i.frames.Set(frame, let.Name.Text, value)
	}
	return i.Evaluate(frame, let.Next)
}

func (i *Interpreter) evaluateIf(frame runtime.FrameID, expr *ast.If) ast.Term {
	cond := i.Evaluate(frame, expr.Condition)
	if b, ok := cond.(*ast.Bool); ok {
		if b.Value {
			return i.Evaluate(frame, expr.Then)
		}
		return i.Evaluate(frame, expr.Otherwise)
	}
	return errorFrom(cond, ast.ErrorTypeMismatch, "Unexpected term", `Expected condition of type "Bool"`)
}

// evaluateCall binds arguments in a frame extending the caller's frame, so
// free variables in the body resolve at the call site.
func (i *Interpreter) evaluateCall(frame runtime.FrameID, call *ast.Call) ast.Term {
	callee := i.Evaluate(frame, call.Callee)
	fn, ok := callee.(*ast.Function)
	if !ok {
		return errorFrom(callee, ast.ErrorTypeMismatch, "Unexpected term", "Expected function body or reference")
	}
	expected, found := len(fn.Parameters), len(call.Arguments)
	if expected != found {
		return errorFrom(call, ast.ErrorArityMismatch, "Argument count mismatch", fmt.Sprintf("Expected %d arguments, found %d", expected, found))
	}
	i.tracef("call %s/%d at %s (depth %d)", calleeName(call.Callee), expected, call.Location(), i.depth)

	callFrame := i.frames.Extend(frame)
	for idx, arg := range call.Arguments {
		value := i.Evaluate(callFrame, arg)
		i.frames.Set(callFrame, fn.Parameters[idx].Text, value)
	}
	result := i.Evaluate(callFrame, fn.Value)
	i.frames.Release(callFrame)
	return result
}

func (i *Interpreter) evaluatePrint(frame runtime.FrameID, expr *ast.Print) ast.Term {
	value := i.Evaluate(frame, expr.Value)
	if _, isErr := value.(*ast.Error); isErr {
		return value
	}
	text, ok := runtime.FirstClassText(value)
	if !ok {
		return errorFrom(value, ast.ErrorTypeMismatch, "Unexpected term", "The term is not a first class value")
	}
	fmt.Fprintln(i.stdout, text)
	return value
}

func (i *Interpreter) evaluateFirst(frame runtime.FrameID, expr *ast.First) ast.Term {
	value := i.Evaluate(frame, expr.Value)
	tuple, ok := value.(*ast.Tuple)
	if !ok {
		return errorFrom(value, ast.ErrorTypeMismatch, "Unexpected term", "The first function expects a tuple")
	}
	return i.Evaluate(frame, tuple.First)
}

func (i *Interpreter) evaluateSecond(frame runtime.FrameID, expr *ast.Second) ast.Term {
	value := i.Evaluate(frame, expr.Value)
	tuple, ok := value.(*ast.Tuple)
	if !ok {
		return errorFrom(value, ast.ErrorTypeMismatch, "Unexpected term", "The second function expects a tuple")
	}
	return i.Evaluate(frame, tuple.Second)
}

func (i *Interpreter) evaluateTuple(frame runtime.FrameID, expr *ast.Tuple) ast.Term {
	first := i.Evaluate(frame, expr.First)
	second := i.Evaluate(frame, expr.Second)
	return ast.NewTuple(first, second, expr.Location())
}

func calleeName(callee ast.Term) string {
	if v, ok := callee.(*ast.Var); ok {
		return v.Text
	}
	return "<anonymous>"
}
