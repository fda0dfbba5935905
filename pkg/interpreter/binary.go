package interpreter

import (
	"fmt"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
	"github.com/leonardohn/rinha-interpreter/pkg/runtime"
)

type binaryHandler func(i *Interpreter, frame runtime.FrameID, expr *ast.Binary) ast.Term

var binaryHandlers map[ast.BinaryOp]binaryHandler

func init() {
	binaryHandlers = map[ast.BinaryOp]binaryHandler{
		ast.OpAdd: intToInt(func(a, b int32) int32 { return a + b }),
		ast.OpSub: intToInt(func(a, b int32) int32 { return a - b }),
		ast.OpMul: intToInt(func(a, b int32) int32 { return a * b }),
		ast.OpDiv: intDivision(func(a, b int32) int32 { return a / b }),
		ast.OpRem: intDivision(func(a, b int32) int32 { return a % b }),
		ast.OpLt:  intToBool(func(a, b int32) bool { return a < b }),
		ast.OpGt:  intToBool(func(a, b int32) bool { return a > b }),
		ast.OpLte: intToBool(func(a, b int32) bool { return a <= b }),
		ast.OpGte: intToBool(func(a, b int32) bool { return a >= b }),
		ast.OpAnd: boolToBool(func(a, b bool) bool { return a && b }),
		ast.OpOr:  boolToBool(func(a, b bool) bool { return a || b }),
		ast.OpEq:  anyToBool(runtime.ValuesEqual),
		ast.OpNeq: anyToBool(func(a, b ast.Term) bool { return !runtime.ValuesEqual(a, b) }),
	}
}

func (i *Interpreter) evaluateBinary(frame runtime.FrameID, expr *ast.Binary) ast.Term {
	handler, ok := binaryHandlers[expr.Op]
	if !ok {
		return errorFrom(expr, ast.ErrorTypeMismatch, "Unexpected term", fmt.Sprintf("Unknown binary operator %q", expr.Op))
	}
	return handler(i, frame, expr)
}

// evaluateOperands is the shape shared by every operator: the left operand is
// evaluated and checked first, and an error on the left skips the right.
// The kinds only name the expectation in the error text.
func evaluateOperands[L, R ast.Term](i *Interpreter, frame runtime.FrameID, expr *ast.Binary, lhsKind, rhsKind ast.NodeKind) (lhs L, rhs R, failure ast.Term) {
	lhsVal := i.Evaluate(frame, expr.Lhs)
	if _, isErr := lhsVal.(*ast.Error); isErr {
		return lhs, rhs, lhsVal
	}
	lhs, ok := lhsVal.(L)
	if !ok {
		return lhs, rhs, operandError(lhsVal, "left", lhsKind)
	}
	rhsVal := i.Evaluate(frame, expr.Rhs)
	if _, isErr := rhsVal.(*ast.Error); isErr {
		return lhs, rhs, rhsVal
	}
	rhs, ok = rhsVal.(R)
	if !ok {
		return lhs, rhs, operandError(rhsVal, "right", rhsKind)
	}
	return lhs, rhs, nil
}

func operandError(term ast.Term, side string, expected ast.NodeKind) ast.Term {
	return errorFrom(term, ast.ErrorTypeMismatch, "Unexpected "+side+" operand", fmt.Sprintf("Expected operand of type %q", string(expected)))
}

func intToInt(compute func(a, b int32) int32) binaryHandler {
	return func(i *Interpreter, frame runtime.FrameID, expr *ast.Binary) ast.Term {
		lhs, rhs, failure := evaluateOperands[*ast.Int, *ast.Int](i, frame, expr, ast.KindInt, ast.KindInt)
		if failure != nil {
			return failure
		}
		return ast.NewInt(compute(lhs.Value, rhs.Value), expr.Location())
	}
}

// intDivision guards the divisor; MinInt32 / -1 wraps like the other
// arithmetic operators.
func intDivision(compute func(a, b int32) int32) binaryHandler {
	return func(i *Interpreter, frame runtime.FrameID, expr *ast.Binary) ast.Term {
		lhs, rhs, failure := evaluateOperands[*ast.Int, *ast.Int](i, frame, expr, ast.KindInt, ast.KindInt)
		if failure != nil {
			return failure
		}
		if rhs.Value == 0 {
			return errorFrom(expr, ast.ErrorDivisionByZero, "Division by zero", fmt.Sprintf("Attempted to divide %d by zero", lhs.Value))
		}
		return ast.NewInt(compute(lhs.Value, rhs.Value), expr.Location())
	}
}

func intToBool(compute func(a, b int32) bool) binaryHandler {
	return func(i *Interpreter, frame runtime.FrameID, expr *ast.Binary) ast.Term {
		lhs, rhs, failure := evaluateOperands[*ast.Int, *ast.Int](i, frame, expr, ast.KindInt, ast.KindInt)
		if failure != nil {
			return failure
		}
		return ast.NewBool(compute(lhs.Value, rhs.Value), expr.Location())
	}
}

func boolToBool(compute func(a, b bool) bool) binaryHandler {
	return func(i *Interpreter, frame runtime.FrameID, expr *ast.Binary) ast.Term {
		lhs, rhs, failure := evaluateOperands[*ast.Bool, *ast.Bool](i, frame, expr, ast.KindBool, ast.KindBool)
		if failure != nil {
			return failure
		}
		return ast.NewBool(compute(lhs.Value, rhs.Value), expr.Location())
	}
}

func anyToBool(compute func(a, b ast.Term) bool) binaryHandler {
	return func(i *Interpreter, frame runtime.FrameID, expr *ast.Binary) ast.Term {
		lhs, rhs, failure := evaluateOperands[ast.Term, ast.Term](i, frame, expr, "", "")
		if failure != nil {
			return failure
		}
		return ast.NewBool(compute(lhs, rhs), expr.Location())
	}
}
