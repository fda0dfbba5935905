package ast

import "fmt"

type NodeKind string

const (
	KindError    NodeKind = "Error"
	KindInt      NodeKind = "Int"
	KindStr      NodeKind = "Str"
	KindBool     NodeKind = "Bool"
	KindVar      NodeKind = "Var"
	KindFunction NodeKind = "Function"
	KindCall     NodeKind = "Call"
	KindBinary   NodeKind = "Binary"
	KindLet      NodeKind = "Let"
	KindIf       NodeKind = "If"
	KindPrint    NodeKind = "Print"
	KindFirst    NodeKind = "First"
	KindSecond   NodeKind = "Second"
	KindTuple    NodeKind = "Tuple"
)

// Location is the source span a term was parsed from.
type Location struct {
	Start    uint   `json:"start" yaml:"start"`
	End      uint   `json:"end" yaml:"end"`
	Filename string `json:"filename" yaml:"filename"`
}

func NewLocation(start, end uint, filename string) Location {
	return Location{Start: start, End: end, Filename: filename}
}

// Merge spans from the start of l to the end of other. Both locations must
// come from the same file.
func (l Location) Merge(other Location) Location {
	if l.Filename != other.Filename {
		panic(fmt.Sprintf("ast: cannot merge locations from %q and %q", l.Filename, other.Filename))
	}
	return Location{Start: l.Start, End: other.End, Filename: l.Filename}
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Start, l.End)
}

// Term is a node of the evaluated tree. Syntax and runtime values share this
// representation.
type Term interface {
	Kind() NodeKind
	Location() Location
	isTerm()
}

type nodeImpl struct {
	kind NodeKind
	Loc  Location
}

func newNodeImpl(kind NodeKind, loc Location) nodeImpl {
	return nodeImpl{kind: kind, Loc: loc}
}

func (n nodeImpl) Kind() NodeKind     { return n.kind }
func (n nodeImpl) Location() Location { return n.Loc }
func (nodeImpl) isTerm()              {}

// File is the root document handed to the evaluator.
type File struct {
	Name       string
	Expression Term
	Location   Location
}

// Errors

// ErrorKind classifies an Error term. It is not part of the wire format.
type ErrorKind int

const (
	ErrorUser ErrorKind = iota
	ErrorUndefinedVariable
	ErrorTypeMismatch
	ErrorArityMismatch
	ErrorDivisionByZero
	ErrorStackOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorUser:
		return "user"
	case ErrorUndefinedVariable:
		return "undefined_variable"
	case ErrorTypeMismatch:
		return "type_mismatch"
	case ErrorArityMismatch:
		return "arity_mismatch"
	case ErrorDivisionByZero:
		return "division_by_zero"
	case ErrorStackOverflow:
		return "stack_overflow"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

type Error struct {
	nodeImpl

	Message  string
	FullText string
	Code     ErrorKind
}

func NewError(message, fullText string, loc Location) *Error {
	return &Error{nodeImpl: newNodeImpl(KindError, loc), Message: message, FullText: fullText}
}

func NewErrorKind(code ErrorKind, message, fullText string, loc Location) *Error {
	return &Error{nodeImpl: newNodeImpl(KindError, loc), Message: message, FullText: fullText, Code: code}
}

// Literals

type Int struct {
	nodeImpl

	Value int32
}

func NewInt(value int32, loc Location) *Int {
	return &Int{nodeImpl: newNodeImpl(KindInt, loc), Value: value}
}

type Str struct {
	nodeImpl

	Value string
}

func NewStr(value string, loc Location) *Str {
	return &Str{nodeImpl: newNodeImpl(KindStr, loc), Value: value}
}

type Bool struct {
	nodeImpl

	Value bool
}

func NewBool(value bool, loc Location) *Bool {
	return &Bool{nodeImpl: newNodeImpl(KindBool, loc), Value: value}
}

// Var is a variable reference. It also names let bindings and parameters.
type Var struct {
	nodeImpl

	Text string
}

func NewVar(text string, loc Location) *Var {
	return &Var{nodeImpl: newNodeImpl(KindVar, loc), Text: text}
}

// Functions and calls

type Function struct {
	nodeImpl

	Parameters []*Var
	Value      Term
}

func NewFunction(params []*Var, body Term, loc Location) *Function {
	return &Function{nodeImpl: newNodeImpl(KindFunction, loc), Parameters: params, Value: body}
}

type Call struct {
	nodeImpl

	Callee    Term
	Arguments []Term
}

func NewCall(callee Term, args []Term, loc Location) *Call {
	return &Call{nodeImpl: newNodeImpl(KindCall, loc), Callee: callee, Arguments: args}
}

// Operators

type BinaryOp string

const (
	OpAdd BinaryOp = "Add"
	OpSub BinaryOp = "Sub"
	OpMul BinaryOp = "Mul"
	OpDiv BinaryOp = "Div"
	OpRem BinaryOp = "Rem"
	OpEq  BinaryOp = "Eq"
	OpNeq BinaryOp = "Neq"
	OpLt  BinaryOp = "Lt"
	OpGt  BinaryOp = "Gt"
	OpLte BinaryOp = "Lte"
	OpGte BinaryOp = "Gte"
	OpAnd BinaryOp = "And"
	OpOr  BinaryOp = "Or"
)

// BinaryOps lists every operator tag accepted on the wire.
var BinaryOps = []BinaryOp{OpAdd, OpSub, OpMul, OpDiv, OpRem, OpEq, OpNeq, OpLt, OpGt, OpLte, OpGte, OpAnd, OpOr}

func (op BinaryOp) Valid() bool {
	for _, candidate := range BinaryOps {
		if op == candidate {
			return true
		}
	}
	return false
}

type Binary struct {
	nodeImpl

	Lhs Term
	Op  BinaryOp
	Rhs Term
}

func NewBinary(lhs Term, op BinaryOp, rhs Term, loc Location) *Binary {
	return &Binary{nodeImpl: newNodeImpl(KindBinary, loc), Lhs: lhs, Op: op, Rhs: rhs}
}

// Control flow

type Let struct {
	nodeImpl

	Name  *Var
	Value Term
	Next  Term
}

func NewLet(name *Var, value, next Term, loc Location) *Let {
	return &Let{nodeImpl: newNodeImpl(KindLet, loc), Name: name, Value: value, Next: next}
}

type If struct {
	nodeImpl

	Condition Term
	Then      Term
	Otherwise Term
}

func NewIf(condition, then, otherwise Term, loc Location) *If {
	return &If{nodeImpl: newNodeImpl(KindIf, loc), Condition: condition, Then: then, Otherwise: otherwise}
}

// Builtins

type Print struct {
	nodeImpl

	Value Term
}

func NewPrint(value Term, loc Location) *Print {
	return &Print{nodeImpl: newNodeImpl(KindPrint, loc), Value: value}
}

type First struct {
	nodeImpl

	Value Term
}

func NewFirst(value Term, loc Location) *First {
	return &First{nodeImpl: newNodeImpl(KindFirst, loc), Value: value}
}

type Second struct {
	nodeImpl

	Value Term
}

func NewSecond(value Term, loc Location) *Second {
	return &Second{nodeImpl: newNodeImpl(KindSecond, loc), Value: value}
}

type Tuple struct {
	nodeImpl

	First  Term
	Second Term
}

func NewTuple(first, second Term, loc Location) *Tuple {
	return &Tuple{nodeImpl: newNodeImpl(KindTuple, loc), First: first, Second: second}
}
