package ast

// Short constructors for building trees by hand. Every node gets the zero
// Location; use the New* constructors when spans matter.

func I(value int32) *Int {
	return NewInt(value, Location{})
}

func S(value string) *Str {
	return NewStr(value, Location{})
}

func B(value bool) *Bool {
	return NewBool(value, Location{})
}

func V(text string) *Var {
	return NewVar(text, Location{})
}

func Err(message, fullText string) *Error {
	return NewError(message, fullText, Location{})
}

func Fn(params []string, body Term) *Function {
	vars := make([]*Var, 0, len(params))
	for _, name := range params {
		vars = append(vars, V(name))
	}
	return NewFunction(vars, body, Location{})
}

func CallFn(callee Term, args ...Term) *Call {
	if args == nil {
		args = []Term{}
	}
	return NewCall(callee, args, Location{})
}

func Bin(lhs Term, op BinaryOp, rhs Term) *Binary {
	return NewBinary(lhs, op, rhs, Location{})
}

func LetIn(name string, value, next Term) *Let {
	return NewLet(V(name), value, next, Location{})
}

func IfElse(condition, then, otherwise Term) *If {
	return NewIf(condition, then, otherwise, Location{})
}

func Pr(value Term) *Print {
	return NewPrint(value, Location{})
}

func Fst(value Term) *First {
	return NewFirst(value, Location{})
}

func Snd(value Term) *Second {
	return NewSecond(value, Location{})
}

func Tup(first, second Term) *Tuple {
	return NewTuple(first, second, Location{})
}

// At returns a shallow copy of term placed at loc. Children keep their own
// locations.
func At(term Term, loc Location) Term {
	switch t := term.(type) {
	case *Error:
		c := *t
		c.Loc = loc
		return &c
	case *Int:
		c := *t
		c.Loc = loc
		return &c
	case *Str:
		c := *t
		c.Loc = loc
		return &c
	case *Bool:
		c := *t
		c.Loc = loc
		return &c
	case *Var:
		c := *t
		c.Loc = loc
		return &c
	case *Function:
		c := *t
		c.Loc = loc
		return &c
	case *Call:
		c := *t
		c.Loc = loc
		return &c
	case *Binary:
		c := *t
		c.Loc = loc
		return &c
	case *Let:
		c := *t
		c.Loc = loc
		return &c
	case *If:
		c := *t
		c.Loc = loc
		return &c
	case *Print:
		c := *t
		c.Loc = loc
		return &c
	case *First:
		c := *t
		c.Loc = loc
		return &c
	case *Second:
		c := *t
		c.Loc = loc
		return &c
	case *Tuple:
		c := *t
		c.Loc = loc
		return &c
	default:
		return term
	}
}
