package ast

// Walk visits term and its children depth first, left to right. Returning
// false from visit skips the node's children.
func Walk(term Term, visit func(Term) bool) {
	if term == nil || !visit(term) {
		return
	}
	switch t := term.(type) {
	case *Function:
		for _, param := range t.Parameters {
			Walk(param, visit)
		}
		Walk(t.Value, visit)
	case *Call:
		Walk(t.Callee, visit)
		for _, arg := range t.Arguments {
			Walk(arg, visit)
		}
	case *Binary:
		Walk(t.Lhs, visit)
		Walk(t.Rhs, visit)
	case *Let:
		Walk(t.Name, visit)
		Walk(t.Value, visit)
		Walk(t.Next, visit)
	case *If:
		Walk(t.Condition, visit)
		Walk(t.Then, visit)
		Walk(t.Otherwise, visit)
	case *Print:
		Walk(t.Value, visit)
	case *First:
		Walk(t.Value, visit)
	case *Second:
		Walk(t.Value, visit)
	case *Tuple:
		Walk(t.First, visit)
		Walk(t.Second, visit)
	}
}

// CountNodes returns the number of terms reachable from term.
func CountNodes(term Term) int {
	count := 0
	Walk(term, func(Term) bool {
		count++
		return true
	})
	return count
}
