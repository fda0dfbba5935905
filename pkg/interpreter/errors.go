package interpreter

import (
	"fmt"
	"strings"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
)

// errorFrom turns term into an Error located where term was. An Error passes
// through unchanged.
func errorFrom(term ast.Term, code ast.ErrorKind, message, fullText string) ast.Term {
	if existing, ok := term.(*ast.Error); ok {
		return existing
	}
	var loc ast.Location
	if term != nil {
		loc = term.Location()
	}
	return ast.NewErrorKind(code, message, fullText, loc)
}

func stackOverflow(term ast.Term, limit int) ast.Term {
	var loc ast.Location
	if term != nil {
		loc = term.Location()
	}
	return ast.NewErrorKind(ast.ErrorStackOverflow, "Stack overflow", fmt.Sprintf("Maximum evaluation depth of %d exceeded", limit), loc)
}

// DescribeError renders the terminal report for an error result.
func DescribeError(err *ast.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Error (%s:%d:%d)] %s\n", err.Location().Filename, err.Location().Start, err.Location().End, err.Message)
	b.WriteString(err.FullText)
	b.WriteString("\n")
	return b.String()
}
