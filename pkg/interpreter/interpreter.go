package interpreter

import (
	"io"
	"os"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
	"github.com/leonardohn/rinha-interpreter/pkg/runtime"
)

// DefaultMaxDepth bounds evaluation nesting for interpreters built with New.
const DefaultMaxDepth = 200000

// Options configures an Interpreter.
type Options struct {
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxDepth bounds nested evaluation; 0 disables the limit.
	MaxDepth int
	// Trace, when set, is called on every function call.
	Trace func(format string, args ...any)
}

// Interpreter evaluates rinha terms over a scope chain of frames.
type Interpreter struct {
	frames   *runtime.Frames
	stdout   io.Writer
	maxDepth int
	depth    int
	trace    func(format string, args ...any)
}

// New returns an interpreter printing to os.Stdout with DefaultMaxDepth.
func New() *Interpreter {
	return NewWithOptions(Options{MaxDepth: DefaultMaxDepth})
}

func NewWithOptions(opts Options) *Interpreter {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	maxDepth := opts.MaxDepth
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Interpreter{
		frames:   runtime.NewFrames(),
		stdout:   stdout,
		maxDepth: maxDepth,
		trace:    opts.Trace,
	}
}

// Frames exposes the scope arena.
func (i *Interpreter) Frames() *runtime.Frames {
	return i.frames
}

// Global returns the root frame handle.
func (i *Interpreter) Global() runtime.FrameID {
	return i.frames.Root()
}

// EvaluateFile evaluates the root expression of a document in the global frame.
func (i *Interpreter) EvaluateFile(file *ast.File) ast.Term {
	return i.Evaluate(i.Global(), file.Expression)
}

// Evaluate reduces term in frame. It never fails: every failure comes back
// as an *ast.Error.
func (i *Interpreter) Evaluate(frame runtime.FrameID, term ast.Term) ast.Term {
	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return stackOverflow(term, i.maxDepth)
	}
	i.depth++
	result := i.evaluateTerm(frame, term)
	i.depth--
	return result
}

func (i *Interpreter) tracef(format string, args ...any) {
	if i.trace != nil {
		i.trace(format, args...)
	}
}
