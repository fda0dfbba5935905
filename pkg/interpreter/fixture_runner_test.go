package interpreter

import (
	"bytes"
	"testing"
)

// runFixture evaluates the program in dir and checks it against expect.yml.
func runFixture(t *testing.T, dir string) {
	t.Helper()
	expect := readExpect(t, dir)
	file := readProgram(t, dir)

	maxDepth := DefaultMaxDepth
	if expect.MaxDepth > 0 {
		maxDepth = expect.MaxDepth
	}
	var stdout bytes.Buffer
	interp := NewWithOptions(Options{Stdout: &stdout, MaxDepth: maxDepth})
	result := interp.EvaluateFile(file)

	assertStdout(t, dir, expect.Stdout, stdout.String())
	assertResult(t, dir, expect, result)
	if live := interp.Frames().Len(); live != 1 {
		t.Fatalf("fixture %s left %d frames live", dir, live)
	}
}
