package interpreter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
	"github.com/leonardohn/rinha-interpreter/pkg/runtime"
)

// fixtureExpect is the shape of a fixture's expect.yml.
type fixtureExpect struct {
	Description string   `yaml:"description"`
	Stdout      []string `yaml:"stdout"`
	Result      *struct {
		Kind  string `yaml:"kind"`
		Value any    `yaml:"value"`
	} `yaml:"result"`
	Error *struct {
		Message  string `yaml:"message"`
		FullText string `yaml:"full_text"`
	} `yaml:"error"`
	MaxDepth int `yaml:"max_depth"`
}

// testingT captures the subset of testing.T used by fixture helpers.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

var programNames = []string{"program.json", "program.yml", "program.yaml"}

func readExpect(t testingT, dir string) fixtureExpect {
	t.Helper()
	path := filepath.Join(dir, "expect.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read expectations %s: %v", path, err)
	}
	var expect fixtureExpect
	if err := yaml.Unmarshal(data, &expect); err != nil {
		t.Fatalf("parse expectations %s: %v", path, err)
	}
	return expect
}

func findProgram(dir string) (string, error) {
	for _, name := range programNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.New("no program file in " + dir)
}

func readProgram(t testingT, dir string) *ast.File {
	t.Helper()
	path, err := findProgram(dir)
	if err != nil {
		t.Fatalf("%v", err)
	}
	file, err := ast.DecodeFile(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return file
}

func splitStdout(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func assertStdout(t *testing.T, dir string, want []string, got string) {
	t.Helper()
	lines := splitStdout(got)
	if len(lines) != len(want) {
		t.Fatalf("fixture %s expected stdout %v, got %v", dir, want, lines)
	}
	for idx := range want {
		if lines[idx] != want[idx] {
			t.Fatalf("fixture %s stdout line %d: expected %q, got %q", dir, idx, want[idx], lines[idx])
		}
	}
}

func assertResult(t *testing.T, dir string, expect fixtureExpect, result ast.Term) {
	t.Helper()
	if expect.Error != nil {
		errTerm, ok := result.(*ast.Error)
		if !ok {
			t.Fatalf("fixture %s expected error %q, got %s", dir, expect.Error.Message, runtime.Describe(result))
		}
		if errTerm.Message != expect.Error.Message {
			t.Fatalf("fixture %s expected error message %q, got %q", dir, expect.Error.Message, errTerm.Message)
		}
		if expect.Error.FullText != "" && errTerm.FullText != expect.Error.FullText {
			t.Fatalf("fixture %s expected error text %q, got %q", dir, expect.Error.FullText, errTerm.FullText)
		}
		return
	}
	if errTerm, ok := result.(*ast.Error); ok {
		t.Fatalf("fixture %s evaluation error: %s", dir, DescribeError(errTerm))
	}
	if expect.Result == nil {
		return
	}
	if string(result.Kind()) != expect.Result.Kind {
		t.Fatalf("fixture %s expected %s result, got %s", dir, expect.Result.Kind, runtime.Describe(result))
	}
	if expect.Result.Value == nil {
		return
	}
	switch v := result.(type) {
	case *ast.Int:
		want, ok := expect.Result.Value.(int)
		if !ok || int32(want) != v.Value {
			t.Fatalf("fixture %s expected %v, got %d", dir, expect.Result.Value, v.Value)
		}
	case *ast.Str:
		if want, ok := expect.Result.Value.(string); !ok || want != v.Value {
			t.Fatalf("fixture %s expected %v, got %q", dir, expect.Result.Value, v.Value)
		}
	case *ast.Bool:
		if want, ok := expect.Result.Value.(bool); !ok || want != v.Value {
			t.Fatalf("fixture %s expected %v, got %t", dir, expect.Result.Value, v.Value)
		}
	default:
		t.Fatalf("fixture %s cannot compare value of %s result", dir, result.Kind())
	}
}
