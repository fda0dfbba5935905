package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
	"github.com/leonardohn/rinha-interpreter/pkg/driver"
	"github.com/leonardohn/rinha-interpreter/pkg/interpreter"
	"github.com/leonardohn/rinha-interpreter/pkg/log"
)

const cliToolVersion = "rinha 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 1 {
		switch args[0] {
		case "--help", "-h":
			printUsage(stdout)
			return 0
		case "--version", "-V":
			fmt.Fprintln(stdout, cliToolVersion)
			return 0
		}
	}
	if len(args) != 1 {
		// A wrong argument count is not treated as a failure.
		printUsage(stderr)
		return 0
	}
	return runFile(args[0], stdout, stderr)
}

func runFile(path string, stdout, stderr io.Writer) int {
	cfg, err := driver.ResolveConfig(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	log.SetOutput(stderr)
	log.SetLevel(cfg.LogLevel)
	if cfg.Path != "" {
		log.Debugf("using config %s", cfg.Path)
	}

	file, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	interp := interpreter.NewWithOptions(cfg.InterpreterOptions(stdout))
	result := interp.EvaluateFile(file)
	if errTerm, ok := result.(*ast.Error); ok {
		fmt.Fprint(stderr, interpreter.DescribeError(errTerm))
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <json-file>\n", filepath.Base(os.Args[0]))
}
