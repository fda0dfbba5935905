package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leonardohn/rinha-interpreter/pkg/interpreter"
	"github.com/leonardohn/rinha-interpreter/pkg/log"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envLogLevel, "")
	t.Setenv(envMaxDepth, "")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "max_depth: 500\nlog_level: info\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxDepth != 500 {
		t.Fatalf("MaxDepth = %d, want 500", cfg.MaxDepth)
	}
	if cfg.LogLevel != log.Info {
		t.Fatalf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxDepth != interpreter.DefaultMaxDepth || cfg.LogLevel != log.Error || cfg.Trace {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigTraceRaisesLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "trace: true\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.Trace || cfg.LogLevel != log.Debug {
		t.Fatalf("expected trace at debug level, got %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "max_depht: 10\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	} else if !strings.Contains(err.Error(), "max_depht") {
		t.Fatalf("expected error to name the key, got %v", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "max_depth: -1\nlog_level: loud\n")

	_, err := LoadConfig(path)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", validation.Issues)
	}
	if !strings.HasPrefix(err.Error(), "config validation failed:") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestFindConfigWalksUpwards(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "max_depth: 10\n")
	program := filepath.Join(root, "src", "nested", "main.json")
	writeFile(t, program, "{}")

	found, err := FindConfig(program)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if want := filepath.Join(root, ConfigFileName); found != want {
		t.Fatalf("FindConfig = %q, want %q", found, want)
	}
}

func TestResolveConfigDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	program := filepath.Join(t.TempDir(), "main.json")
	writeFile(t, program, "{}")

	cfg, err := ResolveConfig(program)
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.Path != "" || cfg.MaxDepth != interpreter.DefaultMaxDepth {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestResolveConfigAppliesEnv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "max_depth: 10\n")
	program := filepath.Join(root, "main.json")
	writeFile(t, program, "{}")
	t.Setenv(envMaxDepth, "42")
	t.Setenv(envLogLevel, "trace")

	cfg, err := ResolveConfig(program)
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.MaxDepth != 42 {
		t.Fatalf("MaxDepth = %d, want 42", cfg.MaxDepth)
	}
	if !cfg.Trace || cfg.LogLevel != log.Debug {
		t.Fatalf("expected trace from %s, got %+v", envLogLevel, cfg)
	}
}

func TestApplyEnvRejectsBadDepth(t *testing.T) {
	clearEnv(t)
	t.Setenv(envMaxDepth, "deep")
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil || !strings.Contains(err.Error(), envMaxDepth) {
		t.Fatalf("expected %s error, got %v", envMaxDepth, err)
	}
}

func TestInterpreterOptions(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.MaxDepth = 7

	opts := cfg.InterpreterOptions(&out)
	if opts.Stdout != &out || opts.MaxDepth != 7 || opts.Trace != nil {
		t.Fatalf("unexpected options %+v", opts)
	}
	cfg.Trace = true
	if cfg.InterpreterOptions(&out).Trace == nil {
		t.Fatalf("expected trace hook when tracing")
	}
}
