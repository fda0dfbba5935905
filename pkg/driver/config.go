package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leonardohn/rinha-interpreter/pkg/interpreter"
	"github.com/leonardohn/rinha-interpreter/pkg/log"
)

// ConfigFileName is looked up from the program's directory upwards.
const ConfigFileName = "rinha.yml"

const (
	envLogLevel = "RINHA_LOG"
	envMaxDepth = "RINHA_MAX_DEPTH"
)

// ErrConfigNotFound is wrapped by FindConfig when no config file exists.
var ErrConfigNotFound = errors.New(ConfigFileName + " not found")

// Config holds the evaluator settings read from rinha.yml.
type Config struct {
	Path     string
	MaxDepth int
	LogLevel log.Level
	Trace    bool
}

// ValidationError aggregates configuration failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is used when no rinha.yml is found.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth: interpreter.DefaultMaxDepth,
		LogLevel: log.Error,
	}
}

type configFile struct {
	MaxDepth *int   `yaml:"max_depth"`
	LogLevel string `yaml:"log_level"`
	Trace    bool   `yaml:"trace"`
}

// LoadConfig parses a rinha.yml file, rejecting unknown keys.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

func (raw configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Trace = raw.Trace

	var errs ValidationError
	if raw.MaxDepth != nil {
		if *raw.MaxDepth < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be >= 0, got %d", *raw.MaxDepth))
		} else {
			cfg.MaxDepth = *raw.MaxDepth
		}
	}
	if raw.LogLevel != "" {
		level, err := log.ParseLevel(raw.LogLevel)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_level: %v", err))
		} else {
			cfg.LogLevel = level
		}
	}
	if cfg.Trace && cfg.LogLevel < log.Debug {
		cfg.LogLevel = log.Debug
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// ApplyEnv overrides settings from RINHA_LOG and RINHA_MAX_DEPTH.
func (c *Config) ApplyEnv() error {
	if raw := strings.TrimSpace(os.Getenv(envLogLevel)); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
		c.LogLevel = level
		if strings.EqualFold(raw, "trace") {
			c.Trace = true
		}
	}
	if raw := strings.TrimSpace(os.Getenv(envMaxDepth)); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil || depth < 0 {
			return fmt.Errorf("%s: invalid depth %q", envMaxDepth, raw)
		}
		c.MaxDepth = depth
	}
	return nil
}

// InterpreterOptions translates the config into interpreter options writing
// print output to stdout.
func (c *Config) InterpreterOptions(stdout io.Writer) interpreter.Options {
	opts := interpreter.Options{Stdout: stdout, MaxDepth: c.MaxDepth}
	if c.Trace {
		opts.Trace = log.Debugf
	}
	return opts
}

// FindConfig walks from start upwards looking for rinha.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig finds and loads the config governing the program at
// programPath, falling back to defaults. Environment overrides are applied.
func ResolveConfig(programPath string) (*Config, error) {
	cfg := DefaultConfig()
	path, err := FindConfig(programPath)
	switch {
	case err == nil:
		loaded, loadErr := LoadConfig(path)
		if loadErr != nil {
			return nil, loadErr
		}
		cfg = loaded
	case errors.Is(err, ErrConfigNotFound):
	default:
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
