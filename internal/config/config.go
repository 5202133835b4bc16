// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvLogLevel      = "EROSION_MCP_LOG_LEVEL"
	EnvLogFormat     = "EROSION_MCP_LOG_FORMAT"
	EnvResultsDir    = "EROSION_MCP_RESULTS_DIR"
	EnvMaxIterations = "EROSION_MCP_MAX_ITERATIONS"
	EnvMaxKernelSize = "EROSION_MCP_MAX_KERNEL_SIZE"
	EnvWorkers       = "EROSION_MCP_WORKERS"
	EnvHistoryLimit  = "EROSION_MCP_HISTORY_LIMIT"
)

// Config holds the runtime settings of the server.
type Config struct {
	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string

	// LogFormat is "console" for human-readable output or "json".
	LogFormat string

	// ResultsDir is the root under which results are saved when a tool call
	// asks for saving without an explicit output path.
	ResultsDir string

	// MaxIterations bounds the iterations argument of a single call.
	MaxIterations int

	// MaxKernelSize bounds the kernel size argument of a single call.
	MaxKernelSize int

	// Workers is the number of goroutines used per erosion pass.
	Workers int

	// HistoryLimit caps the number of results kept for navigation.
	HistoryLimit int
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		LogLevel:      "info",
		LogFormat:     "console",
		ResultsDir:    "results",
		MaxIterations: 10,
		MaxKernelSize: 31,
		Workers:       runtime.NumCPU(),
		HistoryLimit:  50,
	}
}

// FromEnv returns Default overridden by the process environment.
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a Config using lookup to resolve variables. Numeric variables
// that do not parse, or are below 1, produce an error naming the variable.
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		format := strings.ToLower(v)
		if format != "console" && format != "json" {
			return Config{}, fmt.Errorf("%s: unknown log format %q", EnvLogFormat, v)
		}
		cfg.LogFormat = format
	}
	if v, ok := lookup(EnvResultsDir); ok && v != "" {
		cfg.ResultsDir = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvMaxIterations, &cfg.MaxIterations},
		{EnvMaxKernelSize, &cfg.MaxKernelSize},
		{EnvWorkers, &cfg.Workers},
		{EnvHistoryLimit, &cfg.HistoryLimit},
	}
	for _, it := range ints {
		v, ok := lookup(it.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", it.name, err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("%s: must be at least 1, got %d", it.name, n)
		}
		*it.dst = n
	}

	return cfg, nil
}
