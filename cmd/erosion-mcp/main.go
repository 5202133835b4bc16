package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/erosion-mcp/internal/config"
	"github.com/ironsheep/erosion-mcp/internal/logging"
	"github.com/ironsheep/erosion-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("erosion-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("erosion-mcp - MCP server for morphological erosion")
			fmt.Println()
			fmt.Println("Usage: erosion-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  EROSION_MCP_LOG_LEVEL=debug         Log level (debug, info, warn, error)")
			fmt.Println("  EROSION_MCP_LOG_FORMAT=console      Log format (console or json)")
			fmt.Println("  EROSION_MCP_RESULTS_DIR=results     Directory for saved results")
			fmt.Println("  EROSION_MCP_MAX_ITERATIONS=10       Upper bound for iterations")
			fmt.Println("  EROSION_MCP_MAX_KERNEL_SIZE=31      Upper bound for kernel size")
			fmt.Println("  EROSION_MCP_WORKERS=<cpus>          Goroutines per erosion pass")
			fmt.Println("  EROSION_MCP_HISTORY_LIMIT=50        Results kept for navigation")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr (stdout is for MCP protocol)
	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	server.Version = Version
	log.Debug().
		Str("version", Version).
		Str("built", BuildTime).
		Str("commit", GitCommit).
		Str("results_dir", cfg.ResultsDir).
		Int("workers", cfg.Workers).
		Msg("erosion MCP server starting")

	srv := server.New(cfg, log)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
