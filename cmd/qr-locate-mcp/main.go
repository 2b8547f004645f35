package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/qr-locate/internal/detection"
	"github.com/ironsheep/qr-locate/internal/server"
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
			fmt.Printf("qr-locate-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("qr-locate-mcp - MCP server for the QR code region locator")
			fmt.Println()
			fmt.Println("Usage: qr-locate-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  QR_LOCATE_LOG_LEVEL=debug    Enable debug logging, including per-stage pipeline timings")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	var pipelineLog *log.Logger
	if os.Getenv("QR_LOCATE_LOG_LEVEL") == "debug" {
		log.Printf("QR Locate MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		pipelineLog = log.New(os.Stderr, "pipeline: ", log.Ldate|log.Ltime|log.Lmicroseconds)
	}

	srv := server.NewWithConfig(detection.DefaultConfig(), pipelineLog)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
