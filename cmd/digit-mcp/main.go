package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/poko950615-bit/mnist-app/internal/classify"
	"github.com/poko950615-bit/mnist-app/internal/config"
	"github.com/poko950615-bit/mnist-app/internal/pipeline"
	"github.com/poko950615-bit/mnist-app/internal/raster"
	"github.com/poko950615-bit/mnist-app/internal/segment"
	"github.com/poko950615-bit/mnist-app/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("digit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "recognize":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: digit-mcp recognize <image-path>")
				os.Exit(2)
			}
			if err := recognizeOnce(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "digit-mcp: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.LogLevel == "debug" {
		log.Printf("Digit MCP Server v%s (built %s, commit %s), profile %s, %d workers",
			Version, BuildTime, GitCommit, cfg.Profile.Name, cfg.Workers)
	}

	pipe := pipeline.New(cfg.Profile, classify.NewTesseract(cfg.TesseractLang))
	pipe.Workers = cfg.Workers

	srv := server.New(pipe)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// recognizeOnce runs a single frame through the single-shot profile and
// prints the JSON result to stdout.
func recognizeOnce(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cache := raster.NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	frame, err := raster.FromImage(img)
	if err != nil {
		return err
	}

	pipe := pipeline.New(segment.SingleShot(), classify.NewTesseract(cfg.TesseractLang))
	pipe.Workers = cfg.Workers

	result, err := pipe.Recognize(frame)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printUsage() {
	fmt.Println("digit-mcp - MCP server for handwritten digit recognition")
	fmt.Println()
	fmt.Println("Usage: digit-mcp [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  (none)              Run the MCP server over stdin/stdout")
	fmt.Println("  recognize <path>    Recognize one image and print JSON (single-shot profile)")
	fmt.Println("  --version, -v       Print version information")
	fmt.Println("  --help, -h          Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  DIGIT_MCP_PROFILE=interactive|single-shot   Default server profile")
	fmt.Println("  DIGIT_MCP_LOG_LEVEL=debug                   Enable debug logging")
	fmt.Println("  DIGIT_MCP_TESSERACT_LANG=eng                Classifier language data")
	fmt.Println("  DIGIT_MCP_WORKERS=N                         Classification workers per frame")
	fmt.Println()
	fmt.Println("The server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
