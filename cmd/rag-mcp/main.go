package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/alejandro-ao/rag-mcp/internal/adapters/driving/cli"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
)

// version is injected at build time:
//
//	go build -ldflags "-X main.version=v1.2.3"
var version = ""

func main() {
	// A local .env is optional; missing files are not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("loading .env: %v", err)
	}

	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
