// railgentic serves the IRCTC railway tool set over MCP stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/effective-security/railgentic/mcpserver"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/xlog"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/railgentic", "cli")

const (
	serverName    = "railgentic-assistant"
	serverVersion = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "railgentic: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// stdio carries the MCP protocol, logs must go to stderr
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))

	// .env is optional for local development
	_ = godotenv.Load()

	cfg, err := railapi.LoadConfig()
	if err != nil {
		return err
	}
	client := railapi.NewClient(cfg)

	srv, err := mcpserver.New(mcpserver.Config{
		Name:    serverName,
		Version: serverVersion,
	}, client)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.KV(xlog.INFO, "status", "starting", "transport", "stdio", "upstream", cfg.Host)

	return srv.Run(ctx, &mcp.StdioTransport{})
}
