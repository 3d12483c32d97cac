package main

import (
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/repairdesk/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP over stdio",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	// stdout carries the protocol; logs go to stderr.
	a, err := newApp(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(mcp.Config{
		Cases:    a.cases,
		Activity: a.activity,
		Version:  version,
		Logger:   a.logger,
	})

	a.logger.Info("starting stdio transport")
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		a.logger.Error("stdio server error", "error", err)
		return err
	}
	return nil
}
