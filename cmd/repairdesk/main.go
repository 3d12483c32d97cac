package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/repairdesk/internal/config"
)

var version = "dev"

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "repairdesk",
	Short: "Repair history, search and estimates for a guitar repair shop",
	Long: `repairdesk keeps the shop's repair history and answers pricing questions.

Run "repairdesk serve" for the HTTP API (with MCP mounted at /mcp) or
"repairdesk mcp" to talk MCP over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $REPAIRDESK_CONFIG_PATH)")
	rootCmd.Version = version

	rootCmd.AddCommand(serveCmd, mcpCmd, calcCmd, searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
