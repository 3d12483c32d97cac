package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find similar past cases and their price range",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.cases.EstimateFromHistory(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
