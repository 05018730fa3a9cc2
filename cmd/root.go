// Package cmd defines the pazar-mcp command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion injects the build version before Execute.
func SetVersion(v string) {
	appVersion = v
}

var rootCmd = &cobra.Command{
	Use:   "pazar-mcp",
	Short: "MCP server for the Pazarglobal marketplace assistant",
	Long:  "pazar-mcp exposes marketplace listing tools (insert, search, update, delete, list) over the MCP protocol, backed by Supabase.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.SetVersionTemplate(fmt.Sprintf("pazar-mcp v%s\n", appVersion))
}

// Execute runs the CLI.
func Execute() error {
	rootCmd.Version = appVersion
	return rootCmd.Execute()
}
